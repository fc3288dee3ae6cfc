package booking

import (
	"context"

	"github.com/northlight-studio/studio-scheduler/internal/audit"
	domain "github.com/northlight-studio/studio-scheduler/internal/domain/booking"
	"github.com/northlight-studio/studio-scheduler/internal/models"
	"github.com/northlight-studio/studio-scheduler/internal/notification"
	"github.com/northlight-studio/studio-scheduler/internal/timezone"
)

type CancelBooking struct {
	transitioner
}

func NewCancelBooking(
	repo domain.Repository,
	auditDispatcher *audit.Dispatcher,
	cache SlotCache,
	notifier *notification.Service,
) *CancelBooking {
	return &CancelBooking{transitioner{
		repo:     repo,
		audit:    auditDispatcher,
		cache:    cache,
		notifier: notifier,
	}}
}

func (uc *CancelBooking) Execute(
	ctx context.Context,
	studioID uint,
	userID uint,
	bookingID uint,
) (*models.Booking, error) {

	return uc.transition(ctx, studioID, userID, bookingID, "booking_cancelled",
		func(b *models.Booking, studio *models.Studio) error {
			return domain.Cancel(b, timezone.NowIn(studio.Timezone))
		})
}
