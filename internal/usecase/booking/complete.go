package booking

import (
	"context"

	"github.com/northlight-studio/studio-scheduler/internal/audit"
	domain "github.com/northlight-studio/studio-scheduler/internal/domain/booking"
	"github.com/northlight-studio/studio-scheduler/internal/models"
	"github.com/northlight-studio/studio-scheduler/internal/timezone"
)

type CompleteBooking struct {
	transitioner
}

func NewCompleteBooking(
	repo domain.Repository,
	auditDispatcher *audit.Dispatcher,
	cache SlotCache,
) *CompleteBooking {
	return &CompleteBooking{transitioner{
		repo:  repo,
		audit: auditDispatcher,
		cache: cache,
	}}
}

func (uc *CompleteBooking) Execute(
	ctx context.Context,
	studioID uint,
	userID uint,
	bookingID uint,
) (*models.Booking, error) {

	return uc.transition(ctx, studioID, userID, bookingID, "booking_completed",
		func(b *models.Booking, studio *models.Studio) error {
			return domain.Complete(b, timezone.NowIn(studio.Timezone))
		})
}
