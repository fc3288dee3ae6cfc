package booking

import (
	"context"
	"time"

	"github.com/northlight-studio/studio-scheduler/internal/audit"
	domain "github.com/northlight-studio/studio-scheduler/internal/domain/booking"
	"github.com/northlight-studio/studio-scheduler/internal/httperr"
	"github.com/northlight-studio/studio-scheduler/internal/models"
	"github.com/northlight-studio/studio-scheduler/internal/notification"
	"github.com/northlight-studio/studio-scheduler/internal/timezone"
)

type ConfirmBooking struct {
	transitioner
}

func NewConfirmBooking(
	repo domain.Repository,
	auditDispatcher *audit.Dispatcher,
	cache SlotCache,
	notifier *notification.Service,
) *ConfirmBooking {
	return &ConfirmBooking{transitioner{
		repo:     repo,
		audit:    auditDispatcher,
		cache:    cache,
		notifier: notifier,
	}}
}

func (uc *ConfirmBooking) Execute(
	ctx context.Context,
	studioID uint,
	userID uint,
	bookingID uint,
) (*models.Booking, error) {

	return uc.transition(ctx, studioID, userID, bookingID, "booking_confirmed",
		func(b *models.Booking, studio *models.Studio) error {
			return domain.Confirm(b, timezone.NowIn(studio.Timezone))
		})
}

// transitioner is the shared load / mutate / persist / audit flow of the
// three status transitions.
type transitioner struct {
	repo     domain.Repository
	audit    *audit.Dispatcher
	cache    SlotCache
	notifier *notification.Service
}

func (t *transitioner) transition(
	ctx context.Context,
	studioID uint,
	userID uint,
	bookingID uint,
	action string,
	apply func(b *models.Booking, studio *models.Studio) error,
) (*models.Booking, error) {

	studio, err := t.repo.GetStudioByID(ctx, studioID)
	if err != nil {
		return nil, err
	}

	b, err := t.repo.GetBookingForStudio(ctx, bookingID, studioID)
	if err != nil {
		return nil, httperr.ErrBusiness("booking_not_found")
	}

	if err := apply(b, studio); err != nil {
		return nil, err
	}

	if err := t.repo.UpdateBooking(ctx, b); err != nil {
		return nil, err
	}

	if t.cache != nil {
		loc := timezone.Location(studio.Timezone)
		t.cache.InvalidateDay(ctx, studioID, b.ServiceID, b.StartTime.In(loc).Format("2006-01-02"))
	}

	t.audit.Dispatch(audit.Event{
		StudioID: studioID,
		UserID:   &userID,
		Action:   action,
		Entity:   "booking",
		EntityID: &b.ID,
	})

	// Status email runs detached from the request. The notifier itself
	// skips statuses the client does not care about.
	if t.notifier != nil {
		booking := *b
		owner := *studio
		go func() {
			nctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
			defer cancel()
			t.notifier.SendStatusUpdate(nctx, &owner, &booking.Client, &booking)
		}()
	}

	return b, nil
}
