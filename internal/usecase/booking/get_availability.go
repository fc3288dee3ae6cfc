package booking

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	domain "github.com/northlight-studio/studio-scheduler/internal/domain/booking"
	"github.com/northlight-studio/studio-scheduler/internal/httperr"
)

// SlotCache keeps computed day availability for a short TTL.
type SlotCache interface {
	GetSlots(ctx context.Context, studioID, serviceID uint, date string) ([]domain.TimeSlot, bool)
	SetSlots(ctx context.Context, studioID, serviceID uint, date string, slots []domain.TimeSlot)
	InvalidateDay(ctx context.Context, studioID, serviceID uint, date string)
}

type GetAvailability struct {
	repo  domain.Repository
	cache SlotCache
	now   func() time.Time
}

func NewGetAvailability(repo domain.Repository, cache SlotCache) *GetAvailability {
	return &GetAvailability{
		repo:  repo,
		cache: cache,
		now:   time.Now,
	}
}

func (uc *GetAvailability) Execute(
	ctx context.Context,
	in domain.AvailabilityInput,
) ([]domain.TimeSlot, error) {

	service, err := uc.repo.GetService(ctx, in.StudioID, in.ServiceID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness(httperr.CodeInvalidService)
		}
		return nil, err
	}

	if service.DurationMin <= 0 {
		return nil, httperr.ErrBusiness(httperr.CodeInvalidService)
	}

	loc := in.Date.Location()
	now := uc.now().In(loc)

	dayStart := time.Date(in.Date.Year(), in.Date.Month(), in.Date.Day(), 0, 0, 0, 0, loc)
	dayEnd := dayStart.Add(24 * time.Hour)

	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
	if dayStart.Before(todayStart) {
		return nil, httperr.ErrBusiness(httperr.CodeInvalidDate)
	}

	dateKey := dayStart.Format("2006-01-02")
	if uc.cache != nil {
		if slots, ok := uc.cache.GetSlots(ctx, in.StudioID, in.ServiceID, dateKey); ok {
			return slots, nil
		}
	}

	wh, err := uc.repo.GetWorkingHours(ctx, in.StudioID, int(in.Date.Weekday()))
	if err != nil {
		return []domain.TimeSlot{}, nil
	}

	window, open := domain.DayWindow(wh, in.Date)
	if !open {
		return []domain.TimeSlot{}, nil
	}

	bookings, err := uc.repo.ListActiveBookingsForDay(ctx, in.ServiceID, dayStart, dayEnd)
	if err != nil {
		return nil, err
	}

	capacityLeft := domain.UnlimitedCapacity
	if service.MaxBookingsPerDay != nil {
		capacityLeft = *service.MaxBookingsPerDay - len(bookings)
		if capacityLeft < 0 {
			capacityLeft = 0
		}
	}

	duration := time.Duration(service.DurationMin) * time.Minute

	slots := domain.CollectSlots(domain.Slots(
		window,
		duration,
		domain.BusyIntervals(bookings),
		capacityLeft,
		now,
	))

	out := make([]domain.TimeSlot, 0, len(slots))
	for _, s := range slots {
		out = append(out, domain.TimeSlot{
			Start: s.Start.Format("15:04"),
			End:   s.End.Format("15:04"),
		})
	}

	if uc.cache != nil {
		uc.cache.SetSlots(ctx, in.StudioID, in.ServiceID, dateKey, out)
	}

	return out, nil
}
