package booking

import (
	"context"
	"time"

	"github.com/northlight-studio/studio-scheduler/internal/models"
)

type AvailabilityInput struct {
	StudioID  uint
	ServiceID uint
	Date      time.Time
}

type TimeSlot struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

type Repository interface {
	// -------- Studio --------
	GetStudioByID(
		ctx context.Context,
		id uint,
	) (*models.Studio, error)

	GetStudioBySlug(
		ctx context.Context,
		slug string,
	) (*models.Studio, error)

	// -------- Service --------
	GetService(
		ctx context.Context,
		studioID uint,
		serviceID uint,
	) (*models.Service, error)

	// -------- Client --------
	GetOrCreateClient(
		ctx context.Context,
		studioID uint,
		name string,
		email string,
		phone string,
	) (*models.Client, error)

	// -------- Booking (create / conflict) --------

	// CreateBookingIfSlotFree runs the conflict and capacity checks and the
	// insert in one transaction. Returns slot_unavailable when a concurrent
	// writer got there first.
	CreateBookingIfSlotFree(
		ctx context.Context,
		b *models.Booking,
		maxPerDay *int,
		dayStart time.Time,
		dayEnd time.Time,
	) error

	// -------- Booking (state change) --------
	GetBookingForStudio(
		ctx context.Context,
		bookingID uint,
		studioID uint,
	) (*models.Booking, error)

	UpdateBooking(
		ctx context.Context,
		b *models.Booking,
	) error

	// SetBookingReferences writes only the payment and contract reference
	// columns, leaving status and timestamps alone. Runs after the slow
	// provider calls, when the row may already have moved on.
	SetBookingReferences(
		ctx context.Context,
		bookingID uint,
		depositPaymentID string,
		contractEnvelopeID string,
	) error

	// -------- Availability --------
	GetWorkingHours(
		ctx context.Context,
		studioID uint,
		weekday int,
	) (*models.WorkingHours, error)

	ListActiveBookingsForDay(
		ctx context.Context,
		serviceID uint,
		start time.Time,
		end time.Time,
	) ([]models.Booking, error)

	ListBookingsForPeriod(
		ctx context.Context,
		studioID uint,
		start time.Time,
		end time.Time,
	) ([]models.Booking, error)
}
