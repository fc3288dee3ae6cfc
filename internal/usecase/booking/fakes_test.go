package booking

import (
	"context"
	"time"

	"github.com/northlight-studio/studio-scheduler/internal/contract"
	domain "github.com/northlight-studio/studio-scheduler/internal/domain/booking"
	"github.com/northlight-studio/studio-scheduler/internal/httperr"
	"github.com/northlight-studio/studio-scheduler/internal/models"
	"github.com/northlight-studio/studio-scheduler/internal/payment"
)

// fakeRepo is an in-memory domain.Repository for usecase tests.
type fakeRepo struct {
	studio  *models.Studio
	service *models.Service
	wh      *models.WorkingHours
	booking *models.Booking

	dayBookings []models.Booking

	serviceErr error

	created   *models.Booking
	createErr error
	updated   *models.Booking
	updateErr error

	refsBookingID  uint
	refsDepositID  string
	refsEnvelopeID string
	refsDone       chan struct{}
}

func (f *fakeRepo) GetStudioByID(ctx context.Context, id uint) (*models.Studio, error) {
	if f.studio == nil || f.studio.ID != id {
		return nil, httperr.ErrBusiness(httperr.CodeStorageError)
	}
	return f.studio, nil
}

func (f *fakeRepo) GetStudioBySlug(ctx context.Context, slug string) (*models.Studio, error) {
	if f.studio == nil || f.studio.Slug != slug {
		return nil, httperr.ErrBusiness(httperr.CodeStorageError)
	}
	return f.studio, nil
}

func (f *fakeRepo) GetService(ctx context.Context, studioID, serviceID uint) (*models.Service, error) {
	if f.serviceErr != nil {
		return nil, f.serviceErr
	}
	if f.service == nil || f.service.ID != serviceID || f.service.StudioID != studioID {
		return nil, httperr.ErrBusiness(httperr.CodeInvalidService)
	}
	return f.service, nil
}

func (f *fakeRepo) GetOrCreateClient(ctx context.Context, studioID uint, name, email, phone string) (*models.Client, error) {
	return &models.Client{ID: 77, StudioID: studioID, Name: name, Email: email, Phone: phone}, nil
}

func (f *fakeRepo) CreateBookingIfSlotFree(ctx context.Context, b *models.Booking, maxPerDay *int, dayStart, dayEnd time.Time) error {
	if f.createErr != nil {
		return f.createErr
	}
	b.ID = 101
	f.created = b
	return nil
}

func (f *fakeRepo) GetBookingForStudio(ctx context.Context, bookingID, studioID uint) (*models.Booking, error) {
	if f.booking == nil || f.booking.ID != bookingID || f.booking.StudioID != studioID {
		return nil, httperr.ErrBusiness(httperr.CodeStorageError)
	}
	return f.booking, nil
}

func (f *fakeRepo) UpdateBooking(ctx context.Context, b *models.Booking) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	f.updated = b
	return nil
}

func (f *fakeRepo) SetBookingReferences(ctx context.Context, bookingID uint, depositPaymentID, contractEnvelopeID string) error {
	f.refsBookingID = bookingID
	f.refsDepositID = depositPaymentID
	f.refsEnvelopeID = contractEnvelopeID
	if f.refsDone != nil {
		close(f.refsDone)
	}
	return nil
}

func (f *fakeRepo) GetWorkingHours(ctx context.Context, studioID uint, weekday int) (*models.WorkingHours, error) {
	if f.wh == nil {
		return nil, httperr.ErrBusiness(httperr.CodeStorageError)
	}
	return f.wh, nil
}

func (f *fakeRepo) ListActiveBookingsForDay(ctx context.Context, serviceID uint, start, end time.Time) ([]models.Booking, error) {
	return f.dayBookings, nil
}

func (f *fakeRepo) ListBookingsForPeriod(ctx context.Context, studioID uint, start, end time.Time) ([]models.Booking, error) {
	return f.dayBookings, nil
}

var _ domain.Repository = (*fakeRepo)(nil)

// fakeCache records cache traffic and serves one preloaded entry.
type fakeCache struct {
	slots  []domain.TimeSlot
	hasHit bool

	gets        int
	sets        int
	invalidated []string
}

func (c *fakeCache) GetSlots(ctx context.Context, studioID, serviceID uint, date string) ([]domain.TimeSlot, bool) {
	c.gets++
	if c.hasHit {
		return c.slots, true
	}
	return nil, false
}

func (c *fakeCache) SetSlots(ctx context.Context, studioID, serviceID uint, date string, slots []domain.TimeSlot) {
	c.sets++
	c.slots = slots
}

func (c *fakeCache) InvalidateDay(ctx context.Context, studioID, serviceID uint, date string) {
	c.invalidated = append(c.invalidated, date)
}

var _ SlotCache = (*fakeCache)(nil)

// fakeDeposits hands back a fixed payment intent ID.
type fakeDeposits struct {
	paymentID string
	err       error
}

func (f *fakeDeposits) CreateDeposit(ctx context.Context, in payment.DepositInput) (*payment.Deposit, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &payment.Deposit{PaymentID: f.paymentID, Status: "requires_payment_method"}, nil
}

var _ payment.DepositCollector = (*fakeDeposits)(nil)

// fakeContracts hands back a fixed envelope ID.
type fakeContracts struct {
	envelopeID string
	err        error
}

func (f *fakeContracts) SendForSignature(ctx context.Context, in contract.EnvelopeRequest) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.envelopeID, nil
}

var _ contract.SignatureService = (*fakeContracts)(nil)

func intPtr(v int) *int { return &v }
