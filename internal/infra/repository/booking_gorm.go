package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/northlight-studio/studio-scheduler/internal/domain/booking"
	"github.com/northlight-studio/studio-scheduler/internal/httperr"
	"github.com/northlight-studio/studio-scheduler/internal/models"
)

type BookingGormRepository struct {
	db *gorm.DB
}

func NewBookingGormRepository(db *gorm.DB) *BookingGormRepository {
	return &BookingGormRepository{db: db}
}

// --------------------------------------------------
// Studio
// --------------------------------------------------

func (r *BookingGormRepository) GetStudioByID(
	ctx context.Context,
	id uint,
) (*models.Studio, error) {

	var studio models.Studio
	if err := r.db.WithContext(ctx).First(&studio, id).Error; err != nil {
		return nil, err
	}
	return &studio, nil
}

func (r *BookingGormRepository) GetStudioBySlug(
	ctx context.Context,
	slug string,
) (*models.Studio, error) {

	var studio models.Studio
	if err := r.db.WithContext(ctx).
		Where("slug = ?", slug).
		First(&studio).Error; err != nil {
		return nil, err
	}
	return &studio, nil
}

// --------------------------------------------------
// Service
// --------------------------------------------------

func (r *BookingGormRepository) GetService(
	ctx context.Context,
	studioID uint,
	serviceID uint,
) (*models.Service, error) {

	var service models.Service
	if err := r.db.WithContext(ctx).
		Where("id = ? AND studio_id = ?", serviceID, studioID).
		First(&service).Error; err != nil {
		return nil, err
	}
	return &service, nil
}

// --------------------------------------------------
// Client
// --------------------------------------------------

func (r *BookingGormRepository) GetOrCreateClient(
	ctx context.Context,
	studioID uint,
	name string,
	email string,
	phone string,
) (*models.Client, error) {

	var client models.Client
	err := r.db.WithContext(ctx).
		Where("studio_id = ? AND LOWER(email) = LOWER(?)", studioID, email).
		First(&client).Error

	if err == nil {
		return &client, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	client = models.Client{
		StudioID: studioID,
		Name:     name,
		Email:    email,
		Phone:    phone,
	}

	if err := r.db.WithContext(ctx).Create(&client).Error; err != nil {
		return nil, err
	}

	return &client, nil
}

// --------------------------------------------------
// Booking (create / conflict)
// --------------------------------------------------

// CreateBookingIfSlotFree is the single read-then-write of the booking flow.
// Row locks close the race between the re-check and the insert; the partial
// unique index on (service_id, start_time) is the backstop if two inserts
// slip past the locks on different rows.
func (r *BookingGormRepository) CreateBookingIfSlotFree(
	ctx context.Context,
	b *models.Booking,
	maxPerDay *int,
	dayStart time.Time,
	dayEnd time.Time,
) error {

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		// Postgres rejects FOR UPDATE on aggregates, so lock the rows
		// themselves and count client-side.
		var conflicts []models.Booking
		if err := tx.
			Select("id").
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where(
				"service_id = ? AND status IN ('pending','confirmed') AND start_time < ? AND end_time > ?",
				b.ServiceID, b.EndTime, b.StartTime,
			).
			Find(&conflicts).Error; err != nil {
			return err
		}

		if len(conflicts) > 0 {
			return httperr.ErrBusiness(httperr.CodeSlotUnavailable)
		}

		if maxPerDay != nil {
			var day []models.Booking
			if err := tx.
				Select("id").
				Clauses(clause.Locking{Strength: "UPDATE"}).
				Where(
					"service_id = ? AND status IN ('pending','confirmed') AND start_time >= ? AND start_time < ?",
					b.ServiceID, dayStart, dayEnd,
				).
				Find(&day).Error; err != nil {
				return err
			}

			if len(day) >= *maxPerDay {
				return httperr.ErrBusiness(httperr.CodeSlotUnavailable)
			}
		}

		return tx.Create(b).Error
	})

	if err != nil {
		if httperr.IsSlotConflict(err) {
			return httperr.ErrBusiness(httperr.CodeSlotUnavailable)
		}
		return err
	}

	return nil
}

// --------------------------------------------------
// Booking (state change)
// --------------------------------------------------

func (r *BookingGormRepository) GetBookingForStudio(
	ctx context.Context,
	bookingID uint,
	studioID uint,
) (*models.Booking, error) {

	var b models.Booking
	if err := r.db.WithContext(ctx).
		Preload("Client").
		Where("id = ? AND studio_id = ?", bookingID, studioID).
		First(&b).Error; err != nil {
		return nil, err
	}

	return &b, nil
}

func (r *BookingGormRepository) UpdateBooking(
	ctx context.Context,
	b *models.Booking,
) error {
	return r.db.WithContext(ctx).Save(b).Error
}

func (r *BookingGormRepository) SetBookingReferences(
	ctx context.Context,
	bookingID uint,
	depositPaymentID string,
	contractEnvelopeID string,
) error {

	cols := map[string]interface{}{}
	if depositPaymentID != "" {
		cols["deposit_payment_id"] = depositPaymentID
	}
	if contractEnvelopeID != "" {
		cols["contract_envelope_id"] = contractEnvelopeID
	}
	if len(cols) == 0 {
		return nil
	}

	return r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Where("id = ?", bookingID).
		Updates(cols).Error
}

// --------------------------------------------------
// Availability
// --------------------------------------------------

func (r *BookingGormRepository) GetWorkingHours(
	ctx context.Context,
	studioID uint,
	weekday int,
) (*models.WorkingHours, error) {

	var wh models.WorkingHours
	if err := r.db.WithContext(ctx).
		Where("studio_id = ? AND weekday = ?", studioID, weekday).
		First(&wh).Error; err != nil {
		return nil, err
	}

	return &wh, nil
}

func (r *BookingGormRepository) ListActiveBookingsForDay(
	ctx context.Context,
	serviceID uint,
	start time.Time,
	end time.Time,
) ([]models.Booking, error) {

	var bookings []models.Booking
	if err := r.db.WithContext(ctx).
		Select("start_time", "end_time").
		Where(
			"service_id = ? AND status IN ('pending','confirmed') AND start_time >= ? AND start_time < ?",
			serviceID, start, end,
		).
		Order("start_time ASC").
		Find(&bookings).Error; err != nil {
		return nil, err
	}

	return bookings, nil
}

func (r *BookingGormRepository) ListBookingsForPeriod(
	ctx context.Context,
	studioID uint,
	start time.Time,
	end time.Time,
) ([]models.Booking, error) {

	var bookings []models.Booking

	err := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Service").
		Where(
			"studio_id = ? AND start_time >= ? AND start_time < ?",
			studioID, start, end,
		).
		Order("start_time ASC").
		Find(&bookings).Error

	if err != nil {
		return nil, err
	}

	return bookings, nil
}

// Compile-time check
var _ domain.Repository = (*BookingGormRepository)(nil)
