package booking

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/northlight-studio/studio-scheduler/internal/audit"
	"github.com/northlight-studio/studio-scheduler/internal/contract"
	domain "github.com/northlight-studio/studio-scheduler/internal/domain/booking"
	"github.com/northlight-studio/studio-scheduler/internal/httperr"
	"github.com/northlight-studio/studio-scheduler/internal/models"
	"github.com/northlight-studio/studio-scheduler/internal/notification"
	"github.com/northlight-studio/studio-scheduler/internal/payment"
	"github.com/northlight-studio/studio-scheduler/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type CreateBookingInput struct {
	StudioID uint

	ClientName  string
	ClientEmail string
	ClientPhone string

	ServiceID uint

	Date  string
	Time  string
	Notes string
}

// ======================================================
// USE CASE
// ======================================================

type CreateBooking struct {
	repo      domain.Repository
	audit     *audit.Dispatcher
	cache     SlotCache
	notifier  *notification.Service
	deposits  payment.DepositCollector
	contracts contract.SignatureService

	depositAmountCents int64

	log *zap.Logger
	now func() time.Time
}

func NewCreateBooking(
	repo domain.Repository,
	auditDispatcher *audit.Dispatcher,
	cache SlotCache,
	notifier *notification.Service,
	deposits payment.DepositCollector,
	contracts contract.SignatureService,
	depositAmountCents int64,
	log *zap.Logger,
) *CreateBooking {
	return &CreateBooking{
		repo:               repo,
		audit:              auditDispatcher,
		cache:              cache,
		notifier:           notifier,
		deposits:           deposits,
		contracts:          contracts,
		depositAmountCents: depositAmountCents,
		log:                log,
		now:                time.Now,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateBooking) Execute(
	ctx context.Context,
	in CreateBookingInput,
) (*models.Booking, error) {

	studio, err := uc.repo.GetStudioByID(ctx, in.StudioID)
	if err != nil {
		return nil, err
	}

	// Contact fields, validated before anything touches the store.
	fields := map[string]string{}
	if strings.TrimSpace(in.ClientName) == "" {
		fields["client_name"] = "required"
	}
	if strings.TrimSpace(in.ClientEmail) == "" {
		fields["client_email"] = "required"
	}
	if len(fields) > 0 {
		return nil, httperr.ErrValidation(fields)
	}

	loc := timezone.Location(studio.Timezone)

	start, err := time.ParseInLocation(
		"2006-01-02 15:04",
		in.Date+" "+in.Time,
		loc,
	)
	if err != nil {
		return nil, httperr.ErrBusiness(httperr.CodeInvalidDate)
	}

	minAdvance := studio.MinAdvanceMinutes
	if minAdvance <= 0 {
		minAdvance = 120
	}

	now := uc.now().In(loc)
	if start.Before(now.Add(time.Duration(minAdvance) * time.Minute)) {
		return nil, httperr.ErrBusiness("too_soon")
	}

	service, err := uc.repo.GetService(ctx, in.StudioID, in.ServiceID)
	if err != nil {
		return nil, httperr.ErrBusiness(httperr.CodeInvalidService)
	}
	if !service.Active || service.DurationMin <= 0 {
		return nil, httperr.ErrBusiness(httperr.CodeInvalidService)
	}

	duration := time.Duration(service.DurationMin) * time.Minute
	end := start.Add(duration)

	// Requested slot must still be in the availability output. This is the
	// pre-check; the transactional insert below closes the race window.
	wh, err := uc.repo.GetWorkingHours(ctx, in.StudioID, int(start.Weekday()))
	if err != nil {
		return nil, httperr.ErrBusiness("outside_working_hours")
	}

	window, open := domain.DayWindow(wh, start)
	if !open || !window.Contains(start, end) {
		return nil, httperr.ErrBusiness("outside_working_hours")
	}

	dayStart := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, loc)
	dayEnd := dayStart.Add(24 * time.Hour)

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

	offered := false
	for s := range domain.Slots(window, duration, domain.BusyIntervals(bookings), capacityLeft, now) {
		if s.Start.Equal(start) {
			offered = true
			break
		}
	}
	if !offered {
		return nil, httperr.ErrBusiness(httperr.CodeSlotUnavailable)
	}

	client, err := uc.repo.GetOrCreateClient(
		ctx,
		in.StudioID,
		strings.TrimSpace(in.ClientName),
		strings.TrimSpace(in.ClientEmail),
		strings.TrimSpace(in.ClientPhone),
	)
	if err != nil {
		return nil, err
	}

	b := &models.Booking{
		Reference: uuid.NewString(),
		StudioID:  in.StudioID,
		ServiceID: service.ID,
		ClientID:  client.ID,
		StartTime: start,
		EndTime:   end,
		Status:    string(domain.InitialStatus()),
		Notes:     in.Notes,
	}

	if err := uc.repo.CreateBookingIfSlotFree(ctx, b, service.MaxBookingsPerDay, dayStart, dayEnd); err != nil {
		return nil, err
	}

	if uc.cache != nil {
		uc.cache.InvalidateDay(ctx, in.StudioID, service.ID, dayStart.Format("2006-01-02"))
	}

	uc.audit.Dispatch(audit.Event{
		StudioID: in.StudioID,
		Action:   "booking_created",
		Entity:   "booking",
		EntityID: &b.ID,
	})

	// Collaborators run detached from the request: confirmation email,
	// deposit intent, contract envelope. Failures are logged only. The
	// goroutine gets its own copies so the booking handed back to the
	// handler is never written after Execute returns.
	owner := *studio
	svc := *service
	cl := *client
	booking := *b
	go uc.runPostCreate(&owner, &svc, &cl, &booking)

	return b, nil
}

func (uc *CreateBooking) runPostCreate(
	studio *models.Studio,
	service *models.Service,
	client *models.Client,
	b *models.Booking,
) {

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	uc.notifier.SendBookingConfirmation(ctx, studio, service, client, b)

	changed := false

	if uc.deposits != nil {
		dep, err := uc.deposits.CreateDeposit(ctx, payment.DepositInput{
			AmountCents:      uc.depositAmountCents,
			ClientEmail:      client.Email,
			BookingReference: b.Reference,
			Description:      service.Name + " session deposit",
		})
		if err != nil {
			uc.log.Warn("deposit creation failed",
				zap.Error(err),
				zap.String("booking_reference", b.Reference),
			)
		} else {
			b.DepositPaymentID = dep.PaymentID
			changed = true
		}
	}

	if uc.contracts != nil {
		envelopeID, err := uc.contracts.SendForSignature(ctx, contract.EnvelopeRequest{
			SignerName:       client.Name,
			SignerEmail:      client.Email,
			BookingReference: b.Reference,
			ServiceName:      service.Name,
			SessionDate:      b.StartTime.Format("2006-01-02"),
		})
		if err != nil {
			uc.log.Warn("contract send failed",
				zap.Error(err),
				zap.String("booking_reference", b.Reference),
			)
		} else {
			b.ContractEnvelopeID = envelopeID
			changed = true
		}
	}

	// Only the reference columns are written. A full-row save here could
	// overwrite a status transition that landed while the providers ran.
	if changed {
		if err := uc.repo.SetBookingReferences(ctx, b.ID, b.DepositPaymentID, b.ContractEnvelopeID); err != nil {
			uc.log.Warn("collaborator reference save failed",
				zap.Error(err),
				zap.String("booking_reference", b.Reference),
			)
		}
	}
}
