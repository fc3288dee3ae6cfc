package booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/northlight-studio/studio-scheduler/internal/httperr"
	"github.com/northlight-studio/studio-scheduler/internal/models"
	"github.com/northlight-studio/studio-scheduler/internal/notification"
	"github.com/northlight-studio/studio-scheduler/internal/timezone"
)

func createFixture() (*fakeRepo, *CreateBooking) {
	repo := &fakeRepo{
		studio: &models.Studio{
			ID:                1,
			Slug:              "northlight",
			Name:              "Northlight Studio",
			Timezone:          "America/Denver",
			MinAdvanceMinutes: 120,
		},
		service: &models.Service{
			ID:          10,
			StudioID:    1,
			Name:        "Portrait Session",
			DurationMin: 60,
			Active:      true,
		},
		wh: &models.WorkingHours{
			StudioID:  1,
			StartTime: "09:00",
			EndTime:   "17:00",
			Active:    true,
		},
	}

	uc := NewCreateBooking(
		repo,
		nil,
		nil,
		notification.NewService(nil, zap.NewNop()),
		nil,
		nil,
		5000,
		zap.NewNop(),
	)

	// The evening before the requested day.
	loc := timezone.Location("America/Denver")
	uc.now = fixedNow(time.Date(2026, 10, 13, 18, 0, 0, 0, loc))

	return repo, uc
}

func validInput() CreateBookingInput {
	return CreateBookingInput{
		StudioID:    1,
		ClientName:  "Ana Reyes",
		ClientEmail: "ana@example.com",
		ClientPhone: "+1 555 0100",
		ServiceID:   10,
		Date:        "2026-10-14",
		Time:        "10:00",
		Notes:       "Outdoor portraits",
	}
}

func TestCreateBooking_Success(t *testing.T) {
	repo, uc := createFixture()

	b, err := uc.Execute(context.Background(), validInput())
	require.NoError(t, err)
	require.NotNil(t, repo.created)

	assert.NotEmpty(t, b.Reference)
	assert.Equal(t, "pending", b.Status)
	assert.Equal(t, uint(1), b.StudioID)
	assert.Equal(t, uint(10), b.ServiceID)
	assert.Equal(t, uint(77), b.ClientID)

	loc := timezone.Location("America/Denver")
	assert.Equal(t, time.Date(2026, 10, 14, 10, 0, 0, 0, loc), b.StartTime)
	assert.Equal(t, b.StartTime.Add(60*time.Minute), b.EndTime)
}

func TestCreateBooking_MissingContactFields(t *testing.T) {
	_, uc := createFixture()

	in := validInput()
	in.ClientName = "   "
	in.ClientEmail = ""

	_, err := uc.Execute(context.Background(), in)

	ve, ok := httperr.AsValidation(err)
	require.True(t, ok)
	assert.Equal(t, "required", ve.Fields["client_name"])
	assert.Equal(t, "required", ve.Fields["client_email"])
}

func TestCreateBooking_MalformedDate(t *testing.T) {
	_, uc := createFixture()

	in := validInput()
	in.Date = "14/10/2026"

	_, err := uc.Execute(context.Background(), in)
	assert.True(t, httperr.IsBusiness(err, httperr.CodeInvalidDate))
}

func TestCreateBooking_TooSoon(t *testing.T) {
	_, uc := createFixture()

	loc := timezone.Location("America/Denver")
	uc.now = fixedNow(time.Date(2026, 10, 14, 9, 0, 0, 0, loc))

	// 10:00 start is only 60 minutes out, min advance is 120.
	_, err := uc.Execute(context.Background(), validInput())
	assert.True(t, httperr.IsBusiness(err, "too_soon"))
}

func TestCreateBooking_InactiveService(t *testing.T) {
	repo, uc := createFixture()
	repo.service.Active = false

	_, err := uc.Execute(context.Background(), validInput())
	assert.True(t, httperr.IsBusiness(err, httperr.CodeInvalidService))
}

func TestCreateBooking_OutsideWorkingHours(t *testing.T) {
	_, uc := createFixture()

	in := validInput()
	in.Time = "18:00"

	_, err := uc.Execute(context.Background(), in)
	assert.True(t, httperr.IsBusiness(err, "outside_working_hours"))
}

func TestCreateBooking_MisalignedStartTime(t *testing.T) {
	_, uc := createFixture()

	// Inside the window but not on a slot boundary.
	in := validInput()
	in.Time = "10:30"

	_, err := uc.Execute(context.Background(), in)
	assert.True(t, httperr.IsBusiness(err, httperr.CodeSlotUnavailable))
}

func TestCreateBooking_SlotAlreadyTaken(t *testing.T) {
	repo, uc := createFixture()

	loc := timezone.Location("America/Denver")
	repo.dayBookings = []models.Booking{{
		StartTime: time.Date(2026, 10, 14, 10, 0, 0, 0, loc),
		EndTime:   time.Date(2026, 10, 14, 11, 0, 0, 0, loc),
		Status:    "pending",
	}}

	_, err := uc.Execute(context.Background(), validInput())
	assert.True(t, httperr.IsBusiness(err, httperr.CodeSlotUnavailable))
}

func TestCreateBooking_DailyCapReached(t *testing.T) {
	repo, uc := createFixture()
	repo.service.MaxBookingsPerDay = intPtr(1)

	loc := timezone.Location("America/Denver")
	repo.dayBookings = []models.Booking{{
		StartTime: time.Date(2026, 10, 14, 14, 0, 0, 0, loc),
		EndTime:   time.Date(2026, 10, 14, 15, 0, 0, 0, loc),
		Status:    "confirmed",
	}}

	// 10:00 itself is free, but the day is at capacity.
	_, err := uc.Execute(context.Background(), validInput())
	assert.True(t, httperr.IsBusiness(err, httperr.CodeSlotUnavailable))
}

func TestCreateBooking_ConcurrentInsertLoses(t *testing.T) {
	repo, uc := createFixture()
	repo.createErr = httperr.ErrBusiness(httperr.CodeSlotUnavailable)

	_, err := uc.Execute(context.Background(), validInput())
	assert.True(t, httperr.IsBusiness(err, httperr.CodeSlotUnavailable))
}

func TestCreateBooking_InvalidatesCachedDay(t *testing.T) {
	repo, uc := createFixture()
	cache := &fakeCache{}
	uc.cache = cache

	_, err := uc.Execute(context.Background(), validInput())
	require.NoError(t, err)
	require.NotNil(t, repo.created)

	assert.Equal(t, []string{"2026-10-14"}, cache.invalidated)
}

func TestCreateBooking_ProvidersNeverTouchReturnedBooking(t *testing.T) {
	repo, uc := createFixture()
	repo.refsDone = make(chan struct{})
	uc.deposits = &fakeDeposits{paymentID: "pi_1NXrQq"}
	uc.contracts = &fakeContracts{envelopeID: "env-3f2a"}

	b, err := uc.Execute(context.Background(), validInput())
	require.NoError(t, err)

	// The handler would be serializing b right now.
	snapshot := *b

	select {
	case <-repo.refsDone:
	case <-time.After(2 * time.Second):
		t.Fatal("provider references were never persisted")
	}

	assert.Equal(t, snapshot, *b)
	assert.Empty(t, b.DepositPaymentID)
	assert.Empty(t, b.ContractEnvelopeID)
}

func TestCreateBooking_ProviderRefsSavedAsColumnsOnly(t *testing.T) {
	repo, uc := createFixture()
	repo.refsDone = make(chan struct{})
	uc.deposits = &fakeDeposits{paymentID: "pi_1NXrQq"}
	uc.contracts = &fakeContracts{envelopeID: "env-3f2a"}

	b, err := uc.Execute(context.Background(), validInput())
	require.NoError(t, err)

	select {
	case <-repo.refsDone:
	case <-time.After(2 * time.Second):
		t.Fatal("provider references were never persisted")
	}

	// A full-row save here could clobber a status change that landed
	// while the providers were running.
	assert.Nil(t, repo.updated)
	assert.Equal(t, b.ID, repo.refsBookingID)
	assert.Equal(t, "pi_1NXrQq", repo.refsDepositID)
	assert.Equal(t, "env-3f2a", repo.refsEnvelopeID)
}

func TestCreateBooking_FailedProvidersSaveNothing(t *testing.T) {
	repo, uc := createFixture()
	done := make(chan struct{})
	uc.deposits = &fakeDeposits{err: errors.New("stripe: api unreachable")}
	uc.contracts = &fakeContracts{err: errors.New("docusign: 503")}
	uc.notifier = notification.NewService(notifyHook{done}, zap.NewNop())

	_, err := uc.Execute(context.Background(), validInput())
	require.NoError(t, err)

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("confirmation email was never attempted")
	}

	assert.Nil(t, repo.updated)
	assert.Zero(t, repo.refsBookingID)
}

// notifyHook signals when the detached goroutine reaches the email step.
type notifyHook struct{ done chan struct{} }

func (h notifyHook) Send(ctx context.Context, msg notification.EmailMessage) error {
	close(h.done)
	return nil
}
