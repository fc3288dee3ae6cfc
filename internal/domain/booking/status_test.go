package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/northlight-studio/studio-scheduler/internal/httperr"
	"github.com/northlight-studio/studio-scheduler/internal/models"
)

func TestStatusActive(t *testing.T) {
	assert.True(t, StatusPending.Active())
	assert.True(t, StatusConfirmed.Active())
	assert.False(t, StatusCompleted.Active())
	assert.False(t, StatusCancelled.Active())
}

func TestTransitionMatrix(t *testing.T) {
	cases := []struct {
		name    string
		from    Status
		check   func(Status) error
		allowed bool
	}{
		{"confirm from pending", StatusPending, CanConfirm, true},
		{"confirm from confirmed", StatusConfirmed, CanConfirm, false},
		{"confirm from completed", StatusCompleted, CanConfirm, false},
		{"confirm from cancelled", StatusCancelled, CanConfirm, false},

		{"complete from confirmed", StatusConfirmed, CanComplete, true},
		{"complete from pending", StatusPending, CanComplete, false},
		{"complete from completed", StatusCompleted, CanComplete, false},
		{"complete from cancelled", StatusCancelled, CanComplete, false},

		{"cancel from pending", StatusPending, CanCancel, true},
		{"cancel from confirmed", StatusConfirmed, CanCancel, true},
		{"cancel from completed", StatusCompleted, CanCancel, false},
		{"cancel from cancelled", StatusCancelled, CanCancel, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.check(tc.from)
			if tc.allowed {
				assert.NoError(t, err)
			} else {
				assert.True(t, httperr.IsBusiness(err, httperr.CodeInvalidTransition))
			}
		})
	}
}

func TestConfirmSetsStatusAndTimestamp(t *testing.T) {
	now := time.Date(2026, 10, 14, 9, 0, 0, 0, time.UTC)
	b := &models.Booking{Status: string(StatusPending)}

	require.NoError(t, Confirm(b, now))

	assert.Equal(t, string(StatusConfirmed), b.Status)
	require.NotNil(t, b.ConfirmedAt)
	assert.Equal(t, now, *b.ConfirmedAt)
}

func TestCancelFromConfirmed(t *testing.T) {
	now := time.Date(2026, 10, 14, 9, 0, 0, 0, time.UTC)
	b := &models.Booking{Status: string(StatusConfirmed)}

	require.NoError(t, Cancel(b, now))

	assert.Equal(t, string(StatusCancelled), b.Status)
	require.NotNil(t, b.CancelledAt)
}

func TestCompleteRejectedAfterCancel(t *testing.T) {
	now := time.Date(2026, 10, 14, 9, 0, 0, 0, time.UTC)
	b := &models.Booking{Status: string(StatusCancelled)}

	err := Complete(b, now)

	assert.True(t, httperr.IsBusiness(err, httperr.CodeInvalidTransition))
	assert.Equal(t, string(StatusCancelled), b.Status, "failed transition must not mutate")
	assert.Nil(t, b.CompletedAt)
}
