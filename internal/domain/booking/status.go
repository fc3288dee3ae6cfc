package booking

import "github.com/northlight-studio/studio-scheduler/internal/httperr"

// ===============================
// Booking Status
// ===============================

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// Active statuses hold a slot and count against the daily cap.
func (s Status) Active() bool {
	return s == StatusPending || s == StatusConfirmed
}

// ===============================
// Transitions
// ===============================

// Only forward: pending -> confirmed -> completed.
// Cancel is allowed from pending or confirmed.
// Nothing leaves completed or cancelled.

func CanConfirm(current Status) error {
	if current != StatusPending {
		return httperr.ErrBusiness(httperr.CodeInvalidTransition)
	}
	return nil
}

func CanComplete(current Status) error {
	if current != StatusConfirmed {
		return httperr.ErrBusiness(httperr.CodeInvalidTransition)
	}
	return nil
}

func CanCancel(current Status) error {
	if current != StatusPending && current != StatusConfirmed {
		return httperr.ErrBusiness(httperr.CodeInvalidTransition)
	}
	return nil
}

func InitialStatus() Status {
	return StatusPending
}
