package httperr

import (
	"errors"
	"fmt"
	"testing"
)

func TestIsBusiness(t *testing.T) {
	err := ErrBusiness(CodeSlotUnavailable)

	if !IsBusiness(err, CodeSlotUnavailable) {
		t.Error("expected match on own code")
	}
	if IsBusiness(err, CodeInvalidDate) {
		t.Error("expected no match on a different code")
	}
	if IsBusiness(errors.New("boom"), CodeSlotUnavailable) {
		t.Error("expected no match on a plain error")
	}
}

func TestIsBusiness_Wrapped(t *testing.T) {
	err := fmt.Errorf("create booking: %w", ErrBusiness(CodeSlotUnavailable))

	if !IsBusiness(err, CodeSlotUnavailable) {
		t.Error("expected match through wrapping")
	}
}

func TestValidationError(t *testing.T) {
	err := ErrValidation(map[string]string{
		"client_email": "required",
		"client_name":  "required",
	})

	ve, ok := AsValidation(err)
	if !ok {
		t.Fatal("expected a ValidationError")
	}
	if ve.Fields["client_name"] != "required" {
		t.Errorf("unexpected fields: %v", ve.Fields)
	}

	// Field order in the message is stable.
	want := "validation_error: client_email, client_name"
	if err.Error() != want {
		t.Errorf("got %q, want %q", err.Error(), want)
	}
}

func TestAsValidation_OtherError(t *testing.T) {
	if _, ok := AsValidation(ErrBusiness(CodeInvalidDate)); ok {
		t.Error("business error must not match as validation")
	}
}
