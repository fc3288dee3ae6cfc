package httperr

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Error codes shared by the booking core and the HTTP layer.
const (
	CodeInvalidService    = "invalid_service"
	CodeInvalidDate       = "invalid_date"
	CodeSlotUnavailable   = "slot_unavailable"
	CodeInvalidTransition = "invalid_transition"
	CodeStorageError      = "storage_error"
)

type BusinessError struct {
	Code string
}

func (e BusinessError) Error() string {
	return e.Code
}

func ErrBusiness(code string) error {
	return BusinessError{Code: code}
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

// ValidationError carries the offending fields so the UI can highlight them.
type ValidationError struct {
	Fields map[string]string
}

func (e ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return fmt.Sprintf("validation_error: %s", strings.Join(keys, ", "))
}

func ErrValidation(fields map[string]string) error {
	return ValidationError{Fields: fields}
}

func AsValidation(err error) (ValidationError, bool) {
	var ve ValidationError
	ok := errors.As(err, &ve)
	return ve, ok
}
