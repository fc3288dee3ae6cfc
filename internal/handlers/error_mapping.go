package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/northlight-studio/studio-scheduler/internal/httperr"
)

// mapBookingErrors translates booking-core errors to HTTP responses.
// Anything unmapped is a storage failure.
func mapBookingErrors(c *gin.Context, err error) {
	if ve, ok := httperr.AsValidation(err); ok {
		c.JSON(http.StatusBadRequest, gin.H{
			"error_code": "validation_error",
			"message":    "Some fields are missing or invalid.",
			"fields":     ve.Fields,
		})
		return
	}

	switch {
	case httperr.IsBusiness(err, httperr.CodeInvalidService):
		httperr.BadRequest(c, httperr.CodeInvalidService, "Unknown or inactive service.")
	case httperr.IsBusiness(err, httperr.CodeInvalidDate):
		httperr.BadRequest(c, httperr.CodeInvalidDate, "Invalid or past date.")
	case httperr.IsBusiness(err, "too_soon"):
		httperr.BadRequest(c, "too_soon", "That time is too close to now.")
	case httperr.IsBusiness(err, "outside_working_hours"):
		httperr.BadRequest(c, "outside_working_hours", "Outside studio hours.")
	case httperr.IsBusiness(err, httperr.CodeSlotUnavailable):
		httperr.Conflict(c, httperr.CodeSlotUnavailable, "That slot was just taken. Pick another one.")
	case httperr.IsBusiness(err, httperr.CodeInvalidTransition):
		httperr.BadRequest(c, httperr.CodeInvalidTransition, "The booking status does not allow this change.")
	case httperr.IsBusiness(err, "booking_not_found"):
		httperr.NotFound(c, "booking_not_found", "Booking not found.")
	default:
		httperr.Internal(c, httperr.CodeStorageError, "Something went wrong saving the booking.")
	}
}
