package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/northlight-studio/studio-scheduler/internal/httperr"
	"github.com/northlight-studio/studio-scheduler/internal/httpresp"
	"github.com/northlight-studio/studio-scheduler/internal/middleware"
	"github.com/northlight-studio/studio-scheduler/internal/models"
	ucBooking "github.com/northlight-studio/studio-scheduler/internal/usecase/booking"
)

// ======================================================
// HANDLER
// ======================================================

type BookingHandler struct {
	db *gorm.DB

	createUC      *ucBooking.CreateBooking
	confirmUC     *ucBooking.ConfirmBooking
	cancelUC      *ucBooking.CancelBooking
	completeUC    *ucBooking.CompleteBooking
	listByDateUC  *ucBooking.ListBookingsByDate
	listByMonthUC *ucBooking.ListBookingsByMonth
}

func NewBookingHandler(
	db *gorm.DB,
	createUC *ucBooking.CreateBooking,
	confirmUC *ucBooking.ConfirmBooking,
	cancelUC *ucBooking.CancelBooking,
	completeUC *ucBooking.CompleteBooking,
	listByDateUC *ucBooking.ListBookingsByDate,
	listByMonthUC *ucBooking.ListBookingsByMonth,
) *BookingHandler {
	return &BookingHandler{
		db:            db,
		createUC:      createUC,
		confirmUC:     confirmUC,
		cancelUC:      cancelUC,
		completeUC:    completeUC,
		listByDateUC:  listByDateUC,
		listByMonthUC: listByMonthUC,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateBookingRequest struct {
	ClientName  string `json:"client_name" binding:"required"`
	ClientEmail string `json:"client_email" binding:"required"`
	ClientPhone string `json:"client_phone"`
	ServiceID   uint   `json:"service_id" binding:"required"`
	Date        string `json:"date" binding:"required"` // YYYY-MM-DD
	Time        string `json:"time" binding:"required"` // HH:mm
	Notes       string `json:"notes"`
}

// ======================================================
// CREATE
// ======================================================

func (h *BookingHandler) Create(c *gin.Context) {
	studioID := c.MustGet(middleware.ContextStudioID).(uint)

	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	b, err := h.createUC.Execute(c.Request.Context(), ucBooking.CreateBookingInput{
		StudioID:    studioID,
		ClientName:  req.ClientName,
		ClientEmail: req.ClientEmail,
		ClientPhone: req.ClientPhone,
		ServiceID:   req.ServiceID,
		Date:        req.Date,
		Time:        req.Time,
		Notes:       req.Notes,
	})
	if err != nil {
		mapBookingErrors(c, err)
		return
	}

	c.JSON(http.StatusCreated, b)
}

// ======================================================
// LIST
// ======================================================

func (h *BookingHandler) ListByDate(c *gin.Context) {
	studioID := c.MustGet(middleware.ContextStudioID).(uint)

	dateStr := c.Query("date")
	if dateStr == "" {
		httperr.BadRequest(c, "missing_date", "Date is required.")
		return
	}

	var studio models.Studio
	if err := h.db.First(&studio, studioID).Error; err != nil {
		httperr.Internal(c, "studio_not_found", "Studio not found.")
		return
	}

	date, err := parseDateInStudio(&studio, dateStr)
	if err != nil {
		httperr.BadRequest(c, httperr.CodeInvalidDate, "Invalid date.")
		return
	}

	bookings, err := h.listByDateUC.Execute(c.Request.Context(), studioID, date)
	if err != nil {
		httperr.Internal(c, "failed_to_list_bookings", "Failed to list bookings.")
		return
	}

	httpresp.List(c, bookings)
}

func (h *BookingHandler) ListByMonth(c *gin.Context) {
	studioID := c.MustGet(middleware.ContextStudioID).(uint)

	yearStr := c.Query("year")
	monthStr := c.Query("month")

	if yearStr == "" || monthStr == "" {
		httperr.BadRequest(c, "missing_year_or_month", "Year and month are required.")
		return
	}

	year, err := strconv.Atoi(yearStr)
	if err != nil || year < 2000 || year > 2100 {
		httperr.BadRequest(c, "invalid_year", "Invalid year.")
		return
	}

	month, err := strconv.Atoi(monthStr)
	if err != nil || month < 1 || month > 12 {
		httperr.BadRequest(c, "invalid_month", "Invalid month.")
		return
	}

	bookings, err := h.listByMonthUC.Execute(c.Request.Context(), studioID, year, month)
	if err != nil {
		httperr.Internal(c, "failed_to_list_bookings", "Failed to list bookings.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"year":     year,
		"month":    month,
		"bookings": bookings,
	})
}

// ======================================================
// STATUS TRANSITIONS
// ======================================================

func (h *BookingHandler) Confirm(c *gin.Context) {
	h.runTransition(c, h.confirmUC.Execute)
}

func (h *BookingHandler) Cancel(c *gin.Context) {
	h.runTransition(c, h.cancelUC.Execute)
}

func (h *BookingHandler) Complete(c *gin.Context) {
	h.runTransition(c, h.completeUC.Execute)
}

func (h *BookingHandler) runTransition(
	c *gin.Context,
	exec func(ctx context.Context, studioID, userID, bookingID uint) (*models.Booking, error),
) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	studioID := c.MustGet(middleware.ContextStudioID).(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_booking_id", "Invalid booking id.")
		return
	}

	b, err := exec(c.Request.Context(), studioID, userID, uint(id))
	if err != nil {
		mapBookingErrors(c, err)
		return
	}

	c.JSON(http.StatusOK, b)
}
