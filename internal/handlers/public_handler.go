package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	domain "github.com/northlight-studio/studio-scheduler/internal/domain/booking"
	"github.com/northlight-studio/studio-scheduler/internal/httperr"
	"github.com/northlight-studio/studio-scheduler/internal/models"
	"github.com/northlight-studio/studio-scheduler/internal/storage"
	ucBooking "github.com/northlight-studio/studio-scheduler/internal/usecase/booking"
)

////////////////////////////////////////////////////////
// HANDLER
////////////////////////////////////////////////////////

// PublicHandler backs the embeddable booking widget and the public site:
// no auth, everything scoped by studio slug.
type PublicHandler struct {
	db             *gorm.DB
	availabilityUC *ucBooking.GetAvailability
	createUC       *ucBooking.CreateBooking
	media          storage.StorageService
}

func NewPublicHandler(
	db *gorm.DB,
	availabilityUC *ucBooking.GetAvailability,
	createUC *ucBooking.CreateBooking,
	media storage.StorageService,
) *PublicHandler {
	return &PublicHandler{
		db:             db,
		availabilityUC: availabilityUC,
		createUC:       createUC,
		media:          media,
	}
}

////////////////////////////////////////////////////////
// DTOs
////////////////////////////////////////////////////////

type PublicCreateBookingRequest struct {
	ClientName  string `json:"client_name" binding:"required"`
	ClientEmail string `json:"client_email" binding:"required"`
	ClientPhone string `json:"client_phone"`
	ServiceID   uint   `json:"service_id" binding:"required"`
	Date        string `json:"date" binding:"required"` // YYYY-MM-DD
	Time        string `json:"time" binding:"required"` // HH:mm
	Notes       string `json:"notes"`
}

////////////////////////////////////////////////////////
// SERVICES
////////////////////////////////////////////////////////

func (h *PublicHandler) ListServices(c *gin.Context) {
	slug := c.Param("slug")

	var studio models.Studio
	if err := h.db.Where("slug = ?", slug).First(&studio).Error; err != nil {
		httperr.NotFound(c, "studio_not_found", "Studio not found.")
		return
	}

	category := strings.TrimSpace(strings.ToLower(c.Query("category")))
	query := strings.TrimSpace(strings.ToLower(c.Query("query")))

	q := h.db.
		Where("studio_id = ? AND active = true", studio.ID)

	if category != "" {
		q = q.Where("LOWER(category) = ?", category)
	}

	if query != "" {
		like := "%" + query + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", like, like)
	}

	var services []models.Service
	if err := q.Order("id ASC").Find(&services).Error; err != nil {
		httperr.Internal(c, "failed_to_list_services", "Failed to list services.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"studio":   studio,
		"services": services,
	})
}

////////////////////////////////////////////////////////
// AVAILABILITY
////////////////////////////////////////////////////////

func (h *PublicHandler) Availability(c *gin.Context) {
	slug := c.Param("slug")
	dateStr := c.Query("date")
	serviceIDStr := c.Query("service_id")

	if dateStr == "" || serviceIDStr == "" {
		httperr.BadRequest(c, "missing_params", "Date and service are required.")
		return
	}

	serviceID, err := strconv.ParseUint(serviceIDStr, 10, 64)
	if err != nil {
		httperr.BadRequest(c, httperr.CodeInvalidService, "Invalid service.")
		return
	}

	var studio models.Studio
	if err := h.db.Where("slug = ?", slug).First(&studio).Error; err != nil {
		httperr.NotFound(c, "studio_not_found", "Studio not found.")
		return
	}

	date, err := parseDateInStudio(&studio, dateStr)
	if err != nil {
		httperr.BadRequest(c, httperr.CodeInvalidDate, "Invalid date.")
		return
	}

	slots, err := h.availabilityUC.Execute(
		c.Request.Context(),
		domain.AvailabilityInput{
			StudioID:  studio.ID,
			ServiceID: uint(serviceID),
			Date:      date,
		},
	)

	if err != nil {
		if httperr.IsBusiness(err, httperr.CodeInvalidService) {
			httperr.BadRequest(c, httperr.CodeInvalidService, "Invalid service.")
			return
		}
		if httperr.IsBusiness(err, httperr.CodeInvalidDate) {
			httperr.BadRequest(c, httperr.CodeInvalidDate, "Invalid or past date.")
			return
		}

		httperr.Internal(c, "availability_failed", "Failed to compute availability.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"date":  dateStr,
		"slots": slots,
	})
}

////////////////////////////////////////////////////////
// CREATE BOOKING
////////////////////////////////////////////////////////

func (h *PublicHandler) CreateBooking(c *gin.Context) {
	slug := c.Param("slug")

	var studio models.Studio
	if err := h.db.Where("slug = ?", slug).First(&studio).Error; err != nil {
		httperr.NotFound(c, "studio_not_found", "Studio not found.")
		return
	}

	var req PublicCreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	b, err := h.createUC.Execute(
		c.Request.Context(),
		ucBooking.CreateBookingInput{
			StudioID:    studio.ID,
			ClientName:  req.ClientName,
			ClientEmail: req.ClientEmail,
			ClientPhone: req.ClientPhone,
			ServiceID:   req.ServiceID,
			Date:        req.Date,
			Time:        req.Time,
			Notes:       req.Notes,
		},
	)

	if err != nil {
		mapBookingErrors(c, err)
		return
	}

	c.JSON(http.StatusCreated, b)
}

////////////////////////////////////////////////////////
// GALLERY
////////////////////////////////////////////////////////

type publicAlbum struct {
	Title       string `json:"title"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
	CoverURL    string `json:"cover_url,omitempty"`
}

func (h *PublicHandler) Gallery(c *gin.Context) {
	slug := c.Param("slug")

	var studio models.Studio
	if err := h.db.Where("slug = ?", slug).First(&studio).Error; err != nil {
		httperr.NotFound(c, "studio_not_found", "Studio not found.")
		return
	}

	var albums []models.GalleryAlbum
	if err := h.db.
		Where("studio_id = ? AND published = true", studio.ID).
		Order("created_at DESC").
		Find(&albums).Error; err != nil {

		httperr.Internal(c, "failed_to_list_albums", "Failed to load the gallery.")
		return
	}

	out := make([]publicAlbum, 0, len(albums))
	for _, a := range albums {
		pa := publicAlbum{
			Title:       a.Title,
			Slug:        a.Slug,
			Description: a.Description,
		}
		if h.media != nil && a.CoverPublicID != "" {
			if url, err := h.media.DeliveryURL(a.CoverPublicID); err == nil {
				pa.CoverURL = url
			}
		}
		out = append(out, pa)
	}

	c.JSON(http.StatusOK, gin.H{
		"studio": studio.Name,
		"albums": out,
	})
}
