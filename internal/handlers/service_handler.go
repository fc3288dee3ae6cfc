package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/northlight-studio/studio-scheduler/internal/httperr"
	"github.com/northlight-studio/studio-scheduler/internal/httpresp"
	"github.com/northlight-studio/studio-scheduler/internal/middleware"
	"github.com/northlight-studio/studio-scheduler/internal/models"
)

type ServiceHandler struct {
	db *gorm.DB
}

func NewServiceHandler(db *gorm.DB) *ServiceHandler {
	return &ServiceHandler{db: db}
}

// --------- Requests ---------

type CreateServiceRequest struct {
	Name              string  `json:"name" binding:"required"`
	Description       string  `json:"description"`
	DurationMin       int     `json:"duration_min" binding:"required,min=1"`
	Price             float64 `json:"price" binding:"min=0"`
	MaxBookingsPerDay *int    `json:"max_bookings_per_day"`
	Category          string  `json:"category"`
}

type UpdateServiceRequest struct {
	Name              *string  `json:"name,omitempty"`
	Description       *string  `json:"description,omitempty"`
	DurationMin       *int     `json:"duration_min,omitempty"`
	Price             *float64 `json:"price,omitempty"`
	MaxBookingsPerDay *int     `json:"max_bookings_per_day,omitempty"`
	Active            *bool    `json:"active,omitempty"`
	Category          *string  `json:"category,omitempty"`
}

// --------- Handlers ---------

func (h *ServiceHandler) List(c *gin.Context) {
	studioIDVal, _ := c.Get(middleware.ContextStudioID)
	studioID := studioIDVal.(uint)

	category := strings.ToLower(strings.TrimSpace(c.Query("category")))
	activeStr := strings.TrimSpace(c.Query("active"))
	query := strings.ToLower(strings.TrimSpace(c.Query("query")))

	q := h.db.Where("studio_id = ?", studioID)

	if category != "" {
		q = q.Where("LOWER(category) = ?", category)
	}

	if activeStr == "true" {
		q = q.Where("active = ?", true)
	} else if activeStr == "false" {
		q = q.Where("active = ?", false)
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

	httpresp.List(c, services)
}

func (h *ServiceHandler) Create(c *gin.Context) {
	studioIDVal, _ := c.Get(middleware.ContextStudioID)
	studioID := studioIDVal.(uint)

	var req CreateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	if req.MaxBookingsPerDay != nil && *req.MaxBookingsPerDay < 1 {
		httperr.BadRequest(c, "invalid_max_bookings", "Daily cap must be a positive integer.")
		return
	}

	service := models.Service{
		StudioID:          studioID,
		Name:              req.Name,
		Description:       req.Description,
		DurationMin:       req.DurationMin,
		Price:             req.Price,
		MaxBookingsPerDay: req.MaxBookingsPerDay,
		Category:          req.Category,
		Active:            true,
	}

	if err := h.db.Create(&service).Error; err != nil {
		httperr.Internal(c, "failed_to_create_service", "Failed to create service.")
		return
	}

	c.JSON(http.StatusCreated, service)
}

func (h *ServiceHandler) Update(c *gin.Context) {
	studioIDVal, _ := c.Get(middleware.ContextStudioID)
	studioID := studioIDVal.(uint)
	id := c.Param("id")

	var service models.Service
	if err := h.db.
		Where("id = ? AND studio_id = ?", id, studioID).
		First(&service).Error; err != nil {

		httperr.NotFound(c, "service_not_found", "Service not found.")
		return
	}

	var req UpdateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	if req.Name != nil {
		service.Name = *req.Name
	}
	if req.Description != nil {
		service.Description = *req.Description
	}
	if req.DurationMin != nil {
		if *req.DurationMin < 1 {
			httperr.BadRequest(c, "invalid_duration", "Duration must be at least one minute.")
			return
		}
		service.DurationMin = *req.DurationMin
	}
	if req.Price != nil {
		if *req.Price < 0 {
			httperr.BadRequest(c, "invalid_price", "Price cannot be negative.")
			return
		}
		service.Price = *req.Price
	}
	if req.MaxBookingsPerDay != nil {
		if *req.MaxBookingsPerDay < 1 {
			httperr.BadRequest(c, "invalid_max_bookings", "Daily cap must be a positive integer.")
			return
		}
		service.MaxBookingsPerDay = req.MaxBookingsPerDay
	}
	if req.Active != nil {
		service.Active = *req.Active
	}
	if req.Category != nil {
		service.Category = *req.Category
	}

	if err := h.db.Save(&service).Error; err != nil {
		httperr.Internal(c, "failed_to_update_service", "Failed to update service.")
		return
	}

	c.JSON(http.StatusOK, service)
}
