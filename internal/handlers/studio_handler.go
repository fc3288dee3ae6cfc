package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/northlight-studio/studio-scheduler/internal/httperr"
	"github.com/northlight-studio/studio-scheduler/internal/middleware"
	"github.com/northlight-studio/studio-scheduler/internal/models"
	"github.com/northlight-studio/studio-scheduler/internal/timezone"
)

type StudioHandler struct {
	db *gorm.DB
}

func NewStudioHandler(db *gorm.DB) *StudioHandler {
	return &StudioHandler{db: db}
}

type UpdateStudioRequest struct {
	Name              *string `json:"name,omitempty"`
	Phone             *string `json:"phone,omitempty"`
	Address           *string `json:"address,omitempty"`
	Timezone          *string `json:"timezone,omitempty"`
	MinAdvanceMinutes *int    `json:"min_advance_minutes,omitempty"`
}

func (h *StudioHandler) GetMeStudio(c *gin.Context) {
	studioIDVal, _ := c.Get(middleware.ContextStudioID)
	studioID := studioIDVal.(uint)

	var studio models.Studio
	if err := h.db.First(&studio, studioID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "studio_not_found", "Studio not found.")
			return
		}
		httperr.Internal(c, "failed_to_get_studio", "Failed to load studio.")
		return
	}

	c.JSON(http.StatusOK, studio)
}

func (h *StudioHandler) UpdateMeStudio(c *gin.Context) {
	studioIDVal, _ := c.Get(middleware.ContextStudioID)
	studioID := studioIDVal.(uint)

	var studio models.Studio
	if err := h.db.First(&studio, studioID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "studio_not_found", "Studio not found.")
			return
		}
		httperr.Internal(c, "failed_to_get_studio", "Failed to load studio.")
		return
	}

	var req UpdateStudioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	if req.Name != nil {
		studio.Name = *req.Name
	}
	if req.Phone != nil {
		studio.Phone = *req.Phone
	}
	if req.Address != nil {
		studio.Address = *req.Address
	}

	if req.Timezone != nil {
		if !timezone.IsValid(*req.Timezone) {
			httperr.BadRequest(c, "invalid_timezone", "Unknown timezone name.")
			return
		}
		studio.Timezone = *req.Timezone
	}

	if req.MinAdvanceMinutes != nil {
		if *req.MinAdvanceMinutes < 0 {
			httperr.BadRequest(c, "invalid_min_advance", "Minimum advance must be zero or positive minutes.")
			return
		}
		studio.MinAdvanceMinutes = *req.MinAdvanceMinutes
	}

	if err := h.db.Save(&studio).Error; err != nil {
		httperr.Internal(c, "failed_to_update_studio", "Failed to save studio settings.")
		return
	}

	c.JSON(http.StatusOK, studio)
}
