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

type ClientHandler struct {
	db *gorm.DB
}

func NewClientHandler(db *gorm.DB) *ClientHandler {
	return &ClientHandler{db: db}
}

type UpdateClientRequest struct {
	Name  *string `json:"name,omitempty"`
	Email *string `json:"email,omitempty"`
	Phone *string `json:"phone,omitempty"`
	Notes *string `json:"notes,omitempty"`
}

// ======================================================
// LIST CLIENTS (ADMIN)
// ======================================================
func (h *ClientHandler) List(c *gin.Context) {
	studioID := c.MustGet(middleware.ContextStudioID).(uint)

	query := strings.ToLower(strings.TrimSpace(c.Query("query")))

	q := h.db.Where("studio_id = ?", studioID)

	if query != "" {
		like := "%" + query + "%"
		q = q.Where(
			"LOWER(name) LIKE ? OR phone LIKE ? OR LOWER(email) LIKE ?",
			like, like, like,
		)
	}

	var clients []models.Client
	if err := q.
		Order("created_at DESC").
		Find(&clients).Error; err != nil {

		httperr.Internal(c, "failed_to_list_clients", "Failed to list clients.")
		return
	}

	httpresp.List(c, clients)
}

// ======================================================
// CREATE CLIENT (ADMIN)
// ======================================================

type CreateClientRequest struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"required"`
	Phone string `json:"phone"`
	Notes string `json:"notes"`
}

func (h *ClientHandler) Create(c *gin.Context) {
	studioID := c.MustGet(middleware.ContextStudioID).(uint)

	var req CreateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Name and email are required.")
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	// Email is the dedupe key within a studio.
	var existing models.Client
	err := h.db.
		Where("studio_id = ? AND email = ?", studioID, email).
		First(&existing).Error
	if err == nil {
		httperr.Conflict(c, "client_exists", "A client with this email already exists.")
		return
	}

	client := models.Client{
		StudioID: studioID,
		Name:     strings.TrimSpace(req.Name),
		Email:    email,
		Phone:    strings.TrimSpace(req.Phone),
		Notes:    req.Notes,
	}

	if err := h.db.Create(&client).Error; err != nil {
		httperr.Internal(c, "failed_to_create_client", "Failed to create client.")
		return
	}

	c.JSON(http.StatusCreated, client)
}

// ======================================================
// UPDATE CLIENT (ADMIN)
// ======================================================
func (h *ClientHandler) Update(c *gin.Context) {
	studioID := c.MustGet(middleware.ContextStudioID).(uint)
	id := c.Param("id")

	var client models.Client
	if err := h.db.
		Where("id = ? AND studio_id = ?", id, studioID).
		First(&client).Error; err != nil {

		httperr.NotFound(c, "client_not_found", "Client not found.")
		return
	}

	var req UpdateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			httperr.BadRequest(c, "invalid_name", "Name cannot be empty.")
			return
		}
		client.Name = *req.Name
	}
	if req.Email != nil {
		client.Email = strings.ToLower(strings.TrimSpace(*req.Email))
	}
	if req.Phone != nil {
		client.Phone = *req.Phone
	}
	if req.Notes != nil {
		client.Notes = *req.Notes
	}

	if err := h.db.Save(&client).Error; err != nil {
		httperr.Internal(c, "failed_to_update_client", "Failed to update client.")
		return
	}

	c.JSON(http.StatusOK, client)
}
