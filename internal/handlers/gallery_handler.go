package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/northlight-studio/studio-scheduler/internal/httperr"
	"github.com/northlight-studio/studio-scheduler/internal/middleware"
	"github.com/northlight-studio/studio-scheduler/internal/models"
	"github.com/northlight-studio/studio-scheduler/internal/storage"
)

type GalleryHandler struct {
	db    *gorm.DB
	media storage.StorageService
}

func NewGalleryHandler(db *gorm.DB, media storage.StorageService) *GalleryHandler {
	return &GalleryHandler{db: db, media: media}
}

// --------- Requests ---------

type CreateAlbumRequest struct {
	Title       string `json:"title" binding:"required"`
	Slug        string `json:"slug" binding:"required"`
	Description string `json:"description"`
}

type UpdateAlbumRequest struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Published   *bool   `json:"published,omitempty"`
}

// --------- Handlers ---------

func (h *GalleryHandler) List(c *gin.Context) {
	studioID := c.MustGet(middleware.ContextStudioID).(uint)

	var albums []models.GalleryAlbum
	if err := h.db.
		Where("studio_id = ?", studioID).
		Order("created_at DESC").
		Find(&albums).Error; err != nil {

		httperr.Internal(c, "failed_to_list_albums", "Failed to list albums.")
		return
	}

	c.JSON(http.StatusOK, albums)
}

func (h *GalleryHandler) Create(c *gin.Context) {
	studioID := c.MustGet(middleware.ContextStudioID).(uint)

	var req CreateAlbumRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	album := models.GalleryAlbum{
		StudioID:    studioID,
		Title:       req.Title,
		Slug:        strings.ToLower(strings.TrimSpace(req.Slug)),
		Description: req.Description,
	}

	if err := h.db.Create(&album).Error; err != nil {
		httperr.Internal(c, "failed_to_create_album", "Failed to create album.")
		return
	}

	c.JSON(http.StatusCreated, album)
}

func (h *GalleryHandler) Update(c *gin.Context) {
	studioID := c.MustGet(middleware.ContextStudioID).(uint)
	id := c.Param("id")

	var album models.GalleryAlbum
	if err := h.db.
		Where("id = ? AND studio_id = ?", id, studioID).
		First(&album).Error; err != nil {

		httperr.NotFound(c, "album_not_found", "Album not found.")
		return
	}

	var req UpdateAlbumRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	if req.Title != nil {
		album.Title = *req.Title
	}
	if req.Description != nil {
		album.Description = *req.Description
	}
	if req.Published != nil {
		album.Published = *req.Published
	}

	if err := h.db.Save(&album).Error; err != nil {
		httperr.Internal(c, "failed_to_update_album", "Failed to update album.")
		return
	}

	c.JSON(http.StatusOK, album)
}

// UploadCover accepts a multipart "file" field and stores it with the media
// collaborator, keeping only the returned public ID.
func (h *GalleryHandler) UploadCover(c *gin.Context) {
	studioID := c.MustGet(middleware.ContextStudioID).(uint)
	id := c.Param("id")

	if h.media == nil {
		httperr.Internal(c, "media_storage_disabled", "Media storage is not configured.")
		return
	}

	var album models.GalleryAlbum
	if err := h.db.
		Where("id = ? AND studio_id = ?", id, studioID).
		First(&album).Error; err != nil {

		httperr.NotFound(c, "album_not_found", "Album not found.")
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		httperr.BadRequest(c, "missing_file", "A file field is required.")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		httperr.BadRequest(c, "unreadable_file", "Could not read the uploaded file.")
		return
	}
	defer file.Close()

	publicID, err := h.media.UploadImage(c.Request.Context(), file, "gallery")
	if err != nil {
		httperr.Internal(c, "upload_failed", "Failed to store the image.")
		return
	}

	// Replacing an existing cover leaves the old asset behind; clean it up.
	if album.CoverPublicID != "" {
		_ = h.media.DeleteImage(c.Request.Context(), album.CoverPublicID)
	}

	album.CoverPublicID = publicID
	if err := h.db.Save(&album).Error; err != nil {
		httperr.Internal(c, "failed_to_update_album", "Failed to save the album cover.")
		return
	}

	c.JSON(http.StatusOK, album)
}
