package models

import "time"

type GalleryAlbum struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	StudioID uint `json:"studio_id"`

	Title       string `gorm:"size:100;not null" json:"title"`
	Slug        string `gorm:"size:100;not null" json:"slug"`
	Description string `gorm:"size:500" json:"description"`

	// Cloudinary public ID of the cover image.
	CoverPublicID string `gorm:"size:255" json:"cover_public_id"`

	Published bool `gorm:"default:false" json:"published"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
