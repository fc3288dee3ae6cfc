package storage

import (
	"context"
	"io"
)

// StorageService abstracts the media CDN used for gallery assets. The core
// stores only public IDs; URLs are derived on the way out.
type StorageService interface {
	UploadImage(ctx context.Context, file io.Reader, folder string) (publicID string, err error)
	DeleteImage(ctx context.Context, publicID string) error
	DeliveryURL(publicID string) (string, error)
}
