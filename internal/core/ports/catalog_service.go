package ports

import (
	"context"
	"io"

	"github.com/99minutos/catalog-api/internal/core/domain"
	"github.com/99minutos/catalog-api/internal/core/validation"
)

// ImageUpload is an image file attached to a create or update request.
type ImageUpload struct {
	Filename string
	Size     int64
	Content  io.Reader
}

// CatalogService defines use-case operations for Service records.
type CatalogService interface {
	Create(ctx context.Context, in validation.Input, image *ImageUpload) (*domain.Service, error)
	Get(ctx context.Context, id int64) (*domain.Service, error)
	List(ctx context.Context) ([]*domain.Service, error)
	Update(ctx context.Context, id int64, in validation.Input, image *ImageUpload) (*domain.Service, error)
	Delete(ctx context.Context, id int64) (*domain.Service, error)
}
