package ports

import (
	"context"

	"github.com/99minutos/catalog-api/internal/core/domain"
)

// ServiceRepository defines persistence for Service records.
type ServiceRepository interface {
	// Create inserts the service; the store sets ID, CreatedAt and UpdatedAt.
	// A case-insensitive name clash yields a *domain.ConflictError.
	Create(ctx context.Context, s *domain.Service) (*domain.Service, error)
	FindByID(ctx context.Context, id int64) (*domain.Service, error)
	// List returns every service ordered by id.
	List(ctx context.Context) ([]*domain.Service, error)
	// Update persists s and refreshes UpdatedAt.
	Update(ctx context.Context, s *domain.Service) (*domain.Service, error)
	Delete(ctx context.Context, id int64) error
}
