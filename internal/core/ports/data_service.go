package ports

import (
	"context"

	"github.com/99minutos/catalog-api/internal/core/domain"
	"github.com/99minutos/catalog-api/internal/core/query"
	"github.com/99minutos/catalog-api/internal/core/validation"
)

// DataService defines use-case operations for Data records.
type DataService interface {
	Create(ctx context.Context, in validation.Input) (*domain.Data, error)
	Get(ctx context.Context, id int64) (*domain.Data, error)
	List(ctx context.Context, params query.ListParams) (*query.Page[*domain.Data], error)
	Export(ctx context.Context, search string) ([]*domain.Data, error)
	Update(ctx context.Context, id int64, in validation.Input) (*domain.Data, error)
	Delete(ctx context.Context, id int64) error
}
