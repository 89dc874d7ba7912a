package ports

import (
	"context"

	"github.com/99minutos/catalog-api/internal/core/domain"
	"github.com/99minutos/catalog-api/internal/core/query"
)

// DataRepository defines persistence for Data records.
type DataRepository interface {
	Create(ctx context.Context, d *domain.Data) (*domain.Data, error)
	FindByID(ctx context.Context, id int64) (*domain.Data, error)
	// List returns one page of records matching filter, ascending by id,
	// together with the total number of matching records.
	List(ctx context.Context, filter query.DataFilter, page query.PageRequest) ([]*domain.Data, int64, error)
	// Export returns every record matching filter, ascending by id.
	Export(ctx context.Context, filter query.DataFilter) ([]*domain.Data, error)
	Update(ctx context.Context, d *domain.Data) (*domain.Data, error)
	Delete(ctx context.Context, id int64) error
}
