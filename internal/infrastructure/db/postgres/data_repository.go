package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/99minutos/catalog-api/internal/core/domain"
	"github.com/99minutos/catalog-api/internal/core/query"
)

type DataRepository struct {
	pool *pgxpool.Pool
}

func NewDataRepository(pool *pgxpool.Pool) *DataRepository {
	return &DataRepository{pool: pool}
}

// dataWhere renders the search filter. The age column is compared as text
// so a search for "5" matches 5, 15 and 50.
func dataWhere(filter query.DataFilter) (string, []any) {
	if !filter.Active() {
		return "", nil
	}
	return ` WHERE name ILIKE $1 ESCAPE '\' OR CAST(age AS TEXT) LIKE $1 ESCAPE '\'`,
		[]any{likePattern(filter.Search)}
}

func (r *DataRepository) Create(ctx context.Context, d *domain.Data) (*domain.Data, error) {
	created := *d
	err := r.pool.QueryRow(ctx,
		`INSERT INTO data (name, age) VALUES ($1, $2) RETURNING id`, d.Name, d.Age,
	).Scan(&created.ID)
	if err != nil {
		return nil, fmt.Errorf("insert data: %w", mapError(err))
	}
	return &created, nil
}

func (r *DataRepository) FindByID(ctx context.Context, id int64) (*domain.Data, error) {
	var d domain.Data
	err := r.pool.QueryRow(ctx, `SELECT id, name, age FROM data WHERE id = $1`, id).Scan(&d.ID, &d.Name, &d.Age)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.NewNotFound(domain.ResourceData, id)
	}
	if err != nil {
		return nil, fmt.Errorf("find data: %w", err)
	}
	return &d, nil
}

func (r *DataRepository) List(ctx context.Context, filter query.DataFilter, page query.PageRequest) ([]*domain.Data, int64, error) {
	where, args := dataWhere(filter)

	var total int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM data`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count data: %w", err)
	}

	n := len(args)
	sql := fmt.Sprintf(`SELECT id, name, age FROM data%s ORDER BY id LIMIT $%d OFFSET $%d`, where, n+1, n+2)
	items, err := r.collect(ctx, sql, append(args, page.PerPage, page.Offset())...)
	if err != nil {
		return nil, 0, fmt.Errorf("list data: %w", err)
	}
	return items, total, nil
}

func (r *DataRepository) Export(ctx context.Context, filter query.DataFilter) ([]*domain.Data, error) {
	where, args := dataWhere(filter)
	items, err := r.collect(ctx, `SELECT id, name, age FROM data`+where+` ORDER BY id`, args...)
	if err != nil {
		return nil, fmt.Errorf("export data: %w", err)
	}
	return items, nil
}

func (r *DataRepository) collect(ctx context.Context, sql string, args ...any) ([]*domain.Data, error) {
	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (*domain.Data, error) {
		var d domain.Data
		err := row.Scan(&d.ID, &d.Name, &d.Age)
		return &d, err
	})
}

func (r *DataRepository) Update(ctx context.Context, d *domain.Data) (*domain.Data, error) {
	tag, err := r.pool.Exec(ctx, `UPDATE data SET name = $1, age = $2 WHERE id = $3`, d.Name, d.Age, d.ID)
	if err != nil {
		return nil, fmt.Errorf("update data: %w", mapError(err))
	}
	if tag.RowsAffected() == 0 {
		return nil, domain.NewNotFound(domain.ResourceData, d.ID)
	}
	updated := *d
	return &updated, nil
}

func (r *DataRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM data WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete data: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NewNotFound(domain.ResourceData, id)
	}
	return nil
}
