package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/99minutos/catalog-api/internal/core/domain"
)

const serviceColumns = "id, service, price, image, created_at, updated_at"

type ServiceRepository struct {
	pool *pgxpool.Pool
}

func NewServiceRepository(pool *pgxpool.Pool) *ServiceRepository {
	return &ServiceRepository{pool: pool}
}

func (r *ServiceRepository) Create(ctx context.Context, s *domain.Service) (*domain.Service, error) {
	created, err := scanService(r.pool.QueryRow(ctx,
		`INSERT INTO services (service, price, image) VALUES ($1, $2, $3) RETURNING `+serviceColumns,
		s.Name, s.Price, s.Image,
	))
	if err != nil {
		return nil, fmt.Errorf("insert service: %w", mapError(err))
	}
	return created, nil
}

func (r *ServiceRepository) FindByID(ctx context.Context, id int64) (*domain.Service, error) {
	s, err := scanService(r.pool.QueryRow(ctx, `SELECT `+serviceColumns+` FROM services WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.NewNotFound(domain.ResourceService, id)
	}
	if err != nil {
		return nil, fmt.Errorf("find service: %w", err)
	}
	return s, nil
}

func (r *ServiceRepository) List(ctx context.Context) ([]*domain.Service, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+serviceColumns+` FROM services ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list services: %w", err)
	}
	items, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*domain.Service, error) {
		return scanService(row)
	})
	if err != nil {
		return nil, fmt.Errorf("list services: %w", err)
	}
	return items, nil
}

func (r *ServiceRepository) Update(ctx context.Context, s *domain.Service) (*domain.Service, error) {
	updated, err := scanService(r.pool.QueryRow(ctx,
		`UPDATE services SET service = $1, price = $2, image = $3, updated_at = now()
		 WHERE id = $4 RETURNING `+serviceColumns,
		s.Name, s.Price, s.Image, s.ID,
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.NewNotFound(domain.ResourceService, s.ID)
	}
	if err != nil {
		return nil, fmt.Errorf("update service: %w", mapError(err))
	}
	return updated, nil
}

func (r *ServiceRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM services WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete service: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NewNotFound(domain.ResourceService, id)
	}
	return nil
}

func scanService(row pgx.Row) (*domain.Service, error) {
	var s domain.Service
	if err := row.Scan(&s.ID, &s.Name, &s.Price, &s.Image, &s.CreatedAt, &s.UpdatedAt); err != nil {
		return nil, err
	}
	return &s, nil
}
