package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/99minutos/catalog-api/internal/core/domain"
)

var existsQueries = map[domain.UniqueField]string{
	domain.UniqueUserEmail:   `SELECT EXISTS (SELECT 1 FROM users WHERE email = $1 AND id <> $2)`,
	domain.UniqueUserPhone:   `SELECT EXISTS (SELECT 1 FROM users WHERE phone = $1 AND id <> $2)`,
	domain.UniqueServiceName: `SELECT EXISTS (SELECT 1 FROM services WHERE lower(service) = lower($1) AND id <> $2)`,
}

// Lookup answers uniqueness pre-checks with EXISTS queries.
type Lookup struct {
	pool *pgxpool.Pool
}

func NewLookup(pool *pgxpool.Pool) *Lookup {
	return &Lookup{pool: pool}
}

func (l *Lookup) Exists(ctx context.Context, field domain.UniqueField, value string, excludeID int64) (bool, error) {
	q, ok := existsQueries[field]
	if !ok {
		return false, fmt.Errorf("unknown unique field %q", field)
	}
	var exists bool
	if err := l.pool.QueryRow(ctx, q, value, excludeID).Scan(&exists); err != nil {
		return false, fmt.Errorf("exists %s: %w", field, err)
	}
	return exists, nil
}
