package ports

import (
	"context"

	"github.com/99minutos/catalog-api/internal/core/validation"
)

// Store bundles the repositories of one persistence backend.
type Store struct {
	Users    UserRepository
	Data     DataRepository
	Services ServiceRepository
	Lookup   validation.UniquenessLookup

	// Ping reports backend connectivity for readiness probes.
	Ping func(ctx context.Context) error
	// Close releases the backend's connections.
	Close func(ctx context.Context) error
}
