package ports

import (
	"context"

	"github.com/99minutos/catalog-api/internal/core/domain"
	"github.com/99minutos/catalog-api/internal/core/validation"
)

type AuthService interface {
	Register(ctx context.Context, in validation.Input) (*domain.User, error)
	ListUsers(ctx context.Context) ([]*domain.User, error)
	GetUser(ctx context.Context, id int64) (*domain.User, error)
	DeleteUser(ctx context.Context, id int64) error
	Login(ctx context.Context, in validation.Input) (string, *domain.User, error)
	ResetPassword(ctx context.Context, in validation.Input) error
}
