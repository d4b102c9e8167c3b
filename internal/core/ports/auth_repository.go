package ports

import (
	"context"

	"github.com/campushub/event-hub/internal/core/domain"
)

// AuthRepository defines persistence for user profiles and credentials.
type AuthRepository interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
}
