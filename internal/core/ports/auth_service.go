package ports

import (
	"context"

	"github.com/campushub/event-hub/internal/core/domain"
)

// RegisterUserInput carries the sign-up form.
type RegisterUserInput struct {
	Name     string
	Email    string
	Password string
	Role     string
}

type AuthService interface {
	Register(ctx context.Context, in RegisterUserInput) (*domain.User, error)
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	Profile(ctx context.Context, userID string) (*domain.User, error)
}

// TokenVerifier turns a bearer token into the caller's identity. Any failure
// is reported as domain.ErrUnauthenticated.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (domain.Identity, error)
}
