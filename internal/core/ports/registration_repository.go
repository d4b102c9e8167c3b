package ports

import (
	"context"

	"github.com/campushub/event-hub/internal/core/domain"
)

// RegistrationRepository defines persistence operations for registrations.
type RegistrationRepository interface {
	FindByID(ctx context.Context, id string) (*domain.Registration, error)
	FindByEvent(ctx context.Context, eventID string) ([]*domain.Registration, error)
	FindByUser(ctx context.Context, userID string) ([]*domain.Registration, error)
	FindByUserAndEvent(ctx context.Context, userID, eventID string) ([]*domain.Registration, error)
	// Create stores r and returns it with the assigned ID. A second record for
	// the same (userID, eventID) pair fails with domain.ErrAlreadyRegistered.
	Create(ctx context.Context, r *domain.Registration) (*domain.Registration, error)
	Delete(ctx context.Context, id string) error
}

// RegistrationGuard serializes concurrent register attempts for the same
// (userID, eventID) pair. Acquire reports false when another attempt holds it;
// on success it returns a token that Release must present, so a holder whose
// lease expired cannot free a pair someone else now holds.
type RegistrationGuard interface {
	Acquire(ctx context.Context, userID, eventID string) (token string, acquired bool, err error)
	Release(ctx context.Context, userID, eventID, token string) error
}
