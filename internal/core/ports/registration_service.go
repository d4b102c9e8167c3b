package ports

import (
	"context"

	"github.com/campushub/event-hub/internal/core/domain"
)

// RegistrationService defines the registration use cases. Every operation
// expects an authenticated caller.
type RegistrationService interface {
	ListByEvent(ctx context.Context, caller domain.Identity, eventID string) ([]*domain.Registration, error)
	// ListByUser fails with domain.ErrForbidden unless caller.UserID == userID.
	ListByUser(ctx context.Context, caller domain.Identity, userID string) ([]*domain.Registration, error)
	ListMine(ctx context.Context, caller domain.Identity) ([]*domain.Registration, error)
	Register(ctx context.Context, caller domain.Identity, eventID string) (*domain.Registration, error)
	Unregister(ctx context.Context, caller domain.Identity, registrationID string) error
}
