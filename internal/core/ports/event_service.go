package ports

import (
	"context"

	"github.com/campushub/event-hub/internal/core/domain"
)

// CreateEventInput is the DTO passed from the transport layer to EventService.Create.
type CreateEventInput struct {
	Title       string
	Description string
	Date        string
	Venue       string
}

// UpdateEventInput carries a partial update. Nil or empty fields are left unchanged.
type UpdateEventInput struct {
	Title       *string
	Description *string
	Date        *string
	Venue       *string
}

// EventService defines the event catalog use cases.
type EventService interface {
	List(ctx context.Context) ([]*domain.Event, error)
	Get(ctx context.Context, id string) (*domain.Event, error)
	Create(ctx context.Context, caller domain.Identity, in CreateEventInput) (*domain.Event, error)
	Update(ctx context.Context, caller domain.Identity, id string, in UpdateEventInput) (*domain.Event, error)
	Delete(ctx context.Context, caller domain.Identity, id string) error
}
