package ports

import (
	"context"
	"time"

	"github.com/campushub/event-hub/internal/core/domain"
)

// EventRepository defines persistence operations for events.
type EventRepository interface {
	// List returns every event ordered ascending by date.
	List(ctx context.Context) ([]*domain.Event, error)
	// FindByID returns domain.ErrEventNotFound when no event has that id.
	FindByID(ctx context.Context, id string) (*domain.Event, error)
	// Create stores e and returns it with the assigned ID.
	Create(ctx context.Context, e *domain.Event) (*domain.Event, error)
	// Update merges patch into the stored event, stamps updatedAt and returns
	// the merged record. Returns domain.ErrEventNotFound when missing.
	Update(ctx context.Context, id string, patch domain.EventPatch, updatedAt time.Time) (*domain.Event, error)
	// Delete returns domain.ErrEventNotFound when missing.
	Delete(ctx context.Context, id string) error
}
