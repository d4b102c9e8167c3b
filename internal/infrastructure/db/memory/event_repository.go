package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/campushub/event-hub/internal/core/domain"
)

type EventRepository struct {
	mu     sync.RWMutex
	events map[string]domain.Event
}

func NewEventRepository() *EventRepository {
	return &EventRepository{events: make(map[string]domain.Event)}
}

func (r *EventRepository) List(_ context.Context) ([]*domain.Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*domain.Event, 0, len(r.events))
	for _, e := range r.events {
		e := e
		out = append(out, &e)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date < out[j].Date
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *EventRepository) FindByID(_ context.Context, id string) (*domain.Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.events[id]
	if !ok {
		return nil, domain.ErrEventNotFound
	}
	return &e, nil
}

func (r *EventRepository) Create(_ context.Context, e *domain.Event) (*domain.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *e
	stored.ID = newID()
	stored.UpdatedAt = nil
	r.events[stored.ID] = stored
	return &stored, nil
}

func (r *EventRepository) Update(_ context.Context, id string, patch domain.EventPatch, updatedAt time.Time) (*domain.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.events[id]
	if !ok {
		return nil, domain.ErrEventNotFound
	}
	patch.Apply(&e)
	ts := updatedAt.UTC()
	e.UpdatedAt = &ts
	r.events[id] = e
	return &e, nil
}

func (r *EventRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.events[id]; !ok {
		return domain.ErrEventNotFound
	}
	delete(r.events, id)
	return nil
}
