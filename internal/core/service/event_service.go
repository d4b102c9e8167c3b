package service

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/campushub/event-hub/internal/core/domain"
	"github.com/campushub/event-hub/internal/core/ports"
)

type EventService struct {
	repo ports.EventRepository
	log  zerolog.Logger
	now  func() time.Time
}

// NewEventService returns the event catalog service.
func NewEventService(repo ports.EventRepository, log zerolog.Logger) *EventService {
	return &EventService{
		repo: repo,
		log:  log,
		now:  func() time.Time { return time.Now().UTC() },
	}
}

// List returns every event ordered ascending by date.
func (s *EventService) List(ctx context.Context) ([]*domain.Event, error) {
	events, err := s.repo.List(ctx)
	if err != nil {
		return nil, storeErr("list events", err)
	}
	s.log.Debug().Int("count", len(events)).Msg("events fetched")
	return events, nil
}

func (s *EventService) Get(ctx context.Context, id string) (*domain.Event, error) {
	if strings.TrimSpace(id) == "" {
		return nil, domain.ErrEventNotFound
	}
	e, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, storeErr("find event", err)
	}
	return e, nil
}

// Create validates the required fields and stores a new event owned by caller.
func (s *EventService) Create(ctx context.Context, caller domain.Identity, in ports.CreateEventInput) (*domain.Event, error) {
	if err := requireCaller(caller); err != nil {
		return nil, err
	}

	e := &domain.Event{
		Title:       strings.TrimSpace(in.Title),
		Description: strings.TrimSpace(in.Description),
		Date:        strings.TrimSpace(in.Date),
		Venue:       strings.TrimSpace(in.Venue),
		CreatedBy:   caller.UserID,
		CreatedAt:   s.now(),
	}
	if err := domain.ValidateNewEvent(e); err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, e)
	if err != nil {
		s.log.Error().Err(err).Str("created_by", caller.UserID).Msg("failed to create event")
		return nil, storeErr("create event", err)
	}

	s.log.Info().Str("event_id", created.ID).Str("created_by", caller.UserID).Msg("event created")
	return created, nil
}

// Update applies a partial merge: only non-empty supplied fields overwrite
// stored values, and updatedAt is always stamped.
func (s *EventService) Update(ctx context.Context, caller domain.Identity, id string, in ports.UpdateEventInput) (*domain.Event, error) {
	if err := requireCaller(caller); err != nil {
		return nil, err
	}
	if strings.TrimSpace(id) == "" {
		return nil, domain.ErrEventNotFound
	}

	patch := domain.EventPatch{
		Title:       nonEmpty(in.Title),
		Description: nonEmpty(in.Description),
		Date:        nonEmpty(in.Date),
		Venue:       nonEmpty(in.Venue),
	}
	if patch.Date != nil && !domain.ValidEventDate(*patch.Date) {
		return nil, domain.Invalid("date", "must be an ISO 8601 date")
	}

	updated, err := s.repo.Update(ctx, id, patch, s.now())
	if err != nil {
		return nil, storeErr("update event", err)
	}

	s.log.Info().Str("event_id", id).Str("updated_by", caller.UserID).Msg("event updated")
	return updated, nil
}

// Delete removes the event. Registrations that reference it are left alone.
func (s *EventService) Delete(ctx context.Context, caller domain.Identity, id string) error {
	if err := requireCaller(caller); err != nil {
		return err
	}
	if strings.TrimSpace(id) == "" {
		return domain.ErrEventNotFound
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return storeErr("delete event", err)
	}

	s.log.Info().Str("event_id", id).Str("deleted_by", caller.UserID).Msg("event deleted")
	return nil
}

// nonEmpty treats nil and blank strings alike as "not supplied".
func nonEmpty(p *string) *string {
	if p == nil {
		return nil
	}
	v := strings.TrimSpace(*p)
	if v == "" {
		return nil
	}
	return &v
}
