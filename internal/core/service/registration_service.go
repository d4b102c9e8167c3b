package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/campushub/event-hub/internal/core/domain"
	"github.com/campushub/event-hub/internal/core/ports"
)

type RegistrationService struct {
	registrations ports.RegistrationRepository
	events        ports.EventRepository
	guard         ports.RegistrationGuard
	log           zerolog.Logger
	now           func() time.Time

	// guardWait bounds how long Register waits for another attempt on the same
	// pair before carrying on without the guard.
	guardWait time.Duration
	guardPoll time.Duration
}

const (
	defaultGuardWait = 3 * time.Second
	defaultGuardPoll = 25 * time.Millisecond
)

// NewRegistrationService returns the registration service. guard may be nil,
// in which case uniqueness rests on the repository alone.
func NewRegistrationService(
	registrations ports.RegistrationRepository,
	events ports.EventRepository,
	guard ports.RegistrationGuard,
	log zerolog.Logger,
) *RegistrationService {
	return &RegistrationService{
		registrations: registrations,
		events:        events,
		guard:         guard,
		log:           log,
		now:           func() time.Time { return time.Now().UTC() },
		guardWait:     defaultGuardWait,
		guardPoll:     defaultGuardPoll,
	}
}

func (s *RegistrationService) ListByEvent(ctx context.Context, caller domain.Identity, eventID string) ([]*domain.Registration, error) {
	if err := requireCaller(caller); err != nil {
		return nil, err
	}
	regs, err := s.registrations.FindByEvent(ctx, eventID)
	if err != nil {
		return nil, storeErr("list registrations by event", err)
	}
	return regs, nil
}

// ListByUser only lets callers read their own registrations.
func (s *RegistrationService) ListByUser(ctx context.Context, caller domain.Identity, userID string) ([]*domain.Registration, error) {
	if err := requireCaller(caller); err != nil {
		return nil, err
	}
	if caller.UserID != userID {
		return nil, &domain.ForbiddenError{Reason: "cannot view other users' registrations"}
	}
	regs, err := s.registrations.FindByUser(ctx, userID)
	if err != nil {
		return nil, storeErr("list registrations by user", err)
	}
	return regs, nil
}

func (s *RegistrationService) ListMine(ctx context.Context, caller domain.Identity) ([]*domain.Registration, error) {
	return s.ListByUser(ctx, caller, caller.UserID)
}

// Register signs caller up for eventID.
//
// The existing-registration check runs before the event lookup, so a duplicate
// for a since-deleted event still reports a conflict. The repository rejects a
// duplicate insert that slips past the check. The guard only serializes
// attempts; every outcome, including a conflict, comes from the store.
func (s *RegistrationService) Register(ctx context.Context, caller domain.Identity, eventID string) (*domain.Registration, error) {
	if err := requireCaller(caller); err != nil {
		return nil, err
	}
	eventID = strings.TrimSpace(eventID)
	if eventID == "" {
		return nil, domain.Invalid("eventId", "is required")
	}

	release, err := s.holdGuard(ctx, caller.UserID, eventID)
	if err != nil {
		return nil, storeErr("wait for registration guard", err)
	}
	defer release()

	existing, err := s.registrations.FindByUserAndEvent(ctx, caller.UserID, eventID)
	if err != nil {
		return nil, storeErr("check existing registration", err)
	}
	if len(existing) > 0 {
		return nil, domain.ErrAlreadyRegistered
	}

	if _, err := s.events.FindByID(ctx, eventID); err != nil {
		return nil, storeErr("find event", err)
	}

	created, err := s.registrations.Create(ctx, &domain.Registration{
		UserID:       caller.UserID,
		EventID:      eventID,
		RegisteredAt: s.now(),
	})
	if err != nil {
		if errors.Is(err, domain.ErrAlreadyRegistered) {
			s.log.Info().Str("user_id", caller.UserID).Str("event_id", eventID).Msg("concurrent duplicate registration rejected")
		}
		return nil, storeErr("create registration", err)
	}

	s.log.Info().Str("user_id", caller.UserID).Str("event_id", eventID).Str("registration_id", created.ID).Msg("registration created")
	return created, nil
}

// holdGuard waits until the caller holds the (user, event) guard. When the
// guard is unavailable or stays held past guardWait the attempt proceeds
// unguarded and the unique index decides. The returned release is never nil.
func (s *RegistrationService) holdGuard(ctx context.Context, userID, eventID string) (func(), error) {
	noop := func() {}
	if s.guard == nil {
		return noop, nil
	}
	log := s.log.With().Str("user_id", userID).Str("event_id", eventID).Logger()

	deadline := time.NewTimer(s.guardWait)
	defer deadline.Stop()
	for {
		token, acquired, err := s.guard.Acquire(ctx, userID, eventID)
		if err != nil {
			log.Warn().Err(err).Msg("registration guard unavailable, continuing")
			return noop, nil
		}
		if acquired {
			return func() {
				// The request context may already be done; release on a fresh one.
				rctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), time.Second)
				defer cancel()
				if err := s.guard.Release(rctx, userID, eventID, token); err != nil {
					log.Warn().Err(err).Msg("failed to release registration guard")
				}
			}, nil
		}

		select {
		case <-ctx.Done():
			return noop, ctx.Err()
		case <-deadline.C:
			log.Warn().Dur("waited", s.guardWait).Msg("registration guard still held, continuing without it")
			return noop, nil
		case <-time.After(s.guardPoll):
		}
	}
}

// Unregister deletes a registration owned by caller.
func (s *RegistrationService) Unregister(ctx context.Context, caller domain.Identity, registrationID string) error {
	if err := requireCaller(caller); err != nil {
		return err
	}
	if strings.TrimSpace(registrationID) == "" {
		return domain.ErrRegistrationNotFound
	}

	reg, err := s.registrations.FindByID(ctx, registrationID)
	if err != nil {
		return storeErr("find registration", err)
	}
	if reg.UserID != caller.UserID {
		return &domain.ForbiddenError{Reason: "cannot delete other users' registrations"}
	}

	if err := s.registrations.Delete(ctx, registrationID); err != nil {
		return storeErr("delete registration", err)
	}

	s.log.Info().Str("user_id", caller.UserID).Str("registration_id", registrationID).Msg("registration deleted")
	return nil
}
