package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/campushub/event-hub/internal/core/domain"
)

// RegistrationRepository rejects a second record for the same (user, event)
// pair, mirroring the unique index on the MongoDB collection.
type RegistrationRepository struct {
	mu    sync.RWMutex
	regs  map[string]domain.Registration
	pairs map[[2]string]string
}

func NewRegistrationRepository() *RegistrationRepository {
	return &RegistrationRepository{
		regs:  make(map[string]domain.Registration),
		pairs: make(map[[2]string]string),
	}
}

func (r *RegistrationRepository) FindByID(_ context.Context, id string) (*domain.Registration, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	reg, ok := r.regs[id]
	if !ok {
		return nil, domain.ErrRegistrationNotFound
	}
	return &reg, nil
}

func (r *RegistrationRepository) FindByEvent(_ context.Context, eventID string) ([]*domain.Registration, error) {
	return r.filter(func(reg domain.Registration) bool { return reg.EventID == eventID }), nil
}

func (r *RegistrationRepository) FindByUser(_ context.Context, userID string) ([]*domain.Registration, error) {
	return r.filter(func(reg domain.Registration) bool { return reg.UserID == userID }), nil
}

func (r *RegistrationRepository) FindByUserAndEvent(_ context.Context, userID, eventID string) ([]*domain.Registration, error) {
	return r.filter(func(reg domain.Registration) bool {
		return reg.UserID == userID && reg.EventID == eventID
	}), nil
}

func (r *RegistrationRepository) filter(keep func(domain.Registration) bool) []*domain.Registration {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*domain.Registration, 0)
	for _, reg := range r.regs {
		if keep(reg) {
			reg := reg
			out = append(out, &reg)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].RegisteredAt.Equal(out[j].RegisteredAt) {
			return out[i].RegisteredAt.Before(out[j].RegisteredAt)
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func (r *RegistrationRepository) Create(_ context.Context, reg *domain.Registration) (*domain.Registration, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	pair := [2]string{reg.UserID, reg.EventID}
	if _, taken := r.pairs[pair]; taken {
		return nil, domain.ErrAlreadyRegistered
	}

	stored := *reg
	stored.ID = newID()
	r.regs[stored.ID] = stored
	r.pairs[pair] = stored.ID
	return &stored, nil
}

func (r *RegistrationRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	reg, ok := r.regs[id]
	if !ok {
		return domain.ErrRegistrationNotFound
	}
	delete(r.regs, id)
	delete(r.pairs, [2]string{reg.UserID, reg.EventID})
	return nil
}
