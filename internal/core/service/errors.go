package service

import (
	"errors"

	"github.com/campushub/event-hub/internal/core/domain"
)

// known are the repository errors that already belong to the domain taxonomy.
var known = []error{
	domain.ErrEventNotFound,
	domain.ErrRegistrationNotFound,
	domain.ErrUserNotFound,
	domain.ErrAlreadyRegistered,
	domain.ErrUserExists,
	domain.ErrStoreUnavailable,
}

// storeErr passes domain errors through and wraps anything else as a
// domain.StoreError so nothing raw reaches the transport layer.
func storeErr(op string, err error) error {
	for _, k := range known {
		if errors.Is(err, k) {
			return err
		}
	}
	return &domain.StoreError{Op: op, Err: err}
}

func requireCaller(caller domain.Identity) error {
	if caller.UserID == "" {
		return domain.ErrUnauthenticated
	}
	return nil
}
