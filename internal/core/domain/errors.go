package domain

import (
	"errors"
	"strings"
)

var (
	ErrUnauthenticated      = errors.New("unauthenticated")
	ErrForbidden            = errors.New("access forbidden")
	ErrInvalidInput         = errors.New("invalid input")
	ErrEventNotFound        = errors.New("event not found")
	ErrRegistrationNotFound = errors.New("registration not found")
	ErrUserNotFound         = errors.New("user not found")
	ErrAlreadyRegistered    = errors.New("already registered for this event")
	ErrUserExists           = errors.New("user already exists")
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrStoreUnavailable     = errors.New("store unavailable")
)

// FieldProblem describes one rejected input field.
type FieldProblem struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// InvalidInputError lists every field that failed validation.
type InvalidInputError struct {
	Problems []FieldProblem
}

func (e *InvalidInputError) Error() string {
	msgs := make([]string, 0, len(e.Problems))
	for _, p := range e.Problems {
		msgs = append(msgs, p.Field+" "+p.Message)
	}
	return strings.Join(msgs, "; ")
}

func (e *InvalidInputError) Is(target error) bool {
	return target == ErrInvalidInput
}

// Invalid builds an InvalidInputError for a single field.
func Invalid(field, message string) error {
	return &InvalidInputError{Problems: []FieldProblem{{Field: field, Message: message}}}
}

// StoreError wraps a failure coming from the document store. It matches
// ErrStoreUnavailable and unwraps to the driver error.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return e.Op + ": " + e.Err.Error()
}

func (e *StoreError) Unwrap() error { return e.Err }

func (e *StoreError) Is(target error) bool {
	return target == ErrStoreUnavailable
}

// ForbiddenError carries a caller-facing reason for a 403.
type ForbiddenError struct {
	Reason string
}

func (e *ForbiddenError) Error() string { return e.Reason }

func (e *ForbiddenError) Is(target error) bool {
	return target == ErrForbidden
}
