package services

import (
	"errors"
	"fmt"
)

// Sentinel errors for the request-level failure taxonomy. Handlers map these
// to the uniform error envelope; wrap with fmt.Errorf("...: %w", Err...) to
// add context without losing the classification.
var (
	// ErrValidation marks missing or invalid user-correctable input.
	ErrValidation = errors.New("validation failed")
	// ErrConflict marks a duplicate unique key (manufacturer website).
	ErrConflict = errors.New("conflict")
	// ErrNotFound marks a read of a non-existent record.
	ErrNotFound = errors.New("not found")
	// ErrConfiguration marks a missing or placeholder credential.
	ErrConfiguration = errors.New("configuration error")
	// ErrExternalService marks a failed pipeline provider call.
	ErrExternalService = errors.New("external service error")
)

func validationError(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

func conflictError(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrConflict, fmt.Sprintf(format, args...))
}

func notFoundError(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrNotFound, fmt.Sprintf(format, args...))
}
