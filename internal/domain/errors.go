package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors used across all layers.
var (
	ErrNotFound     = errors.New("not found")
	ErrValidation   = errors.New("validation error")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrConflict     = errors.New("conflict")
	ErrUnavailable  = errors.New("store unavailable")
	ErrInvariant    = errors.New("invariant violation")
)

// Specific kinds. Each one wraps a sentinel above so callers can branch on
// either the kind or the exact cause.
var (
	ErrUnknownMaterial = fmt.Errorf("unknown material: %w", ErrValidation)
	ErrInvalidWeight   = fmt.Errorf("invalid weight: %w", ErrValidation)
	ErrXPOverflow      = fmt.Errorf("xp out of range: %w", ErrValidation)

	ErrBinNotFound         = fmt.Errorf("bin %w", ErrNotFound)
	ErrAccountNotFound     = fmt.Errorf("account %w", ErrNotFound)
	ErrApplicationNotFound = fmt.Errorf("collector application %w", ErrNotFound)

	ErrDuplicateApplication = fmt.Errorf("duplicate collector application: %w", ErrConflict)
	ErrInvalidTransition    = fmt.Errorf("invalid application transition: %w", ErrConflict)
	ErrIdempotencyMismatch  = fmt.Errorf("idempotency key reused with different payload: %w", ErrConflict)
)

// FieldError describes a validation error for a specific field.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError contains a list of field-level validation errors.
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Errors) == 1 {
		return fmt.Sprintf("validation: %s: %s", e.Errors[0].Field, e.Errors[0].Message)
	}
	return fmt.Sprintf("validation: %d errors", len(e.Errors))
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// NewValidationError creates a ValidationError for a single field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Errors: []FieldError{{Field: field, Message: message}},
	}
}

// NewValidationErrors creates a ValidationError from multiple field errors.
func NewValidationErrors(errs []FieldError) *ValidationError {
	return &ValidationError{Errors: errs}
}
