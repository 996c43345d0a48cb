package services

import (
	"errors"
	"fmt"

	"github.com/MitieSoft/salesdesk/internal/validation"
)

// Sentinel errors; match with errors.Is. Operations return these (or
// structured errors unwrapping to them) instead of panicking.
var (
	ErrNotFound          = errors.New("not found")
	ErrInvalidTransition = errors.New("invalid transition")
	ErrValidation        = errors.New("validation failed")
	ErrForbidden         = errors.New("forbidden")
)

// InvalidTransitionError reports an illegal status change request.
type InvalidTransitionError struct {
	Entity string
	From   string
	To     string
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("%s: illegal transition %s -> %s", e.Entity, e.From, e.To)
}

func (e *InvalidTransitionError) Unwrap() error { return ErrInvalidTransition }

// ValidationError carries per-field violations for malformed input.
type ValidationError struct {
	Violations validation.Violations
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %d violation(s)", len(e.Violations))
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

func violationErr(v validation.Violations) error {
	return &ValidationError{Violations: v}
}
