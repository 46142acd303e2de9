package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidPricingInput indicates line items or rates the pricing
	// engine refuses to compute with.
	ErrInvalidPricingInput = errors.New("invalid pricing input")

	// ErrInvalidTransition indicates a status change the lifecycle does not allow.
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrSequenceUnavailable indicates the quotation counter could not be
	// incremented (store unreachable or contention unresolved after retries).
	ErrSequenceUnavailable = errors.New("quotation number sequence unavailable")

	// ErrNotFound indicates a referenced quotation, client or share token is absent.
	ErrNotFound = errors.New("not found")

	// ErrValidation indicates missing or malformed required fields.
	ErrValidation = errors.New("validation failed")

	// ErrOwnerMismatch indicates a write addressed a record, by ID, that
	// belongs to a different owner.
	ErrOwnerMismatch = errors.New("record belongs to another owner")
)

// ValidationError collects field-level problems. It matches ErrValidation
// with errors.Is.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	if len(e.Problems) == 1 {
		return "validation failed: " + e.Problems[0]
	}
	return fmt.Sprintf("validation failed (%d problems): %s", len(e.Problems), strings.Join(e.Problems, "; "))
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// Add records a problem.
func (e *ValidationError) Add(format string, args ...any) {
	e.Problems = append(e.Problems, fmt.Sprintf(format, args...))
}

// OrNil returns nil when no problems were recorded.
func (e *ValidationError) OrNil() error {
	if len(e.Problems) == 0 {
		return nil
	}
	return e
}
