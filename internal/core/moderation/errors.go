package moderation

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Sentinel errors for moderation operations
var (
	// ErrNotFound is returned when a pending post lookup finds no row
	ErrNotFound = errors.New("pending post not found")
)

// InvalidTransitionError is returned when the workflow is invoked on a
// row that already reached a terminal status
type InvalidTransitionError struct {
	ID     int64
	Status Status
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("pending post %d is already %s", e.ID, e.Status)
}

// IsInvalidTransition checks if error is a state machine violation
func IsInvalidTransition(err error) bool {
	var transErr *InvalidTransitionError
	return errors.As(err, &transErr)
}

// ValidationError enumerates the fields that failed validation.
// It is a returned result, not a fatal condition.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for f := range e.Fields {
		names = append(names, f)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, f := range names {
		parts = append(parts, fmt.Sprintf("%s: %s", f, e.Fields[f]))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// IsValidationError checks if error is a validation error
func IsValidationError(err error) bool {
	var valErr *ValidationError
	return errors.As(err, &valErr)
}
