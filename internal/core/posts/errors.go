package posts

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Sentinel errors for common post operations
var (
	// ErrNotFound is returned when a post lookup finds no matching row
	ErrNotFound = errors.New("post not found")

	// ErrEmptyStore is returned by random selection when zero posts exist
	ErrEmptyStore = errors.New("no posts in store")
)

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

// IsNotFound checks if error means the post is absent
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
