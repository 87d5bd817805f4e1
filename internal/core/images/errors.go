package images

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Sentinel errors for common image operations
var (
	// ErrNotFound is returned when an image lookup finds no matching row
	ErrNotFound = errors.New("image not found")

	// ErrPostNotFound is returned when image creation references a post
	// that does not exist (or was deleted before the insert committed)
	ErrPostNotFound = errors.New("referenced post not found")

	// ErrPostAlreadyHasImage is returned when a post already owns an image.
	// Posts and images are strictly 1:1.
	ErrPostAlreadyHasImage = errors.New("post already has an image")
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
