package core

import (
	"errors"
	"fmt"
	"strings"
)

// Domain errors - centralized error definitions
var (
	// Source errors
	ErrSourceNotFound    = errors.New("source table not found")
	ErrUnsupportedSource = errors.New("unsupported source format")
	ErrEmptySource       = errors.New("source table has no header")

	// Schema errors
	ErrMissingRequiredField = errors.New("required field missing")

	// Aggregation errors
	ErrInvalidTopK = errors.New("top-k must be positive")
)

// NewSourceNotFoundError names every path that was tried.
func NewSourceNotFoundError(paths ...string) error {
	return fmt.Errorf("%w: tried %s", ErrSourceNotFound, strings.Join(paths, ", "))
}

// NewMissingFieldError reports a semantic field whose aliases matched no column.
func NewMissingFieldError(field string, candidates []string) error {
	return fmt.Errorf("%w: %s (tried %s)", ErrMissingRequiredField, field, strings.Join(candidates, ", "))
}

// Error checking helpers
func IsSourceNotFound(err error) bool {
	return errors.Is(err, ErrSourceNotFound)
}

func IsMissingRequiredField(err error) bool {
	return errors.Is(err, ErrMissingRequiredField)
}
