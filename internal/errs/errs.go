// Package errs defines the validation failures returned by the search
// engines. Per-file I/O problems are never surfaced as errors; they are
// skipped where they happen.
package errs

import (
	"errors"
	"fmt"
)

// ValidationError reports a request that cannot be executed. It is always
// returned before any traversal starts.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// Required reports a missing required field.
func Required(field string) *ValidationError {
	return &ValidationError{Field: field, Message: field + " is required"}
}

// NotADirectory reports a search root that does not exist or is not a
// directory.
func NotADirectory(path string) *ValidationError {
	return &ValidationError{Field: "path", Message: "Not a directory: " + path}
}

// FileNotFound reports a missing file for a read request.
func FileNotFound(path string) *ValidationError {
	return &ValidationError{Field: "path", Message: "File not found: " + path}
}

// OutOfRange reports a numeric field outside [lo, hi].
func OutOfRange(field string, value, lo, hi int) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: fmt.Sprintf("%s must be between %d and %d, got %d", field, lo, hi, value),
	}
}

// InvalidPattern wraps a regular expression compile failure.
func InvalidPattern(err error) *ValidationError {
	return &ValidationError{
		Field:   "pattern",
		Message: fmt.Sprintf("invalid pattern: %v", err),
		Err:     err,
	}
}

// IsValidation reports whether err is, or wraps, a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
