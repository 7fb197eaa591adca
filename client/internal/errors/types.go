// Package errors classifies non-success search responses so callers and the
// optional retry policy can tell transient failures from permanent ones.
package errors

import (
	"errors"
	"fmt"
)

// ErrorCategory determines how errors should be handled by retry logic.
type ErrorCategory int

const (
	// Recoverable errors may succeed when the request is issued again.
	// Examples: 500 Internal Server Error, 503 Service Unavailable, 429 Too Many Requests.
	Recoverable ErrorCategory = iota

	// Irrecoverable errors fail the same way every time.
	// Examples: 401 Unauthorized, 403 Forbidden, 400 Bad Request.
	Irrecoverable
)

// String returns a human-readable representation of the error category.
func (c ErrorCategory) String() string {
	switch c {
	case Recoverable:
		return "Recoverable"
	case Irrecoverable:
		return "Irrecoverable"
	default:
		return fmt.Sprintf("Unknown(%d)", int(c))
	}
}

// ClassifiedError is returned when the server answers with a non-2xx status.
type ClassifiedError struct {
	Category   ErrorCategory
	StatusCode int    // HTTP status code
	Body       string // Response body for debugging, truncated
	Underlying error
}

// Error implements the error interface.
func (e *ClassifiedError) Error() string {
	return fmt.Sprintf("[%s] HTTP %d: %v", e.Category, e.StatusCode, e.Underlying)
}

// Unwrap returns the underlying error for error chain compatibility.
func (e *ClassifiedError) Unwrap() error {
	return e.Underlying
}

// IsIrrecoverable returns true if the error should not be retried.
func IsIrrecoverable(err error) bool {
	var classified *ClassifiedError
	if errors.As(err, &classified) {
		return classified.Category == Irrecoverable
	}
	return false
}

// StatusCode extracts the HTTP status from a classified error, or 0.
func StatusCode(err error) int {
	var classified *ClassifiedError
	if errors.As(err, &classified) {
		return classified.StatusCode
	}
	return 0
}
