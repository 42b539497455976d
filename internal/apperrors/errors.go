// Package apperrors defines the error taxonomy shared by all portal services.
// Handlers map these to HTTP codes; services wrap backend failures into one of
// the four categories so callers never branch on driver-level error strings.
package apperrors

import (
	"errors"
	"fmt"
)

var (
	// ErrAuthentication means no valid session or token was presented.
	ErrAuthentication = errors.New("authentication required")
	// ErrNotFound means a driver or record lookup missed.
	ErrNotFound = errors.New("record not found")
	// ErrPersistence means the backing store rejected a read or write,
	// including row-level policy denials.
	ErrPersistence = errors.New("persistence failure")
	// ErrUnexpected is the catch-all for everything else.
	ErrUnexpected = errors.New("unexpected error")
)

// Authentication wraps a cause as an authentication failure.
func Authentication(cause error) error {
	if cause == nil {
		return ErrAuthentication
	}
	return fmt.Errorf("%w: %w", ErrAuthentication, cause)
}

// NotFound wraps a cause as a lookup miss.
func NotFound(cause error) error {
	if cause == nil {
		return ErrNotFound
	}
	return fmt.Errorf("%w: %w", ErrNotFound, cause)
}

// Persistence wraps a cause as a backend rejection.
func Persistence(cause error) error {
	if cause == nil {
		return ErrPersistence
	}
	return fmt.Errorf("%w: %w", ErrPersistence, cause)
}

// Unexpected wraps a cause as an uncategorized failure.
func Unexpected(cause error) error {
	if cause == nil {
		return ErrUnexpected
	}
	return fmt.Errorf("%w: %w", ErrUnexpected, cause)
}
