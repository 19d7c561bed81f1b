// Package errors provides standardized domain errors that express business intent
// rather than infrastructure details. These errors should be used by use cases
// and mapped to appropriate HTTP status codes by handlers.
package errors

import (
	"errors"
	"fmt"
)

// Error kinds shared across the domain modules. Handlers map each kind to
// one HTTP status, so every module error wraps exactly one of these.
var (
	// ErrNotFound indicates the requested resource does not exist. Vault
	// items owned by someone else also surface as this kind, so ownership
	// cannot be probed by ID.
	ErrNotFound = errors.New("not found")

	// ErrConflict indicates a clash with existing data (e.g., registering
	// an email that already has an account).
	ErrConflict = errors.New("conflict")

	// ErrInvalidInput indicates the input data is invalid or fails
	// validation, including identity triples that match no recipient.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnauthorized indicates missing or bad credentials: session tokens
	// and release tokens, whether forged, malformed, or expired.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden indicates the authenticated user doesn't have permission.
	ErrForbidden = errors.New("forbidden")

	// ErrPreconditionFailed indicates the entity is not in the state the
	// operation requires (e.g., issuing releases for a non-approved claim,
	// or re-reviewing a claim that already left pending).
	ErrPreconditionFailed = errors.New("precondition failed")
)

// New creates a new error with the given message.
// This is a convenience wrapper around errors.New for consistency.
func New(message string) error {
	return errors.New(message)
}

// Wrap wraps an error with additional context while preserving the error chain.
// Use this to add context at each layer without losing the original error type.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Is reports whether any error in err's tree matches target.
// This is a convenience wrapper around errors.Is.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's tree that matches target.
// This is a convenience wrapper around errors.As.
func As(err error, target any) bool {
	return errors.As(err, target)
}
