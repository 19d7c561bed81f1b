package domain

import (
	"github.com/lifekey/lifekey/internal/errors"
)

// User-specific error definitions.
var (
	// ErrUserNotFound indicates no user exists with the given identifier.
	ErrUserNotFound = errors.Wrap(errors.ErrNotFound, "user not found")

	// ErrEmailTaken indicates the email is already registered.
	ErrEmailTaken = errors.Wrap(errors.ErrConflict, "email already registered")

	// ErrInvalidCredentials indicates login failed. Used for both unknown
	// email and wrong password so accounts cannot be enumerated.
	ErrInvalidCredentials = errors.Wrap(errors.ErrUnauthorized, "invalid credentials")

	// ErrInvalidSessionToken indicates a session token failed signature
	// verification or carries a malformed payload.
	ErrInvalidSessionToken = errors.Wrap(errors.ErrUnauthorized, "invalid session token")
)
