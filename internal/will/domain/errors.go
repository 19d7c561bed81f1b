package domain

import (
	"github.com/lifekey/lifekey/internal/errors"
)

// Will-specific error definitions.
var (
	// ErrRecipientNotFound indicates no recipient exists with the given
	// identifier, or the caller does not own it.
	ErrRecipientNotFound = errors.Wrap(errors.ErrNotFound, "recipient not found")

	// ErrPolicyNotFound indicates no will policy exists with the given
	// identifier, or the caller does not own it.
	ErrPolicyNotFound = errors.Wrap(errors.ErrNotFound, "will policy not found")

	// ErrAssignmentNotFound indicates no assignment exists with the given
	// identifier.
	ErrAssignmentNotFound = errors.Wrap(errors.ErrNotFound, "will assignment not found")

	// ErrPolicyPaused indicates the policy is not accepting claims.
	ErrPolicyPaused = errors.Wrap(errors.ErrPreconditionFailed, "will policy is paused")

	// ErrInvalidPolicyStatus indicates an unaccepted policy status value.
	ErrInvalidPolicyStatus = errors.Wrap(errors.ErrInvalidInput, "invalid will policy status")

	// ErrInvalidPermission indicates an unaccepted assignment permission.
	ErrInvalidPermission = errors.Wrap(errors.ErrInvalidInput, "invalid assignment permission")
)
