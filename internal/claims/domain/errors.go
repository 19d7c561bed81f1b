package domain

import (
	"github.com/lifekey/lifekey/internal/errors"
)

var (
	// ErrClaimNotFound is returned when a claim does not exist.
	ErrClaimNotFound = errors.Wrap(errors.ErrNotFound, "claim not found")

	// ErrIdentityMismatch is returned when the submitted identity does not
	// exactly match any recipient designated by the policy owner. The
	// response never says which of the three fields failed.
	ErrIdentityMismatch = errors.Wrap(errors.ErrInvalidInput, "identity does not match any designated recipient")

	// ErrClaimNotPending is returned when a review decision targets a claim
	// that has already been decided.
	ErrClaimNotPending = errors.Wrap(errors.ErrPreconditionFailed, "claim has already been reviewed")
)
