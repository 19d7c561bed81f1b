package domain

import (
	"github.com/lifekey/lifekey/internal/errors"
)

var (
	// ErrReleaseNotFound is returned when a release does not exist or the
	// token is bound to a different recipient.
	ErrReleaseNotFound = errors.Wrap(errors.ErrNotFound, "release not found")

	// ErrInvalidReleaseToken is returned for forged, malformed, or
	// wrong-kind tokens.
	ErrInvalidReleaseToken = errors.Wrap(errors.ErrUnauthorized, "invalid release token")

	// ErrReleaseExpired is returned when the token's window has passed.
	ErrReleaseExpired = errors.Wrap(errors.ErrUnauthorized, "release token expired")

	// ErrClaimNotApproved is returned when issuing releases for a claim that
	// is not approved.
	ErrClaimNotApproved = errors.Wrap(errors.ErrPreconditionFailed, "claim is not approved")
)
