// Package service provides the release token codec.
package service

import (
	"time"

	"github.com/google/uuid"
)

// ReleaseTokenCodec mints and verifies release tokens. A release token binds
// a release row to the recipient it was issued for.
type ReleaseTokenCodec interface {
	// Encode mints a signed token for the release and recipient pair.
	Encode(releaseID, recipientID uuid.UUID) (string, error)

	// Decode verifies the signature and age of the token and returns the
	// embedded release and recipient identifiers.
	Decode(token string, maxAge time.Duration) (releaseID, recipientID uuid.UUID, err error)
}
