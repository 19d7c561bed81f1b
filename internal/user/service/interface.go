// Package service provides authentication services for account owners:
// argon2id password hashing and the session capability token codec.
package service

import (
	"github.com/google/uuid"
)

// PasswordService defines the interface for hashing and verifying passwords.
type PasswordService interface {
	// HashPassword hashes a plain text password.
	HashPassword(plainPassword string) (string, error)

	// ComparePassword performs a constant-time comparison between a plain
	// password and its hash.
	ComparePassword(plainPassword string, hashedPassword string) bool
}

// SessionTokenCodec signs and verifies session capability tokens. A session
// token carries only the user identifier; the codec checks the signature but
// enforces no expiry.
type SessionTokenCodec interface {
	// Encode mints a signed session token for the user.
	Encode(userID uuid.UUID) (string, error)

	// Decode verifies the signature and returns the embedded user identifier.
	Decode(token string) (uuid.UUID, error)
}
