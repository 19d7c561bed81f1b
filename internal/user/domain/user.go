// Package domain defines the core domain model for account owners.
// Owners store vault items, designate recipients, and configure will policies;
// they are the only authenticated principals in the system. Recipients never
// hold accounts and are reached through release tokens instead.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// User represents an account owner.
type User struct {
	// ID is the unique identifier for the user.
	ID uuid.UUID
	// Email is the unique login email.
	Email string
	// Name is the display name.
	Name string
	// PasswordHash is the argon2id hash of the password (salt embedded).
	PasswordHash string
	// CreatedAt is the UTC timestamp when the account was created.
	CreatedAt time.Time
}
