// Package domain defines the domain model for digital wills: designated
// recipients, will policies, and the assignments that bind vault items to
// recipients under a policy.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Recipient represents a person designated by an owner to receive vault
// items after an approved claim. Recipients hold no accounts; they are
// identified by the exact (email, legal name, date of birth) triple the owner
// recorded.
type Recipient struct {
	// ID is the unique identifier for the recipient.
	ID uuid.UUID
	// OwnerID is the account owner who designated this recipient.
	OwnerID uuid.UUID
	// Email is the recipient's contact email.
	Email string
	// LegalName is the recipient's full legal name as the owner recorded it.
	LegalName string
	// DateOfBirth is a YYYY-MM-DD string, matched byte-for-byte during
	// claim submission.
	DateOfBirth string
	// Relationship describes the recipient's relation to the owner.
	Relationship string
	// CreatedAt is the UTC timestamp when the recipient was added.
	CreatedAt time.Time
}
