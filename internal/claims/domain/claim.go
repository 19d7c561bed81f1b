// Package domain defines the claim model. A claim is a recipient's request to
// unlock a will policy, backed by uploaded identity documents, and moves from
// pending to approved or denied under manual review.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Claim statuses.
const (
	ClaimStatusPending  = "pending"
	ClaimStatusApproved = "approved"
	ClaimStatusDenied   = "denied"
)

// Claim represents a recipient's identity-verified request against a policy.
// DocumentKey fields are opaque blob store keys; the documents themselves
// never transit the API after upload.
type Claim struct {
	ID            uuid.UUID
	PolicyID      uuid.UUID
	RecipientID   uuid.UUID
	Status        string
	IDDocumentKey string
	DeathCertKey  string
	ReviewedBy    string
	ReviewedAt    *time.Time
	CreatedAt     time.Time
}
