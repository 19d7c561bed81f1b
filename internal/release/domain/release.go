// Package domain defines the release model. A release is a time-limited grant
// minted for one recipient of an approved claim; its token is the only
// credential needed to view the released items.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Release grants one recipient access to their assigned items for a limited
// window after claim approval.
type Release struct {
	ID          uuid.UUID
	ClaimID     uuid.UUID
	RecipientID uuid.UUID
	Token       string
	ExpiresAt   time.Time
	CreatedAt   time.Time
}

// IssuedRelease is the issuance result for one recipient.
type IssuedRelease struct {
	RecipientID uuid.UUID
	URL         string
	ExpiresAt   time.Time
}

// ReleasedItem is a decrypted vault item as surfaced to a recipient.
type ReleasedItem struct {
	Title      string
	Type       string
	Payload    map[string]any
	Permission string
}

// ReleaseView is what a recipient sees when redeeming a release token.
type ReleaseView struct {
	RecipientEmail string
	Items          []*ReleasedItem
}
