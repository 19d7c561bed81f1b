// Package domain defines the audit trail model. Audit events are append-only
// and advisory: they record who did what, but a failed audit write never rolls
// back the operation it describes.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Audit actions recorded by the application.
const (
	ActionUserRegistered    = "USER_REGISTERED"
	ActionVaultItemCreated  = "VAULT_ITEM_CREATED"
	ActionVaultItemDeleted  = "VAULT_ITEM_DELETED"
	ActionRecipientAdded    = "RECIPIENT_ADDED"
	ActionPolicyCreated     = "POLICY_CREATED"
	ActionAssignmentCreated = "ASSIGNMENT_CREATED"
	ActionClaimSubmitted    = "CLAIM_SUBMITTED"
	ActionClaimRejected     = "CLAIM_REJECTED"
	ActionClaimApproved     = "CLAIM_APPROVED"
	ActionClaimDenied       = "CLAIM_DENIED"
	ActionReleaseIssued     = "RELEASE_ISSUED"
	ActionReleaseViewed     = "RELEASE_VIEWED"
)

// Audit target types.
const (
	TargetTypeUser       = "user"
	TargetTypeVaultItem  = "vault_item"
	TargetTypeRecipient  = "recipient"
	TargetTypePolicy     = "policy"
	TargetTypeAssignment = "assignment"
	TargetTypeClaim      = "claim"
	TargetTypeRelease    = "release"
)

// AuditEvent records an action performed against a target entity.
// The actor is a free-form principal string such as "user:<id>",
// "recipient:<email>", or "system".
type AuditEvent struct {
	ID         uuid.UUID
	Actor      string
	Action     string
	TargetType string
	TargetID   string
	Metadata   map[string]any
	CreatedAt  time.Time
}
