package domain

import (
	"time"

	"github.com/google/uuid"
)

// Will policy statuses.
const (
	// PolicyStatusActive means claims against this policy are accepted.
	PolicyStatusActive = "active"
	// PolicyStatusPaused means the owner has suspended the policy; new
	// claims are rejected while paused.
	PolicyStatusPaused = "paused"
)

// WillPolicy represents an owner's release policy. Assignments hang off a
// policy; a claim targets a policy and, once approved, releases the items
// assigned to the claiming recipient under it.
type WillPolicy struct {
	// ID is the unique identifier for the policy.
	ID uuid.UUID
	// OwnerID is the account owner the policy belongs to.
	OwnerID uuid.UUID
	// Name is the owner's label for the policy.
	Name string
	// Status is either active or paused.
	Status string
	// DisputeWindowHours is the contest period recorded for the policy.
	// It is stored for review tooling; enforcement is a manual step.
	DisputeWindowHours int
	// CreatedAt is the UTC timestamp when the policy was created.
	CreatedAt time.Time
}

// WillAssignment permissions.
const (
	// PermissionView allows the recipient to read the decrypted payload.
	PermissionView = "view"
	// PermissionExport additionally allows downloading the payload.
	PermissionExport = "export"
)

// WillAssignment binds one vault item to one recipient under a policy.
type WillAssignment struct {
	// ID is the unique identifier for the assignment.
	ID uuid.UUID
	// PolicyID is the will policy this assignment belongs to.
	PolicyID uuid.UUID
	// VaultItemID is the vault item being assigned.
	VaultItemID uuid.UUID
	// RecipientID is the recipient who receives the item.
	RecipientID uuid.UUID
	// Permission is either view or export.
	Permission string
	// CreatedAt is the UTC timestamp when the assignment was created.
	CreatedAt time.Time
}
