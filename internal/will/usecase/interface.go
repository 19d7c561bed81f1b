// Package usecase implements the owner-facing business logic for wills:
// recipient designation, policy management, and item assignments.
package usecase

import (
	"context"

	"github.com/google/uuid"

	vaultDomain "github.com/lifekey/lifekey/internal/vault/domain"
	"github.com/lifekey/lifekey/internal/will/domain"
)

// AddRecipientInput contains the input data for designating a recipient.
type AddRecipientInput struct {
	Email        string
	LegalName    string
	DateOfBirth  string
	Relationship string
}

// CreatePolicyInput contains the input data for creating a will policy.
type CreatePolicyInput struct {
	Name               string
	DisputeWindowHours int
}

// CreateAssignmentInput contains the input data for assigning a vault item
// to a recipient under a policy.
type CreateAssignmentInput struct {
	PolicyID    uuid.UUID
	VaultItemID uuid.UUID
	RecipientID uuid.UUID
	Permission  string
}

// RecipientRepository defines persistence operations for recipients.
type RecipientRepository interface {
	Create(ctx context.Context, recipient *domain.Recipient) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Recipient, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID, offset, limit int) ([]*domain.Recipient, error)
	FindByIdentity(ctx context.Context, ownerID uuid.UUID, email, legalName, dateOfBirth string) (*domain.Recipient, error)
}

// PolicyRepository defines persistence operations for will policies.
type PolicyRepository interface {
	Create(ctx context.Context, policy *domain.WillPolicy) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.WillPolicy, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID, offset, limit int) ([]*domain.WillPolicy, error)
	UpdateStatus(ctx context.Context, id, ownerID uuid.UUID, status string) error
}

// AssignmentRepository defines persistence operations for will assignments.
type AssignmentRepository interface {
	Create(ctx context.Context, assignment *domain.WillAssignment) error
	ListByPolicy(ctx context.Context, policyID uuid.UUID) ([]*domain.WillAssignment, error)
	ListByPolicyAndRecipient(ctx context.Context, policyID, recipientID uuid.UUID) ([]*domain.WillAssignment, error)
}

// VaultItemGetter reads vault items for assignment ownership checks.
type VaultItemGetter interface {
	GetByID(ctx context.Context, id uuid.UUID) (*vaultDomain.VaultItem, error)
}

// WillUseCase defines owner-scoped will operations.
type WillUseCase interface {
	// AddRecipient designates a new recipient for the owner.
	AddRecipient(ctx context.Context, ownerID uuid.UUID, input *AddRecipientInput) (*domain.Recipient, error)

	// ListRecipients retrieves the owner's recipients, newest first.
	ListRecipients(ctx context.Context, ownerID uuid.UUID, offset, limit int) ([]*domain.Recipient, error)

	// CreatePolicy creates an active will policy for the owner.
	CreatePolicy(ctx context.Context, ownerID uuid.UUID, input *CreatePolicyInput) (*domain.WillPolicy, error)

	// ListPolicies retrieves the owner's will policies, newest first.
	ListPolicies(ctx context.Context, ownerID uuid.UUID, offset, limit int) ([]*domain.WillPolicy, error)

	// UpdatePolicyStatus pauses or resumes one of the owner's policies.
	UpdatePolicyStatus(ctx context.Context, ownerID, policyID uuid.UUID, status string) error

	// CreateAssignment binds a vault item to a recipient under a policy.
	// The policy, item, and recipient must all belong to the caller.
	CreateAssignment(ctx context.Context, ownerID uuid.UUID, input *CreateAssignmentInput) (*domain.WillAssignment, error)

	// ListAssignments retrieves the assignments under one of the owner's
	// policies.
	ListAssignments(ctx context.Context, ownerID, policyID uuid.UUID) ([]*domain.WillAssignment, error)
}
