package usecase

import (
	"context"
	"strings"
	"time"

	validation "github.com/jellydator/validation"

	"github.com/google/uuid"

	auditDomain "github.com/lifekey/lifekey/internal/audit/domain"
	auditUseCase "github.com/lifekey/lifekey/internal/audit/usecase"
	"github.com/lifekey/lifekey/internal/database"
	vaultDomain "github.com/lifekey/lifekey/internal/vault/domain"
	appValidation "github.com/lifekey/lifekey/internal/validation"
	"github.com/lifekey/lifekey/internal/will/domain"
)

// willUseCase handles owner-scoped will operations.
type willUseCase struct {
	txManager      database.TxManager
	recipientRepo  RecipientRepository
	policyRepo     PolicyRepository
	assignmentRepo AssignmentRepository
	vaultItems     VaultItemGetter
	auditUseCase   auditUseCase.AuditUseCase
}

// NewWillUseCase creates a new WillUseCase with the provided dependencies.
func NewWillUseCase(
	txManager database.TxManager,
	recipientRepo RecipientRepository,
	policyRepo PolicyRepository,
	assignmentRepo AssignmentRepository,
	vaultItems VaultItemGetter,
	auditUseCase auditUseCase.AuditUseCase,
) WillUseCase {
	return &willUseCase{
		txManager:      txManager,
		recipientRepo:  recipientRepo,
		policyRepo:     policyRepo,
		assignmentRepo: assignmentRepo,
		vaultItems:     vaultItems,
		auditUseCase:   auditUseCase,
	}
}

// validateAddRecipientInput validates recipient designation input.
func (uc *willUseCase) validateAddRecipientInput(input *AddRecipientInput) error {
	err := validation.ValidateStruct(input,
		validation.Field(&input.Email,
			validation.Required.Error("email is required"),
			appValidation.NotBlank,
			appValidation.Email,
			validation.Length(5, 255).Error("email must be between 5 and 255 characters"),
		),
		validation.Field(&input.LegalName,
			validation.Required.Error("legal_name is required"),
			appValidation.NotBlank,
			validation.Length(1, 255).Error("legal_name must be between 1 and 255 characters"),
		),
		validation.Field(&input.DateOfBirth,
			validation.Required.Error("date_of_birth is required"),
			appValidation.Date,
		),
		validation.Field(&input.Relationship,
			validation.Length(0, 100).Error("relationship must be at most 100 characters"),
		),
	)
	return appValidation.WrapValidationError(err)
}

// AddRecipient designates a new recipient and records an audit event in the
// same transaction. The identity triple is stored exactly as given; claim
// matching later compares byte-for-byte.
func (uc *willUseCase) AddRecipient(
	ctx context.Context,
	ownerID uuid.UUID,
	input *AddRecipientInput,
) (*domain.Recipient, error) {
	if err := uc.validateAddRecipientInput(input); err != nil {
		return nil, err
	}

	recipient := &domain.Recipient{
		ID:           uuid.Must(uuid.NewV7()),
		OwnerID:      ownerID,
		Email:        input.Email,
		LegalName:    input.LegalName,
		DateOfBirth:  input.DateOfBirth,
		Relationship: strings.TrimSpace(input.Relationship),
		CreatedAt:    time.Now().UTC(),
	}

	err := uc.txManager.WithTx(ctx, func(ctx context.Context) error {
		if err := uc.recipientRepo.Create(ctx, recipient); err != nil {
			return err
		}

		return uc.auditUseCase.Record(
			ctx,
			"user:"+ownerID.String(),
			auditDomain.ActionRecipientAdded,
			auditDomain.TargetTypeRecipient,
			recipient.ID.String(),
			map[string]any{"email": recipient.Email},
		)
	})
	if err != nil {
		return nil, err
	}

	return recipient, nil
}

// ListRecipients retrieves the owner's recipients, newest first.
func (uc *willUseCase) ListRecipients(
	ctx context.Context,
	ownerID uuid.UUID,
	offset, limit int,
) ([]*domain.Recipient, error) {
	return uc.recipientRepo.ListByOwner(ctx, ownerID, offset, limit)
}

// validateCreatePolicyInput validates policy creation input.
func (uc *willUseCase) validateCreatePolicyInput(input *CreatePolicyInput) error {
	err := validation.ValidateStruct(input,
		validation.Field(&input.Name,
			validation.Required.Error("name is required"),
			appValidation.NotBlank,
			validation.Length(1, 255).Error("name must be between 1 and 255 characters"),
		),
		validation.Field(&input.DisputeWindowHours,
			validation.Min(0).Error("dispute_window_hours must not be negative"),
			validation.Max(24*365).Error("dispute_window_hours must be at most one year"),
		),
	)
	return appValidation.WrapValidationError(err)
}

// CreatePolicy creates an active will policy and records an audit event in
// the same transaction.
func (uc *willUseCase) CreatePolicy(
	ctx context.Context,
	ownerID uuid.UUID,
	input *CreatePolicyInput,
) (*domain.WillPolicy, error) {
	if err := uc.validateCreatePolicyInput(input); err != nil {
		return nil, err
	}

	policy := &domain.WillPolicy{
		ID:                 uuid.Must(uuid.NewV7()),
		OwnerID:            ownerID,
		Name:               input.Name,
		Status:             domain.PolicyStatusActive,
		DisputeWindowHours: input.DisputeWindowHours,
		CreatedAt:          time.Now().UTC(),
	}

	err := uc.txManager.WithTx(ctx, func(ctx context.Context) error {
		if err := uc.policyRepo.Create(ctx, policy); err != nil {
			return err
		}

		return uc.auditUseCase.Record(
			ctx,
			"user:"+ownerID.String(),
			auditDomain.ActionPolicyCreated,
			auditDomain.TargetTypePolicy,
			policy.ID.String(),
			map[string]any{"name": policy.Name},
		)
	})
	if err != nil {
		return nil, err
	}

	return policy, nil
}

// ListPolicies retrieves the owner's will policies, newest first.
func (uc *willUseCase) ListPolicies(
	ctx context.Context,
	ownerID uuid.UUID,
	offset, limit int,
) ([]*domain.WillPolicy, error) {
	return uc.policyRepo.ListByOwner(ctx, ownerID, offset, limit)
}

// UpdatePolicyStatus pauses or resumes one of the owner's policies.
func (uc *willUseCase) UpdatePolicyStatus(ctx context.Context, ownerID, policyID uuid.UUID, status string) error {
	if status != domain.PolicyStatusActive && status != domain.PolicyStatusPaused {
		return domain.ErrInvalidPolicyStatus
	}
	return uc.policyRepo.UpdateStatus(ctx, policyID, ownerID, status)
}

// CreateAssignment binds a vault item to a recipient under a policy. All
// three referenced entities must belong to the caller; any foreign reference
// reports not-found so ownership is not leaked.
func (uc *willUseCase) CreateAssignment(
	ctx context.Context,
	ownerID uuid.UUID,
	input *CreateAssignmentInput,
) (*domain.WillAssignment, error) {
	if input.Permission != domain.PermissionView && input.Permission != domain.PermissionExport {
		return nil, domain.ErrInvalidPermission
	}

	policy, err := uc.policyRepo.GetByID(ctx, input.PolicyID)
	if err != nil {
		return nil, err
	}
	if policy.OwnerID != ownerID {
		return nil, domain.ErrPolicyNotFound
	}

	item, err := uc.vaultItems.GetByID(ctx, input.VaultItemID)
	if err != nil {
		return nil, err
	}
	if item.OwnerID != ownerID {
		return nil, vaultDomain.ErrVaultItemNotFound
	}

	recipient, err := uc.recipientRepo.GetByID(ctx, input.RecipientID)
	if err != nil {
		return nil, err
	}
	if recipient.OwnerID != ownerID {
		return nil, domain.ErrRecipientNotFound
	}

	assignment := &domain.WillAssignment{
		ID:          uuid.Must(uuid.NewV7()),
		PolicyID:    input.PolicyID,
		VaultItemID: input.VaultItemID,
		RecipientID: input.RecipientID,
		Permission:  input.Permission,
		CreatedAt:   time.Now().UTC(),
	}

	err = uc.txManager.WithTx(ctx, func(ctx context.Context) error {
		if err := uc.assignmentRepo.Create(ctx, assignment); err != nil {
			return err
		}

		return uc.auditUseCase.Record(
			ctx,
			"user:"+ownerID.String(),
			auditDomain.ActionAssignmentCreated,
			auditDomain.TargetTypeAssignment,
			assignment.ID.String(),
			map[string]any{
				"policy_id":     input.PolicyID.String(),
				"vault_item_id": input.VaultItemID.String(),
				"recipient_id":  input.RecipientID.String(),
				"permission":    input.Permission,
			},
		)
	})
	if err != nil {
		return nil, err
	}

	return assignment, nil
}

// ListAssignments retrieves the assignments under one of the owner's
// policies.
func (uc *willUseCase) ListAssignments(
	ctx context.Context,
	ownerID, policyID uuid.UUID,
) ([]*domain.WillAssignment, error) {
	policy, err := uc.policyRepo.GetByID(ctx, policyID)
	if err != nil {
		return nil, err
	}
	if policy.OwnerID != ownerID {
		return nil, domain.ErrPolicyNotFound
	}

	return uc.assignmentRepo.ListByPolicy(ctx, policyID)
}
