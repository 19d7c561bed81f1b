package usecase

import (
	"context"
	"fmt"
	"path"
	"time"

	validation "github.com/jellydator/validation"

	"github.com/google/uuid"

	auditDomain "github.com/lifekey/lifekey/internal/audit/domain"
	auditUseCase "github.com/lifekey/lifekey/internal/audit/usecase"
	"github.com/lifekey/lifekey/internal/blob"
	"github.com/lifekey/lifekey/internal/claims/domain"
	"github.com/lifekey/lifekey/internal/database"
	apperrors "github.com/lifekey/lifekey/internal/errors"
	appValidation "github.com/lifekey/lifekey/internal/validation"
	willDomain "github.com/lifekey/lifekey/internal/will/domain"
)

// claimUseCase handles the claim lifecycle.
type claimUseCase struct {
	txManager       database.TxManager
	claimRepo       ClaimRepository
	recipientFinder RecipientFinder
	policyGetter    PolicyGetter
	documentStore   blob.Store
	auditUseCase    auditUseCase.AuditUseCase
}

// NewClaimUseCase creates a new ClaimUseCase with the provided dependencies.
func NewClaimUseCase(
	txManager database.TxManager,
	claimRepo ClaimRepository,
	recipientFinder RecipientFinder,
	policyGetter PolicyGetter,
	documentStore blob.Store,
	auditUseCase auditUseCase.AuditUseCase,
) ClaimUseCase {
	return &claimUseCase{
		txManager:       txManager,
		claimRepo:       claimRepo,
		recipientFinder: recipientFinder,
		policyGetter:    policyGetter,
		documentStore:   documentStore,
		auditUseCase:    auditUseCase,
	}
}

// validateSubmitClaimInput validates claim submission input.
func (uc *claimUseCase) validateSubmitClaimInput(input *SubmitClaimInput) error {
	err := validation.ValidateStruct(input,
		validation.Field(&input.Email,
			validation.Required.Error("email is required"),
			appValidation.Email,
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
	)
	if err != nil {
		return appValidation.WrapValidationError(err)
	}

	if input.IDDocument == nil || len(input.IDDocument.Data) == 0 {
		return apperrors.Wrap(apperrors.ErrInvalidInput, "id_document is required")
	}
	if input.DeathCert == nil || len(input.DeathCert.Data) == 0 {
		return apperrors.Wrap(apperrors.ErrInvalidInput, "death_certificate is required")
	}
	return nil
}

// documentKey builds the blob store key for an uploaded claim document.
func documentKey(policyID, recipientID uuid.UUID, submittedAt time.Time, kind, filename string) string {
	return fmt.Sprintf("claim_%s_%s_%d_%s_%s",
		policyID, recipientID, submittedAt.Unix(), kind, path.Base(filename))
}

// SubmitClaim files a claim against a policy after matching the submitted
// identity against the policy owner's recipients.
func (uc *claimUseCase) SubmitClaim(ctx context.Context, input *SubmitClaimInput) (*domain.Claim, error) {
	if err := uc.validateSubmitClaimInput(input); err != nil {
		return nil, err
	}

	policy, err := uc.policyGetter.GetByID(ctx, input.PolicyID)
	if err != nil {
		return nil, err
	}
	if policy.Status != willDomain.PolicyStatusActive {
		return nil, willDomain.ErrPolicyPaused
	}

	recipient, err := uc.recipientFinder.FindByIdentity(
		ctx, policy.OwnerID, input.Email, input.LegalName, input.DateOfBirth,
	)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrNotFound) {
			// The rejection is worth an audit trail entry even though the
			// submission itself leaves no claim row.
			_ = uc.auditUseCase.Record(ctx, "recipient:"+input.Email, auditDomain.ActionClaimRejected,
				auditDomain.TargetTypePolicy, policy.ID.String(),
				map[string]any{"reason": "identity_mismatch"})
			return nil, domain.ErrIdentityMismatch
		}
		return nil, err
	}

	now := time.Now().UTC()
	claim := &domain.Claim{
		ID:            uuid.Must(uuid.NewV7()),
		PolicyID:      policy.ID,
		RecipientID:   recipient.ID,
		Status:        domain.ClaimStatusPending,
		IDDocumentKey: documentKey(policy.ID, recipient.ID, now, "id", input.IDDocument.Filename),
		DeathCertKey:  documentKey(policy.ID, recipient.ID, now, "dc", input.DeathCert.Filename),
		CreatedAt:     now,
	}

	if err := uc.documentStore.Save(ctx, claim.IDDocumentKey, input.IDDocument.Data, input.IDDocument.ContentType); err != nil {
		return nil, err
	}
	if err := uc.documentStore.Save(ctx, claim.DeathCertKey, input.DeathCert.Data, input.DeathCert.ContentType); err != nil {
		return nil, err
	}

	err = uc.txManager.WithTx(ctx, func(ctx context.Context) error {
		if err := uc.claimRepo.Create(ctx, claim); err != nil {
			return err
		}

		return uc.auditUseCase.Record(
			ctx,
			"recipient:"+recipient.Email,
			auditDomain.ActionClaimSubmitted,
			auditDomain.TargetTypeClaim,
			claim.ID.String(),
			map[string]any{"policy_id": policy.ID.String(), "recipient_id": recipient.ID.String()},
		)
	})
	if err != nil {
		return nil, err
	}

	return claim, nil
}

// GetClaim retrieves a claim by ID.
func (uc *claimUseCase) GetClaim(ctx context.Context, claimID uuid.UUID) (*domain.Claim, error) {
	return uc.claimRepo.GetByID(ctx, claimID)
}

// ApproveClaim marks a pending claim approved.
func (uc *claimUseCase) ApproveClaim(ctx context.Context, claimID uuid.UUID, reviewer string) (*domain.Claim, error) {
	return uc.review(ctx, claimID, domain.ClaimStatusApproved, reviewer, auditDomain.ActionClaimApproved)
}

// DenyClaim marks a pending claim denied.
func (uc *claimUseCase) DenyClaim(ctx context.Context, claimID uuid.UUID, reviewer string) (*domain.Claim, error) {
	return uc.review(ctx, claimID, domain.ClaimStatusDenied, reviewer, auditDomain.ActionClaimDenied)
}

func (uc *claimUseCase) review(ctx context.Context, claimID uuid.UUID, status, reviewer, action string) (*domain.Claim, error) {
	claim, err := uc.claimRepo.GetByID(ctx, claimID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	err = uc.txManager.WithTx(ctx, func(ctx context.Context) error {
		if err := uc.claimRepo.UpdateReview(ctx, claimID, status, reviewer, now); err != nil {
			return err
		}

		return uc.auditUseCase.Record(
			ctx,
			reviewer,
			action,
			auditDomain.TargetTypeClaim,
			claimID.String(),
			nil,
		)
	})
	if err != nil {
		return nil, err
	}

	claim.Status = status
	claim.ReviewedBy = reviewer
	claim.ReviewedAt = &now
	return claim, nil
}
