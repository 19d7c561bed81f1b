// Package usecase implements the claim lifecycle: recipient-submitted claims
// with identity verification and document upload, and reviewer decisions.
package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/lifekey/lifekey/internal/claims/domain"
	willDomain "github.com/lifekey/lifekey/internal/will/domain"
)

// Document is an uploaded file attached to a claim submission.
type Document struct {
	Filename    string
	ContentType string
	Data        []byte
}

// SubmitClaimInput contains the input data for filing a claim. The identity
// triple must match a designated recipient byte for byte.
type SubmitClaimInput struct {
	PolicyID    uuid.UUID
	Email       string
	LegalName   string
	DateOfBirth string
	IDDocument  *Document
	DeathCert   *Document
}

// ClaimRepository defines persistence operations for claims.
type ClaimRepository interface {
	Create(ctx context.Context, claim *domain.Claim) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Claim, error)
	UpdateReview(ctx context.Context, id uuid.UUID, status, reviewedBy string, reviewedAt time.Time) error
}

// RecipientFinder matches a submitted identity against an owner's recipients.
type RecipientFinder interface {
	FindByIdentity(ctx context.Context, ownerID uuid.UUID, email, legalName, dateOfBirth string) (*willDomain.Recipient, error)
}

// PolicyGetter reads will policies for claim validation.
type PolicyGetter interface {
	GetByID(ctx context.Context, id uuid.UUID) (*willDomain.WillPolicy, error)
}

// ClaimUseCase defines the claim lifecycle operations.
type ClaimUseCase interface {
	// SubmitClaim files a claim against a policy. The submitted identity must
	// exactly match one of the policy owner's recipients; a mismatch is
	// audited and rejected without creating a claim.
	SubmitClaim(ctx context.Context, input *SubmitClaimInput) (*domain.Claim, error)

	// GetClaim retrieves a claim by ID.
	GetClaim(ctx context.Context, claimID uuid.UUID) (*domain.Claim, error)

	// ApproveClaim marks a pending claim approved.
	ApproveClaim(ctx context.Context, claimID uuid.UUID, reviewer string) (*domain.Claim, error)

	// DenyClaim marks a pending claim denied.
	DenyClaim(ctx context.Context, claimID uuid.UUID, reviewer string) (*domain.Claim, error)
}
