// Package usecase implements release issuance for approved claims and token
// redemption by recipients.
package usecase

import (
	"context"

	"github.com/google/uuid"

	claimDomain "github.com/lifekey/lifekey/internal/claims/domain"
	"github.com/lifekey/lifekey/internal/release/domain"
	vaultDomain "github.com/lifekey/lifekey/internal/vault/domain"
	willDomain "github.com/lifekey/lifekey/internal/will/domain"
)

// ReleaseRepository defines persistence operations for releases.
type ReleaseRepository interface {
	Create(ctx context.Context, release *domain.Release) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Release, error)
}

// ClaimGetter reads claims for release issuance and redemption.
type ClaimGetter interface {
	GetByID(ctx context.Context, id uuid.UUID) (*claimDomain.Claim, error)
}

// PolicyGetter reads will policies during issuance.
type PolicyGetter interface {
	GetByID(ctx context.Context, id uuid.UUID) (*willDomain.WillPolicy, error)
}

// RecipientGetter reads recipients for redemption attribution.
type RecipientGetter interface {
	GetByID(ctx context.Context, id uuid.UUID) (*willDomain.Recipient, error)
}

// AssignmentLister reads will assignments for release resolution.
type AssignmentLister interface {
	ListByPolicy(ctx context.Context, policyID uuid.UUID) ([]*willDomain.WillAssignment, error)
	ListByPolicyAndRecipient(ctx context.Context, policyID, recipientID uuid.UUID) ([]*willDomain.WillAssignment, error)
}

// VaultItemGetter reads vault items during redemption.
type VaultItemGetter interface {
	GetByID(ctx context.Context, id uuid.UUID) (*vaultDomain.VaultItem, error)
}

// PayloadOpener decrypts sealed vault item payloads.
type PayloadOpener interface {
	DecryptPayload(sealed string) (map[string]any, error)
}

// ReleaseUseCase defines release issuance and redemption operations.
type ReleaseUseCase interface {
	// IssueReleases mints one time-limited release per recipient assigned
	// under the approved claim's policy, ordered by recipient ID.
	IssueReleases(ctx context.Context, claimID uuid.UUID) ([]*domain.IssuedRelease, error)

	// ViewRelease redeems a release token and returns the recipient's
	// decrypted items. Repeatable until the window closes.
	ViewRelease(ctx context.Context, token string) (*domain.ReleaseView, error)
}
