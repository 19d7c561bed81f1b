package usecase

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	auditDomain "github.com/lifekey/lifekey/internal/audit/domain"
	claimDomain "github.com/lifekey/lifekey/internal/claims/domain"
	apperrors "github.com/lifekey/lifekey/internal/errors"
	"github.com/lifekey/lifekey/internal/release/domain"
	vaultDomain "github.com/lifekey/lifekey/internal/vault/domain"
	willDomain "github.com/lifekey/lifekey/internal/will/domain"
)

// MockTxManager is a mock implementation of database.TxManager
type MockTxManager struct {
	mock.Mock
}

func (m *MockTxManager) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	args := m.Called(ctx, fn)
	if args.Get(0) != nil {
		return args.Error(0)
	}
	return fn(ctx)
}

// MockReleaseRepository is a mock implementation of ReleaseRepository
type MockReleaseRepository struct {
	mock.Mock
}

func (m *MockReleaseRepository) Create(ctx context.Context, release *domain.Release) error {
	args := m.Called(ctx, release)
	return args.Error(0)
}

func (m *MockReleaseRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Release, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Release), args.Error(1)
}

// MockClaimGetter is a mock implementation of ClaimGetter
type MockClaimGetter struct {
	mock.Mock
}

func (m *MockClaimGetter) GetByID(ctx context.Context, id uuid.UUID) (*claimDomain.Claim, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*claimDomain.Claim), args.Error(1)
}

// MockPolicyGetter is a mock implementation of PolicyGetter
type MockPolicyGetter struct {
	mock.Mock
}

func (m *MockPolicyGetter) GetByID(ctx context.Context, id uuid.UUID) (*willDomain.WillPolicy, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*willDomain.WillPolicy), args.Error(1)
}

// MockRecipientGetter is a mock implementation of RecipientGetter
type MockRecipientGetter struct {
	mock.Mock
}

func (m *MockRecipientGetter) GetByID(ctx context.Context, id uuid.UUID) (*willDomain.Recipient, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*willDomain.Recipient), args.Error(1)
}

// MockAssignmentLister is a mock implementation of AssignmentLister
type MockAssignmentLister struct {
	mock.Mock
}

func (m *MockAssignmentLister) ListByPolicy(ctx context.Context, policyID uuid.UUID) ([]*willDomain.WillAssignment, error) {
	args := m.Called(ctx, policyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*willDomain.WillAssignment), args.Error(1)
}

func (m *MockAssignmentLister) ListByPolicyAndRecipient(ctx context.Context, policyID, recipientID uuid.UUID) ([]*willDomain.WillAssignment, error) {
	args := m.Called(ctx, policyID, recipientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*willDomain.WillAssignment), args.Error(1)
}

// MockVaultItemGetter is a mock implementation of VaultItemGetter
type MockVaultItemGetter struct {
	mock.Mock
}

func (m *MockVaultItemGetter) GetByID(ctx context.Context, id uuid.UUID) (*vaultDomain.VaultItem, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*vaultDomain.VaultItem), args.Error(1)
}

// MockPayloadOpener is a mock implementation of PayloadOpener
type MockPayloadOpener struct {
	mock.Mock
}

func (m *MockPayloadOpener) DecryptPayload(sealed string) (map[string]any, error) {
	args := m.Called(sealed)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]any), args.Error(1)
}

// MockReleaseTokenCodec is a mock implementation of service.ReleaseTokenCodec
type MockReleaseTokenCodec struct {
	mock.Mock
}

func (m *MockReleaseTokenCodec) Encode(releaseID, recipientID uuid.UUID) (string, error) {
	args := m.Called(releaseID, recipientID)
	return args.String(0), args.Error(1)
}

func (m *MockReleaseTokenCodec) Decode(token string, maxAge time.Duration) (uuid.UUID, uuid.UUID, error) {
	args := m.Called(token, maxAge)
	return args.Get(0).(uuid.UUID), args.Get(1).(uuid.UUID), args.Error(2)
}

// MockAuditUseCase is a mock implementation of auditUseCase.AuditUseCase
type MockAuditUseCase struct {
	mock.Mock
}

func (m *MockAuditUseCase) Record(
	ctx context.Context,
	actor, action, targetType, targetID string,
	metadata map[string]any,
) error {
	args := m.Called(ctx, actor, action, targetType, targetID, metadata)
	return args.Error(0)
}

func (m *MockAuditUseCase) List(ctx context.Context, offset, limit int) ([]*auditDomain.AuditEvent, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*auditDomain.AuditEvent), args.Error(1)
}

type releaseUseCaseMocks struct {
	txManager        *MockTxManager
	releaseRepo      *MockReleaseRepository
	claimGetter      *MockClaimGetter
	policyGetter     *MockPolicyGetter
	recipientGetter  *MockRecipientGetter
	assignmentLister *MockAssignmentLister
	vaultItems       *MockVaultItemGetter
	payloadOpener    *MockPayloadOpener
	tokenCodec       *MockReleaseTokenCodec
	auditUseCase     *MockAuditUseCase
}

func setupReleaseUseCase() (ReleaseUseCase, *releaseUseCaseMocks) {
	m := &releaseUseCaseMocks{
		txManager:        new(MockTxManager),
		releaseRepo:      new(MockReleaseRepository),
		claimGetter:      new(MockClaimGetter),
		policyGetter:     new(MockPolicyGetter),
		recipientGetter:  new(MockRecipientGetter),
		assignmentLister: new(MockAssignmentLister),
		vaultItems:       new(MockVaultItemGetter),
		payloadOpener:    new(MockPayloadOpener),
		tokenCodec:       new(MockReleaseTokenCodec),
		auditUseCase:     new(MockAuditUseCase),
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	uc := NewReleaseUseCase(
		m.txManager, m.releaseRepo, m.claimGetter, m.policyGetter,
		m.recipientGetter, m.assignmentLister, m.vaultItems, m.payloadOpener,
		m.tokenCodec, m.auditUseCase, logger,
		"https://lifekey.example.com", 6*time.Hour,
	)
	return uc, m
}

func activePolicy(policyID uuid.UUID) *willDomain.WillPolicy {
	return &willDomain.WillPolicy{
		ID:      policyID,
		OwnerID: uuid.Must(uuid.NewV7()),
		Name:    "Estate plan",
		Status:  willDomain.PolicyStatusActive,
	}
}

func approvedClaim() *claimDomain.Claim {
	now := time.Now().UTC()
	return &claimDomain.Claim{
		ID:          uuid.Must(uuid.NewV7()),
		PolicyID:    uuid.Must(uuid.NewV7()),
		RecipientID: uuid.Must(uuid.NewV7()),
		Status:      claimDomain.ClaimStatusApproved,
		ReviewedAt:  &now,
		CreatedAt:   now,
	}
}

func TestReleaseUseCase_IssueReleases(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		uc, m := setupReleaseUseCase()

		claim := approvedClaim()
		recipientA := uuid.Must(uuid.NewV7())
		recipientB := uuid.Must(uuid.NewV7())
		assignments := []*willDomain.WillAssignment{
			{ID: uuid.Must(uuid.NewV7()), PolicyID: claim.PolicyID, RecipientID: recipientA, VaultItemID: uuid.Must(uuid.NewV7())},
			{ID: uuid.Must(uuid.NewV7()), PolicyID: claim.PolicyID, RecipientID: recipientB, VaultItemID: uuid.Must(uuid.NewV7())},
			// Duplicate recipient collapses to one release
			{ID: uuid.Must(uuid.NewV7()), PolicyID: claim.PolicyID, RecipientID: recipientA, VaultItemID: uuid.Must(uuid.NewV7())},
		}

		m.claimGetter.On("GetByID", mock.Anything, claim.ID).Return(claim, nil)
		m.policyGetter.On("GetByID", mock.Anything, claim.PolicyID).Return(activePolicy(claim.PolicyID), nil)
		m.assignmentLister.On("ListByPolicy", mock.Anything, claim.PolicyID).Return(assignments, nil)
		m.tokenCodec.On("Encode", mock.Anything, recipientA).Return("token-a", nil)
		m.tokenCodec.On("Encode", mock.Anything, recipientB).Return("token-b", nil)
		m.txManager.On("WithTx", mock.Anything, mock.Anything).Return(nil)
		m.releaseRepo.On("Create", mock.Anything, mock.MatchedBy(func(release *domain.Release) bool {
			return release.ClaimID == claim.ID && release.Token != "" &&
				release.ExpiresAt.After(release.CreatedAt)
		})).Return(nil).Twice()
		m.auditUseCase.On("Record", mock.Anything, "system", auditDomain.ActionReleaseIssued,
			auditDomain.TargetTypeRelease, mock.Anything, mock.Anything).Return(nil).Twice()

		issued, err := uc.IssueReleases(context.Background(), claim.ID)
		require.NoError(t, err)
		require.Len(t, issued, 2)
		// Ascending recipient ID order
		assert.Equal(t, -1, bytes.Compare(issued[0].RecipientID[:], issued[1].RecipientID[:]))
		for _, release := range issued {
			assert.Contains(t, release.URL, "https://lifekey.example.com/release/token-")
		}
		m.releaseRepo.AssertExpectations(t)
		m.auditUseCase.AssertExpectations(t)
	})

	t.Run("NotApproved", func(t *testing.T) {
		uc, m := setupReleaseUseCase()

		claim := approvedClaim()
		claim.Status = claimDomain.ClaimStatusPending
		m.claimGetter.On("GetByID", mock.Anything, claim.ID).Return(claim, nil)

		issued, err := uc.IssueReleases(context.Background(), claim.ID)
		assert.Nil(t, issued)
		assert.ErrorIs(t, err, domain.ErrClaimNotApproved)
		assert.True(t, apperrors.Is(err, apperrors.ErrPreconditionFailed))
		m.assignmentLister.AssertNotCalled(t, "ListByPolicy")
	})

	t.Run("ClaimNotFound", func(t *testing.T) {
		uc, m := setupReleaseUseCase()

		claimID := uuid.Must(uuid.NewV7())
		m.claimGetter.On("GetByID", mock.Anything, claimID).Return(nil, claimDomain.ErrClaimNotFound)

		issued, err := uc.IssueReleases(context.Background(), claimID)
		assert.Nil(t, issued)
		assert.ErrorIs(t, err, claimDomain.ErrClaimNotFound)
	})

	t.Run("NoAssignments", func(t *testing.T) {
		uc, m := setupReleaseUseCase()

		claim := approvedClaim()
		m.claimGetter.On("GetByID", mock.Anything, claim.ID).Return(claim, nil)
		m.policyGetter.On("GetByID", mock.Anything, claim.PolicyID).Return(activePolicy(claim.PolicyID), nil)
		m.assignmentLister.On("ListByPolicy", mock.Anything, claim.PolicyID).
			Return([]*willDomain.WillAssignment{}, nil)

		issued, err := uc.IssueReleases(context.Background(), claim.ID)
		require.NoError(t, err)
		assert.Empty(t, issued)
		m.releaseRepo.AssertNotCalled(t, "Create")
	})

	t.Run("PolicyGone", func(t *testing.T) {
		uc, m := setupReleaseUseCase()

		claim := approvedClaim()
		m.claimGetter.On("GetByID", mock.Anything, claim.ID).Return(claim, nil)
		m.policyGetter.On("GetByID", mock.Anything, claim.PolicyID).
			Return(nil, willDomain.ErrPolicyNotFound)

		issued, err := uc.IssueReleases(context.Background(), claim.ID)
		assert.Nil(t, issued)
		assert.ErrorIs(t, err, willDomain.ErrPolicyNotFound)
		assert.True(t, apperrors.Is(err, apperrors.ErrNotFound))
		m.assignmentLister.AssertNotCalled(t, "ListByPolicy")
	})
}

func TestReleaseUseCase_ViewRelease(t *testing.T) {
	setupView := func(m *releaseUseCaseMocks) (*domain.Release, *claimDomain.Claim, *willDomain.Recipient) {
		claim := approvedClaim()
		recipient := &willDomain.Recipient{
			ID:          claim.RecipientID,
			OwnerID:     uuid.Must(uuid.NewV7()),
			Email:       "maria@example.com",
			LegalName:   "Maria Oliveira",
			DateOfBirth: "1961-04-12",
		}
		release := &domain.Release{
			ID:          uuid.Must(uuid.NewV7()),
			ClaimID:     claim.ID,
			RecipientID: claim.RecipientID,
			Token:       "signed-token",
			ExpiresAt:   time.Now().UTC().Add(time.Hour),
			CreatedAt:   time.Now().UTC(),
		}

		m.tokenCodec.On("Decode", "signed-token", 6*time.Hour).Return(release.ID, release.RecipientID, nil)
		m.releaseRepo.On("GetByID", mock.Anything, release.ID).Return(release, nil)
		m.claimGetter.On("GetByID", mock.Anything, claim.ID).Return(claim, nil)
		m.recipientGetter.On("GetByID", mock.Anything, claim.RecipientID).Return(recipient, nil)
		return release, claim, recipient
	}

	t.Run("Success", func(t *testing.T) {
		uc, m := setupReleaseUseCase()
		release, claim, _ := setupView(m)

		itemID := uuid.Must(uuid.NewV7())
		assignments := []*willDomain.WillAssignment{
			{ID: uuid.Must(uuid.NewV7()), PolicyID: claim.PolicyID, RecipientID: claim.RecipientID, VaultItemID: itemID, Permission: willDomain.PermissionView},
		}
		item := &vaultDomain.VaultItem{
			ID:               itemID,
			Title:            "Bank login",
			Type:             vaultDomain.ItemTypeLogin,
			EncryptedPayload: "sealed",
		}

		m.assignmentLister.On("ListByPolicyAndRecipient", mock.Anything, claim.PolicyID, claim.RecipientID).Return(assignments, nil)
		m.vaultItems.On("GetByID", mock.Anything, itemID).Return(item, nil)
		m.payloadOpener.On("DecryptPayload", "sealed").Return(map[string]any{"username": "ana"}, nil)
		m.auditUseCase.On("Record", mock.Anything, "recipient:maria@example.com",
			auditDomain.ActionReleaseViewed, auditDomain.TargetTypeRelease, release.ID.String(),
			map[string]any{"item_count": 1}).Return(nil)

		view, err := uc.ViewRelease(context.Background(), "signed-token")
		require.NoError(t, err)
		assert.Equal(t, "maria@example.com", view.RecipientEmail)
		require.Len(t, view.Items, 1)
		assert.Equal(t, "Bank login", view.Items[0].Title)
		assert.Equal(t, "ana", view.Items[0].Payload["username"])
		assert.Equal(t, willDomain.PermissionView, view.Items[0].Permission)
		m.auditUseCase.AssertExpectations(t)
	})

	t.Run("SiblingRecipientSeesOwnItems", func(t *testing.T) {
		// One recipient files the claim; the release under test belongs to a
		// second recipient assigned under the same policy. The token must
		// unlock the second recipient's items, never the submitter's.
		uc, m := setupReleaseUseCase()

		claim := approvedClaim()
		submitterItemID := uuid.Must(uuid.NewV7())
		sibling := &willDomain.Recipient{
			ID:          uuid.Must(uuid.NewV7()),
			OwnerID:     uuid.Must(uuid.NewV7()),
			Email:       "joao@example.com",
			LegalName:   "Joao Oliveira",
			DateOfBirth: "1964-09-30",
		}
		release := &domain.Release{
			ID:          uuid.Must(uuid.NewV7()),
			ClaimID:     claim.ID,
			RecipientID: sibling.ID,
			Token:       "sibling-token",
			ExpiresAt:   time.Now().UTC().Add(time.Hour),
			CreatedAt:   time.Now().UTC(),
		}
		siblingItemID := uuid.Must(uuid.NewV7())
		siblingAssignments := []*willDomain.WillAssignment{
			{PolicyID: claim.PolicyID, RecipientID: sibling.ID, VaultItemID: siblingItemID, Permission: willDomain.PermissionView},
		}

		m.tokenCodec.On("Decode", "sibling-token", 6*time.Hour).Return(release.ID, sibling.ID, nil)
		m.releaseRepo.On("GetByID", mock.Anything, release.ID).Return(release, nil)
		m.claimGetter.On("GetByID", mock.Anything, claim.ID).Return(claim, nil)
		m.recipientGetter.On("GetByID", mock.Anything, sibling.ID).Return(sibling, nil)
		m.assignmentLister.On("ListByPolicyAndRecipient", mock.Anything, claim.PolicyID, sibling.ID).
			Return(siblingAssignments, nil)
		m.vaultItems.On("GetByID", mock.Anything, siblingItemID).
			Return(&vaultDomain.VaultItem{ID: siblingItemID, Title: "Sibling letter", Type: vaultDomain.ItemTypeSecureNote, EncryptedPayload: "sealed-sibling"}, nil)
		m.payloadOpener.On("DecryptPayload", "sealed-sibling").
			Return(map[string]any{"text": "for joao only"}, nil)
		m.auditUseCase.On("Record", mock.Anything, "recipient:joao@example.com",
			auditDomain.ActionReleaseViewed, auditDomain.TargetTypeRelease, release.ID.String(),
			map[string]any{"item_count": 1}).Return(nil)

		view, err := uc.ViewRelease(context.Background(), "sibling-token")
		require.NoError(t, err)
		assert.Equal(t, "joao@example.com", view.RecipientEmail)
		require.Len(t, view.Items, 1)
		assert.Equal(t, "Sibling letter", view.Items[0].Title)
		// The submitter's recipient row and assignments were never touched
		m.recipientGetter.AssertNotCalled(t, "GetByID", mock.Anything, claim.RecipientID)
		m.assignmentLister.AssertNotCalled(t, "ListByPolicyAndRecipient", mock.Anything, claim.PolicyID, claim.RecipientID)
		m.vaultItems.AssertNotCalled(t, "GetByID", mock.Anything, submitterItemID)
	})

	t.Run("AuditFailureDoesNotBlockView", func(t *testing.T) {
		uc, m := setupReleaseUseCase()
		release, claim, _ := setupView(m)

		m.assignmentLister.On("ListByPolicyAndRecipient", mock.Anything, claim.PolicyID, claim.RecipientID).
			Return([]*willDomain.WillAssignment{}, nil)
		m.auditUseCase.On("Record", mock.Anything, "recipient:maria@example.com",
			auditDomain.ActionReleaseViewed, auditDomain.TargetTypeRelease, release.ID.String(),
			map[string]any{"item_count": 0}).Return(assert.AnError)

		view, err := uc.ViewRelease(context.Background(), "signed-token")
		require.NoError(t, err)
		assert.Equal(t, "maria@example.com", view.RecipientEmail)
		assert.Empty(t, view.Items)
	})

	t.Run("RecipientMismatch", func(t *testing.T) {
		uc, m := setupReleaseUseCase()

		release := &domain.Release{
			ID:          uuid.Must(uuid.NewV7()),
			ClaimID:     uuid.Must(uuid.NewV7()),
			RecipientID: uuid.Must(uuid.NewV7()),
			ExpiresAt:   time.Now().UTC().Add(time.Hour),
		}
		// Token claims a different recipient than the stored row
		m.tokenCodec.On("Decode", "tampered-token", 6*time.Hour).
			Return(release.ID, uuid.Must(uuid.NewV7()), nil)
		m.releaseRepo.On("GetByID", mock.Anything, release.ID).Return(release, nil)

		view, err := uc.ViewRelease(context.Background(), "tampered-token")
		assert.Nil(t, view)
		assert.ErrorIs(t, err, domain.ErrReleaseNotFound)
		m.claimGetter.AssertNotCalled(t, "GetByID")
	})

	t.Run("StoredExpiryPassed", func(t *testing.T) {
		uc, m := setupReleaseUseCase()

		release := &domain.Release{
			ID:          uuid.Must(uuid.NewV7()),
			ClaimID:     uuid.Must(uuid.NewV7()),
			RecipientID: uuid.Must(uuid.NewV7()),
			ExpiresAt:   time.Now().UTC().Add(-time.Minute),
		}
		m.tokenCodec.On("Decode", "stale-token", 6*time.Hour).
			Return(release.ID, release.RecipientID, nil)
		m.releaseRepo.On("GetByID", mock.Anything, release.ID).Return(release, nil)

		view, err := uc.ViewRelease(context.Background(), "stale-token")
		assert.Nil(t, view)
		assert.ErrorIs(t, err, domain.ErrReleaseExpired)
		assert.True(t, apperrors.Is(err, apperrors.ErrUnauthorized))
	})

	t.Run("BadToken", func(t *testing.T) {
		uc, m := setupReleaseUseCase()

		m.tokenCodec.On("Decode", "garbage", 6*time.Hour).
			Return(uuid.Nil, uuid.Nil, domain.ErrInvalidReleaseToken)

		view, err := uc.ViewRelease(context.Background(), "garbage")
		assert.Nil(t, view)
		assert.ErrorIs(t, err, domain.ErrInvalidReleaseToken)
		m.releaseRepo.AssertNotCalled(t, "GetByID")
	})

	t.Run("SkipsMissingAndUndecryptableItems", func(t *testing.T) {
		uc, m := setupReleaseUseCase()
		release, claim, _ := setupView(m)

		missingID := uuid.Must(uuid.NewV7())
		corruptID := uuid.Must(uuid.NewV7())
		goodID := uuid.Must(uuid.NewV7())
		assignments := []*willDomain.WillAssignment{
			{PolicyID: claim.PolicyID, RecipientID: claim.RecipientID, VaultItemID: missingID, Permission: willDomain.PermissionView},
			{PolicyID: claim.PolicyID, RecipientID: claim.RecipientID, VaultItemID: corruptID, Permission: willDomain.PermissionView},
			{PolicyID: claim.PolicyID, RecipientID: claim.RecipientID, VaultItemID: goodID, Permission: willDomain.PermissionExport},
		}

		m.assignmentLister.On("ListByPolicyAndRecipient", mock.Anything, claim.PolicyID, claim.RecipientID).Return(assignments, nil)
		m.vaultItems.On("GetByID", mock.Anything, missingID).Return(nil, vaultDomain.ErrVaultItemNotFound)
		m.vaultItems.On("GetByID", mock.Anything, corruptID).
			Return(&vaultDomain.VaultItem{ID: corruptID, Title: "Corrupt", EncryptedPayload: "bad"}, nil)
		m.vaultItems.On("GetByID", mock.Anything, goodID).
			Return(&vaultDomain.VaultItem{ID: goodID, Title: "Wallet", Type: vaultDomain.ItemTypeCryptoWallet, EncryptedPayload: "good"}, nil)
		m.payloadOpener.On("DecryptPayload", "bad").Return(nil, vaultDomain.ErrPayloadIntegrity)
		m.payloadOpener.On("DecryptPayload", "good").Return(map[string]any{"seed": "keyboard cat"}, nil)
		m.auditUseCase.On("Record", mock.Anything, "recipient:maria@example.com",
			auditDomain.ActionReleaseViewed, auditDomain.TargetTypeRelease, release.ID.String(),
			map[string]any{"item_count": 1}).Return(nil)

		view, err := uc.ViewRelease(context.Background(), "signed-token")
		require.NoError(t, err)
		require.Len(t, view.Items, 1)
		assert.Equal(t, "Wallet", view.Items[0].Title)
	})
}
