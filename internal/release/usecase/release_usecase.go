package usecase

import (
	"bytes"
	"context"
	"log/slog"
	"slices"
	"time"

	"github.com/google/uuid"

	auditDomain "github.com/lifekey/lifekey/internal/audit/domain"
	auditUseCase "github.com/lifekey/lifekey/internal/audit/usecase"
	claimDomain "github.com/lifekey/lifekey/internal/claims/domain"
	"github.com/lifekey/lifekey/internal/database"
	apperrors "github.com/lifekey/lifekey/internal/errors"
	"github.com/lifekey/lifekey/internal/release/domain"
	"github.com/lifekey/lifekey/internal/release/service"
)

// releaseUseCase handles release issuance and redemption.
type releaseUseCase struct {
	txManager        database.TxManager
	releaseRepo      ReleaseRepository
	claimGetter      ClaimGetter
	policyGetter     PolicyGetter
	recipientGetter  RecipientGetter
	assignmentLister AssignmentLister
	vaultItems       VaultItemGetter
	payloadOpener    PayloadOpener
	tokenCodec       service.ReleaseTokenCodec
	auditUseCase     auditUseCase.AuditUseCase
	logger           *slog.Logger
	baseURL          string
	window           time.Duration
}

// NewReleaseUseCase creates a new ReleaseUseCase with the provided
// dependencies. The window bounds how long issued tokens stay redeemable;
// baseURL is the public prefix of redemption URLs.
func NewReleaseUseCase(
	txManager database.TxManager,
	releaseRepo ReleaseRepository,
	claimGetter ClaimGetter,
	policyGetter PolicyGetter,
	recipientGetter RecipientGetter,
	assignmentLister AssignmentLister,
	vaultItems VaultItemGetter,
	payloadOpener PayloadOpener,
	tokenCodec service.ReleaseTokenCodec,
	auditUseCase auditUseCase.AuditUseCase,
	logger *slog.Logger,
	baseURL string,
	window time.Duration,
) ReleaseUseCase {
	return &releaseUseCase{
		txManager:        txManager,
		releaseRepo:      releaseRepo,
		claimGetter:      claimGetter,
		policyGetter:     policyGetter,
		recipientGetter:  recipientGetter,
		assignmentLister: assignmentLister,
		vaultItems:       vaultItems,
		payloadOpener:    payloadOpener,
		tokenCodec:       tokenCodec,
		auditUseCase:     auditUseCase,
		logger:           logger,
		baseURL:          baseURL,
		window:           window,
	}
}

// IssueReleases mints one release per recipient assigned under the approved
// claim's policy. Recipients are processed in ascending ID order, each in its
// own transaction. Calling twice issues a second batch of tokens; issuance is
// not idempotent.
func (uc *releaseUseCase) IssueReleases(ctx context.Context, claimID uuid.UUID) ([]*domain.IssuedRelease, error) {
	claim, err := uc.claimGetter.GetByID(ctx, claimID)
	if err != nil {
		return nil, err
	}
	if claim.Status != claimDomain.ClaimStatusApproved {
		return nil, domain.ErrClaimNotApproved
	}

	policy, err := uc.policyGetter.GetByID(ctx, claim.PolicyID)
	if err != nil {
		return nil, err
	}

	assignments, err := uc.assignmentLister.ListByPolicy(ctx, policy.ID)
	if err != nil {
		return nil, err
	}

	seen := make(map[uuid.UUID]struct{})
	recipientIDs := make([]uuid.UUID, 0)
	for _, assignment := range assignments {
		if _, ok := seen[assignment.RecipientID]; ok {
			continue
		}
		seen[assignment.RecipientID] = struct{}{}
		recipientIDs = append(recipientIDs, assignment.RecipientID)
	}
	slices.SortFunc(recipientIDs, func(a, b uuid.UUID) int {
		return bytes.Compare(a[:], b[:])
	})

	now := time.Now().UTC()
	issued := make([]*domain.IssuedRelease, 0, len(recipientIDs))
	for _, recipientID := range recipientIDs {
		release := &domain.Release{
			ID:          uuid.Must(uuid.NewV7()),
			ClaimID:     claim.ID,
			RecipientID: recipientID,
			ExpiresAt:   now.Add(uc.window),
			CreatedAt:   now,
		}

		token, err := uc.tokenCodec.Encode(release.ID, recipientID)
		if err != nil {
			return nil, err
		}
		release.Token = token

		err = uc.txManager.WithTx(ctx, func(ctx context.Context) error {
			if err := uc.releaseRepo.Create(ctx, release); err != nil {
				return err
			}

			return uc.auditUseCase.Record(
				ctx,
				"system",
				auditDomain.ActionReleaseIssued,
				auditDomain.TargetTypeRelease,
				release.ID.String(),
				map[string]any{"recipient_id": recipientID.String()},
			)
		})
		if err != nil {
			return nil, err
		}

		issued = append(issued, &domain.IssuedRelease{
			RecipientID: recipientID,
			URL:         uc.baseURL + "/release/" + token,
			ExpiresAt:   release.ExpiresAt,
		})
	}

	return issued, nil
}

// ViewRelease redeems a release token. The token signature names a release
// row and a recipient; both must agree with the stored row, and the stored
// expiry is checked again so shortening the window takes effect on already
// minted tokens.
func (uc *releaseUseCase) ViewRelease(ctx context.Context, token string) (*domain.ReleaseView, error) {
	releaseID, recipientID, err := uc.tokenCodec.Decode(token, uc.window)
	if err != nil {
		return nil, err
	}

	release, err := uc.releaseRepo.GetByID(ctx, releaseID)
	if err != nil {
		return nil, err
	}
	if release.RecipientID != recipientID {
		return nil, domain.ErrReleaseNotFound
	}
	if time.Now().UTC().After(release.ExpiresAt) {
		return nil, domain.ErrReleaseExpired
	}

	claim, err := uc.claimGetter.GetByID(ctx, release.ClaimID)
	if err != nil {
		return nil, err
	}

	// The token's recipient, not the claim submitter, decides whose items
	// unlock. A sibling's release must never show the submitter's set.
	recipient, err := uc.recipientGetter.GetByID(ctx, recipientID)
	if err != nil {
		return nil, err
	}

	assignments, err := uc.assignmentLister.ListByPolicyAndRecipient(ctx, claim.PolicyID, recipientID)
	if err != nil {
		return nil, err
	}

	items := make([]*domain.ReleasedItem, 0, len(assignments))
	for _, assignment := range assignments {
		item, err := uc.vaultItems.GetByID(ctx, assignment.VaultItemID)
		if err != nil {
			// Items deleted after assignment simply drop out of the view.
			if apperrors.Is(err, apperrors.ErrNotFound) {
				continue
			}
			return nil, err
		}

		payload, err := uc.payloadOpener.DecryptPayload(item.EncryptedPayload)
		if err != nil {
			// An undecryptable item is withheld rather than failing the
			// whole release.
			continue
		}

		items = append(items, &domain.ReleasedItem{
			Title:      item.Title,
			Type:       item.Type,
			Payload:    payload,
			Permission: assignment.Permission,
		})
	}

	// Best effort: the view already happened, so a failed audit write must
	// not take it back.
	if err := uc.auditUseCase.Record(
		ctx,
		"recipient:"+recipient.Email,
		auditDomain.ActionReleaseViewed,
		auditDomain.TargetTypeRelease,
		release.ID.String(),
		map[string]any{"item_count": len(items)},
	); err != nil {
		uc.logger.Error("failed to record release view",
			slog.String("release_id", release.ID.String()),
			slog.Any("error", err),
		)
	}

	return &domain.ReleaseView{
		RecipientEmail: recipient.Email,
		Items:          items,
	}, nil
}
