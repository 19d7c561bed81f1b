package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/lifekey/lifekey/internal/claims/domain"
	"github.com/lifekey/lifekey/internal/metrics"
)

// claimUseCaseWithMetrics decorates ClaimUseCase with metrics instrumentation.
type claimUseCaseWithMetrics struct {
	next    ClaimUseCase
	metrics metrics.BusinessMetrics
}

// NewClaimUseCaseWithMetrics wraps a ClaimUseCase with metrics recording.
func NewClaimUseCaseWithMetrics(useCase ClaimUseCase, m metrics.BusinessMetrics) ClaimUseCase {
	return &claimUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// SubmitClaim records metrics for claim submissions.
func (c *claimUseCaseWithMetrics) SubmitClaim(
	ctx context.Context,
	input *SubmitClaimInput,
) (*domain.Claim, error) {
	start := time.Now()
	claim, err := c.next.SubmitClaim(ctx, input)

	status := "success"
	if err != nil {
		status = "error"
	}

	c.metrics.RecordOperation(ctx, "claims", "claim_submit", status)
	c.metrics.RecordDuration(ctx, "claims", "claim_submit", time.Since(start), status)

	return claim, err
}

// GetClaim records metrics for claim retrieval.
func (c *claimUseCaseWithMetrics) GetClaim(ctx context.Context, claimID uuid.UUID) (*domain.Claim, error) {
	start := time.Now()
	claim, err := c.next.GetClaim(ctx, claimID)

	status := "success"
	if err != nil {
		status = "error"
	}

	c.metrics.RecordOperation(ctx, "claims", "claim_get", status)
	c.metrics.RecordDuration(ctx, "claims", "claim_get", time.Since(start), status)

	return claim, err
}

// ApproveClaim records metrics for claim approvals.
func (c *claimUseCaseWithMetrics) ApproveClaim(
	ctx context.Context,
	claimID uuid.UUID,
	reviewer string,
) (*domain.Claim, error) {
	start := time.Now()
	claim, err := c.next.ApproveClaim(ctx, claimID, reviewer)

	status := "success"
	if err != nil {
		status = "error"
	}

	c.metrics.RecordOperation(ctx, "claims", "claim_approve", status)
	c.metrics.RecordDuration(ctx, "claims", "claim_approve", time.Since(start), status)

	return claim, err
}

// DenyClaim records metrics for claim denials.
func (c *claimUseCaseWithMetrics) DenyClaim(
	ctx context.Context,
	claimID uuid.UUID,
	reviewer string,
) (*domain.Claim, error) {
	start := time.Now()
	claim, err := c.next.DenyClaim(ctx, claimID, reviewer)

	status := "success"
	if err != nil {
		status = "error"
	}

	c.metrics.RecordOperation(ctx, "claims", "claim_deny", status)
	c.metrics.RecordDuration(ctx, "claims", "claim_deny", time.Since(start), status)

	return claim, err
}
