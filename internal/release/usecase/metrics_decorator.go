package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/lifekey/lifekey/internal/metrics"
	"github.com/lifekey/lifekey/internal/release/domain"
)

// releaseUseCaseWithMetrics decorates ReleaseUseCase with metrics instrumentation.
type releaseUseCaseWithMetrics struct {
	next    ReleaseUseCase
	metrics metrics.BusinessMetrics
}

// NewReleaseUseCaseWithMetrics wraps a ReleaseUseCase with metrics recording.
func NewReleaseUseCaseWithMetrics(useCase ReleaseUseCase, m metrics.BusinessMetrics) ReleaseUseCase {
	return &releaseUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// IssueReleases records metrics for release issuance.
func (r *releaseUseCaseWithMetrics) IssueReleases(
	ctx context.Context,
	claimID uuid.UUID,
) ([]*domain.IssuedRelease, error) {
	start := time.Now()
	issued, err := r.next.IssueReleases(ctx, claimID)

	status := "success"
	if err != nil {
		status = "error"
	}

	r.metrics.RecordOperation(ctx, "release", "release_issue", status)
	r.metrics.RecordDuration(ctx, "release", "release_issue", time.Since(start), status)

	return issued, err
}

// ViewRelease records metrics for release redemption.
func (r *releaseUseCaseWithMetrics) ViewRelease(ctx context.Context, token string) (*domain.ReleaseView, error) {
	start := time.Now()
	view, err := r.next.ViewRelease(ctx, token)

	status := "success"
	if err != nil {
		status = "error"
	}

	r.metrics.RecordOperation(ctx, "release", "release_view", status)
	r.metrics.RecordDuration(ctx, "release", "release_view", time.Since(start), status)

	return view, err
}
