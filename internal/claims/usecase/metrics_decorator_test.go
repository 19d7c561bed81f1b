package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/lifekey/lifekey/internal/claims/domain"
	"github.com/lifekey/lifekey/internal/metrics"
)

// MockClaimUseCase is a mock implementation of ClaimUseCase.
type MockClaimUseCase struct {
	mock.Mock
}

func (m *MockClaimUseCase) SubmitClaim(ctx context.Context, input *SubmitClaimInput) (*domain.Claim, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Claim), args.Error(1)
}

func (m *MockClaimUseCase) GetClaim(ctx context.Context, claimID uuid.UUID) (*domain.Claim, error) {
	args := m.Called(ctx, claimID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Claim), args.Error(1)
}

func (m *MockClaimUseCase) ApproveClaim(ctx context.Context, claimID uuid.UUID, reviewer string) (*domain.Claim, error) {
	args := m.Called(ctx, claimID, reviewer)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Claim), args.Error(1)
}

func (m *MockClaimUseCase) DenyClaim(ctx context.Context, claimID uuid.UUID, reviewer string) (*domain.Claim, error) {
	args := m.Called(ctx, claimID, reviewer)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Claim), args.Error(1)
}

// MockBusinessMetrics is a mock implementation of metrics.BusinessMetrics.
type MockBusinessMetrics struct {
	mock.Mock
}

func (m *MockBusinessMetrics) RecordOperation(ctx context.Context, domain, operation, status string) {
	m.Called(ctx, domain, operation, status)
}

func (m *MockBusinessMetrics) RecordDuration(
	ctx context.Context,
	domain, operation string,
	duration time.Duration,
	status string,
) {
	m.Called(ctx, domain, operation, duration, status)
}

var _ metrics.BusinessMetrics = (*MockBusinessMetrics)(nil)

func TestClaimMetricsDecorator_SubmitClaim(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		next := new(MockClaimUseCase)
		businessMetrics := new(MockBusinessMetrics)

		input := submitInput(uuid.Must(uuid.NewV7()))
		claim := &domain.Claim{ID: uuid.Must(uuid.NewV7()), Status: domain.ClaimStatusPending}

		next.On("SubmitClaim", ctx, input).Return(claim, nil).Once()
		businessMetrics.On("RecordOperation", ctx, "claims", "claim_submit", "success").Once()
		businessMetrics.On("RecordDuration", ctx, "claims", "claim_submit", mock.AnythingOfType("time.Duration"), "success").Once()

		decorator := NewClaimUseCaseWithMetrics(next, businessMetrics)
		result, err := decorator.SubmitClaim(ctx, input)

		assert.NoError(t, err)
		assert.Equal(t, claim, result)
		next.AssertExpectations(t)
		businessMetrics.AssertExpectations(t)
	})

	t.Run("Error", func(t *testing.T) {
		next := new(MockClaimUseCase)
		businessMetrics := new(MockBusinessMetrics)

		input := submitInput(uuid.Must(uuid.NewV7()))

		next.On("SubmitClaim", ctx, input).Return(nil, domain.ErrIdentityMismatch).Once()
		businessMetrics.On("RecordOperation", ctx, "claims", "claim_submit", "error").Once()
		businessMetrics.On("RecordDuration", ctx, "claims", "claim_submit", mock.AnythingOfType("time.Duration"), "error").Once()

		decorator := NewClaimUseCaseWithMetrics(next, businessMetrics)
		result, err := decorator.SubmitClaim(ctx, input)

		assert.ErrorIs(t, err, domain.ErrIdentityMismatch)
		assert.Nil(t, result)
		businessMetrics.AssertExpectations(t)
	})
}

func TestClaimMetricsDecorator_ApproveClaim(t *testing.T) {
	ctx := context.Background()

	next := new(MockClaimUseCase)
	businessMetrics := new(MockBusinessMetrics)

	claimID := uuid.Must(uuid.NewV7())
	claim := &domain.Claim{ID: claimID, Status: domain.ClaimStatusApproved}

	next.On("ApproveClaim", ctx, claimID, "admin:root@example.com").Return(claim, nil).Once()
	businessMetrics.On("RecordOperation", ctx, "claims", "claim_approve", "success").Once()
	businessMetrics.On("RecordDuration", ctx, "claims", "claim_approve", mock.AnythingOfType("time.Duration"), "success").Once()

	decorator := NewClaimUseCaseWithMetrics(next, businessMetrics)
	result, err := decorator.ApproveClaim(ctx, claimID, "admin:root@example.com")

	assert.NoError(t, err)
	assert.Equal(t, claim, result)
	businessMetrics.AssertExpectations(t)
}
