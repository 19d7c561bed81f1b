// Package mocks provides mock implementations for testing HTTP handlers.
package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/lifekey/lifekey/internal/claims/domain"
	"github.com/lifekey/lifekey/internal/claims/usecase"
)

// MockClaimUseCase is a mock implementation of usecase.ClaimUseCase.
type MockClaimUseCase struct {
	mock.Mock
}

func (m *MockClaimUseCase) SubmitClaim(ctx context.Context, input *usecase.SubmitClaimInput) (*domain.Claim, error) {
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
