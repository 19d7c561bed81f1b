// Package mocks provides mock implementations for testing HTTP handlers.
package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/lifekey/lifekey/internal/release/domain"
)

// MockReleaseUseCase is a mock implementation of usecase.ReleaseUseCase.
type MockReleaseUseCase struct {
	mock.Mock
}

func (m *MockReleaseUseCase) IssueReleases(ctx context.Context, claimID uuid.UUID) ([]*domain.IssuedRelease, error) {
	args := m.Called(ctx, claimID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.IssuedRelease), args.Error(1)
}

func (m *MockReleaseUseCase) ViewRelease(ctx context.Context, token string) (*domain.ReleaseView, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ReleaseView), args.Error(1)
}
