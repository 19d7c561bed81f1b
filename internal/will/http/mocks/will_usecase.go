// Package mocks provides mock implementations for testing HTTP handlers.
package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/lifekey/lifekey/internal/will/domain"
	"github.com/lifekey/lifekey/internal/will/usecase"
)

// MockWillUseCase is a mock implementation of usecase.WillUseCase.
type MockWillUseCase struct {
	mock.Mock
}

func (m *MockWillUseCase) AddRecipient(ctx context.Context, ownerID uuid.UUID, input *usecase.AddRecipientInput) (*domain.Recipient, error) {
	args := m.Called(ctx, ownerID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Recipient), args.Error(1)
}

func (m *MockWillUseCase) ListRecipients(ctx context.Context, ownerID uuid.UUID, offset, limit int) ([]*domain.Recipient, error) {
	args := m.Called(ctx, ownerID, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Recipient), args.Error(1)
}

func (m *MockWillUseCase) CreatePolicy(ctx context.Context, ownerID uuid.UUID, input *usecase.CreatePolicyInput) (*domain.WillPolicy, error) {
	args := m.Called(ctx, ownerID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WillPolicy), args.Error(1)
}

func (m *MockWillUseCase) ListPolicies(ctx context.Context, ownerID uuid.UUID, offset, limit int) ([]*domain.WillPolicy, error) {
	args := m.Called(ctx, ownerID, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.WillPolicy), args.Error(1)
}

func (m *MockWillUseCase) UpdatePolicyStatus(ctx context.Context, ownerID, policyID uuid.UUID, status string) error {
	args := m.Called(ctx, ownerID, policyID, status)
	return args.Error(0)
}

func (m *MockWillUseCase) CreateAssignment(ctx context.Context, ownerID uuid.UUID, input *usecase.CreateAssignmentInput) (*domain.WillAssignment, error) {
	args := m.Called(ctx, ownerID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WillAssignment), args.Error(1)
}

func (m *MockWillUseCase) ListAssignments(ctx context.Context, ownerID, policyID uuid.UUID) ([]*domain.WillAssignment, error) {
	args := m.Called(ctx, ownerID, policyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.WillAssignment), args.Error(1)
}
