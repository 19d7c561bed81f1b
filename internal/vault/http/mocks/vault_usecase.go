// Package mocks provides mock implementations for testing HTTP handlers.
package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/lifekey/lifekey/internal/vault/domain"
	vaultUseCase "github.com/lifekey/lifekey/internal/vault/usecase"
)

// MockVaultUseCase is a mock implementation of VaultUseCase for testing.
type MockVaultUseCase struct {
	mock.Mock
}

// CreateItem mocks the CreateItem method of VaultUseCase.
func (m *MockVaultUseCase) CreateItem(
	ctx context.Context,
	ownerID uuid.UUID,
	input *vaultUseCase.CreateItemInput,
) (*domain.VaultItem, error) {
	args := m.Called(ctx, ownerID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.VaultItem), args.Error(1)
}

// ListItems mocks the ListItems method of VaultUseCase.
func (m *MockVaultUseCase) ListItems(
	ctx context.Context,
	ownerID uuid.UUID,
	offset, limit int,
) ([]*domain.VaultItem, error) {
	args := m.Called(ctx, ownerID, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.VaultItem), args.Error(1)
}

// GetItem mocks the GetItem method of VaultUseCase.
func (m *MockVaultUseCase) GetItem(
	ctx context.Context,
	ownerID, itemID uuid.UUID,
) (*domain.VaultItem, error) {
	args := m.Called(ctx, ownerID, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.VaultItem), args.Error(1)
}

// DeleteItem mocks the DeleteItem method of VaultUseCase.
func (m *MockVaultUseCase) DeleteItem(ctx context.Context, ownerID, itemID uuid.UUID) error {
	args := m.Called(ctx, ownerID, itemID)
	return args.Error(0)
}
