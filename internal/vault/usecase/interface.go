// Package usecase implements the owner-facing business logic for vault items.
package usecase

import (
	"context"

	"github.com/google/uuid"

	"github.com/lifekey/lifekey/internal/vault/domain"
)

// CreateItemInput contains the input data for creating a vault item.
type CreateItemInput struct {
	Title   string
	Type    string
	Payload map[string]any
}

// VaultItemRepository defines persistence operations for vault items.
type VaultItemRepository interface {
	Create(ctx context.Context, item *domain.VaultItem) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.VaultItem, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID, offset, limit int) ([]*domain.VaultItem, error)
	Delete(ctx context.Context, id, ownerID uuid.UUID) error
}

// VaultUseCase defines owner-scoped vault item operations. The payload is
// sealed before it reaches the repository and owners never read it back
// through this interface; decryption happens only during release viewing.
type VaultUseCase interface {
	// CreateItem seals the payload and stores a new vault item.
	CreateItem(ctx context.Context, ownerID uuid.UUID, input *CreateItemInput) (*domain.VaultItem, error)

	// ListItems retrieves the owner's vault items, newest first.
	ListItems(ctx context.Context, ownerID uuid.UUID, offset, limit int) ([]*domain.VaultItem, error)

	// GetItem retrieves a single vault item owned by the caller.
	// Returns ErrVaultItemNotFound for other owners' items.
	GetItem(ctx context.Context, ownerID, itemID uuid.UUID) (*domain.VaultItem, error)

	// DeleteItem removes a vault item owned by the caller.
	DeleteItem(ctx context.Context, ownerID, itemID uuid.UUID) error
}
