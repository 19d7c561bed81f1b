// Package repository provides data persistence implementations for vault items.
package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/lifekey/lifekey/internal/database"
	apperrors "github.com/lifekey/lifekey/internal/errors"
	"github.com/lifekey/lifekey/internal/vault/domain"
)

// PostgreSQLVaultItemRepository handles vault item persistence for PostgreSQL.
type PostgreSQLVaultItemRepository struct {
	db *sql.DB
}

// NewPostgreSQLVaultItemRepository creates a new PostgreSQLVaultItemRepository.
func NewPostgreSQLVaultItemRepository(db *sql.DB) *PostgreSQLVaultItemRepository {
	return &PostgreSQLVaultItemRepository{
		db: db,
	}
}

// Create inserts a new vault item.
func (r *PostgreSQLVaultItemRepository) Create(ctx context.Context, item *domain.VaultItem) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO vault_items (id, owner_id, title, type, encrypted_payload, created_at)
			  VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := querier.ExecContext(
		ctx,
		query,
		item.ID,
		item.OwnerID,
		item.Title,
		item.Type,
		item.EncryptedPayload,
		item.CreatedAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create vault item")
	}
	return nil
}

// GetByID retrieves a vault item by ID regardless of owner. Ownership checks
// belong to the use case layer; release redemption reads items on behalf of
// recipients.
func (r *PostgreSQLVaultItemRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.VaultItem, error) {
	var item domain.VaultItem
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, owner_id, title, type, encrypted_payload, created_at
			  FROM vault_items WHERE id = $1`

	err := querier.QueryRowContext(ctx, query, id).Scan(
		&item.ID, &item.OwnerID, &item.Title, &item.Type, &item.EncryptedPayload, &item.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrVaultItemNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get vault item by id")
	}

	return &item, nil
}

// ListByOwner retrieves the owner's vault items ordered by id descending
// (newest first) with pagination.
func (r *PostgreSQLVaultItemRepository) ListByOwner(
	ctx context.Context,
	ownerID uuid.UUID,
	offset, limit int,
) ([]*domain.VaultItem, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, owner_id, title, type, encrypted_payload, created_at
			  FROM vault_items
			  WHERE owner_id = $1
			  ORDER BY id DESC
			  LIMIT $2 OFFSET $3`

	rows, err := querier.QueryContext(ctx, query, ownerID, limit, offset)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list vault items")
	}
	defer func() {
		_ = rows.Close()
	}()

	items := make([]*domain.VaultItem, 0)
	for rows.Next() {
		var item domain.VaultItem
		err := rows.Scan(
			&item.ID, &item.OwnerID, &item.Title, &item.Type, &item.EncryptedPayload, &item.CreatedAt,
		)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan vault item")
		}
		items = append(items, &item)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate vault items")
	}

	return items, nil
}

// Delete removes a vault item owned by the given owner.
// Returns ErrVaultItemNotFound when no row matches, so callers cannot delete
// other owners' items.
func (r *PostgreSQLVaultItemRepository) Delete(ctx context.Context, id, ownerID uuid.UUID) error {
	querier := database.GetTx(ctx, r.db)

	query := `DELETE FROM vault_items WHERE id = $1 AND owner_id = $2`

	result, err := querier.ExecContext(ctx, query, id, ownerID)
	if err != nil {
		return apperrors.Wrap(err, "failed to delete vault item")
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to check delete result")
	}
	if affected == 0 {
		return domain.ErrVaultItemNotFound
	}

	return nil
}
