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

// MySQLVaultItemRepository handles vault item persistence for MySQL.
// UUIDs are stored as BINARY(16).
type MySQLVaultItemRepository struct {
	db *sql.DB
}

// NewMySQLVaultItemRepository creates a new MySQLVaultItemRepository.
func NewMySQLVaultItemRepository(db *sql.DB) *MySQLVaultItemRepository {
	return &MySQLVaultItemRepository{
		db: db,
	}
}

// Create inserts a new vault item.
func (r *MySQLVaultItemRepository) Create(ctx context.Context, item *domain.VaultItem) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO vault_items (id, owner_id, title, type, encrypted_payload, created_at)
			  VALUES (?, ?, ?, ?, ?, ?)`

	idBytes, err := item.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal UUID")
	}
	ownerBytes, err := item.OwnerID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal UUID")
	}

	_, err = querier.ExecContext(
		ctx,
		query,
		idBytes,
		ownerBytes,
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
// belong to the use case layer.
func (r *MySQLVaultItemRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.VaultItem, error) {
	var item domain.VaultItem
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, owner_id, title, type, encrypted_payload, created_at
			  FROM vault_items WHERE id = ?`

	idParam, err := id.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal UUID")
	}

	var idBytes, ownerBytes []byte
	err = querier.QueryRowContext(ctx, query, idParam).Scan(
		&idBytes, &ownerBytes, &item.Title, &item.Type, &item.EncryptedPayload, &item.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrVaultItemNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get vault item by id")
	}

	if err := item.ID.UnmarshalBinary(idBytes); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal UUID")
	}
	if err := item.OwnerID.UnmarshalBinary(ownerBytes); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal UUID")
	}

	return &item, nil
}

// ListByOwner retrieves the owner's vault items ordered by id descending
// (newest first) with pagination.
func (r *MySQLVaultItemRepository) ListByOwner(
	ctx context.Context,
	ownerID uuid.UUID,
	offset, limit int,
) ([]*domain.VaultItem, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, owner_id, title, type, encrypted_payload, created_at
			  FROM vault_items
			  WHERE owner_id = ?
			  ORDER BY id DESC
			  LIMIT ? OFFSET ?`

	ownerParam, err := ownerID.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal UUID")
	}

	rows, err := querier.QueryContext(ctx, query, ownerParam, limit, offset)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list vault items")
	}
	defer func() {
		_ = rows.Close()
	}()

	items := make([]*domain.VaultItem, 0)
	for rows.Next() {
		var item domain.VaultItem
		var idBytes, ownerBytes []byte
		err := rows.Scan(
			&idBytes, &ownerBytes, &item.Title, &item.Type, &item.EncryptedPayload, &item.CreatedAt,
		)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan vault item")
		}

		if err := item.ID.UnmarshalBinary(idBytes); err != nil {
			return nil, apperrors.Wrap(err, "failed to unmarshal UUID")
		}
		if err := item.OwnerID.UnmarshalBinary(ownerBytes); err != nil {
			return nil, apperrors.Wrap(err, "failed to unmarshal UUID")
		}

		items = append(items, &item)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate vault items")
	}

	return items, nil
}

// Delete removes a vault item owned by the given owner.
// Returns ErrVaultItemNotFound when no row matches.
func (r *MySQLVaultItemRepository) Delete(ctx context.Context, id, ownerID uuid.UUID) error {
	querier := database.GetTx(ctx, r.db)

	query := `DELETE FROM vault_items WHERE id = ? AND owner_id = ?`

	idParam, err := id.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal UUID")
	}
	ownerParam, err := ownerID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal UUID")
	}

	result, err := querier.ExecContext(ctx, query, idParam, ownerParam)
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
