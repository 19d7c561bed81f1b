package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/lifekey/lifekey/internal/database"
	apperrors "github.com/lifekey/lifekey/internal/errors"
	"github.com/lifekey/lifekey/internal/will/domain"
)

// MySQLPolicyRepository handles will policy persistence for MySQL.
// UUIDs are stored as BINARY(16).
type MySQLPolicyRepository struct {
	db *sql.DB
}

// NewMySQLPolicyRepository creates a new MySQLPolicyRepository.
func NewMySQLPolicyRepository(db *sql.DB) *MySQLPolicyRepository {
	return &MySQLPolicyRepository{
		db: db,
	}
}

// Create inserts a new will policy.
func (r *MySQLPolicyRepository) Create(ctx context.Context, policy *domain.WillPolicy) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO will_policies (id, owner_id, name, status, dispute_window_hours, created_at)
			  VALUES (?, ?, ?, ?, ?, ?)`

	idBytes, err := policy.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal UUID")
	}
	ownerBytes, err := policy.OwnerID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal UUID")
	}

	_, err = querier.ExecContext(
		ctx,
		query,
		idBytes,
		ownerBytes,
		policy.Name,
		policy.Status,
		policy.DisputeWindowHours,
		policy.CreatedAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create will policy")
	}
	return nil
}

// GetByID retrieves a will policy by ID.
func (r *MySQLPolicyRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.WillPolicy, error) {
	var policy domain.WillPolicy
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, owner_id, name, status, dispute_window_hours, created_at
			  FROM will_policies WHERE id = ?`

	idParam, err := id.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal UUID")
	}

	var idBytes, ownerBytes []byte
	err = querier.QueryRowContext(ctx, query, idParam).Scan(
		&idBytes,
		&ownerBytes,
		&policy.Name,
		&policy.Status,
		&policy.DisputeWindowHours,
		&policy.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrPolicyNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get will policy by id")
	}

	if err := policy.ID.UnmarshalBinary(idBytes); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal UUID")
	}
	if err := policy.OwnerID.UnmarshalBinary(ownerBytes); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal UUID")
	}

	return &policy, nil
}

// ListByOwner retrieves the owner's will policies ordered by id descending
// with pagination.
func (r *MySQLPolicyRepository) ListByOwner(
	ctx context.Context,
	ownerID uuid.UUID,
	offset, limit int,
) ([]*domain.WillPolicy, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, owner_id, name, status, dispute_window_hours, created_at
			  FROM will_policies
			  WHERE owner_id = ?
			  ORDER BY id DESC
			  LIMIT ? OFFSET ?`

	ownerParam, err := ownerID.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal UUID")
	}

	rows, err := querier.QueryContext(ctx, query, ownerParam, limit, offset)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list will policies")
	}
	defer func() {
		_ = rows.Close()
	}()

	policies := make([]*domain.WillPolicy, 0)
	for rows.Next() {
		var policy domain.WillPolicy
		var idBytes, ownerBytes []byte
		err := rows.Scan(
			&idBytes,
			&ownerBytes,
			&policy.Name,
			&policy.Status,
			&policy.DisputeWindowHours,
			&policy.CreatedAt,
		)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan will policy")
		}

		if err := policy.ID.UnmarshalBinary(idBytes); err != nil {
			return nil, apperrors.Wrap(err, "failed to unmarshal UUID")
		}
		if err := policy.OwnerID.UnmarshalBinary(ownerBytes); err != nil {
			return nil, apperrors.Wrap(err, "failed to unmarshal UUID")
		}

		policies = append(policies, &policy)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate will policies")
	}

	return policies, nil
}

// UpdateStatus sets the policy status for an owner's policy.
// Returns ErrPolicyNotFound when no row matches.
func (r *MySQLPolicyRepository) UpdateStatus(ctx context.Context, id, ownerID uuid.UUID, status string) error {
	querier := database.GetTx(ctx, r.db)

	query := `UPDATE will_policies SET status = ? WHERE id = ? AND owner_id = ?`

	idParam, err := id.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal UUID")
	}
	ownerParam, err := ownerID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal UUID")
	}

	result, err := querier.ExecContext(ctx, query, status, idParam, ownerParam)
	if err != nil {
		return apperrors.Wrap(err, "failed to update will policy status")
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to check update result")
	}
	if affected == 0 {
		return domain.ErrPolicyNotFound
	}

	return nil
}
