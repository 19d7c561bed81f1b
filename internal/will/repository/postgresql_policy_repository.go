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

// PostgreSQLPolicyRepository handles will policy persistence for PostgreSQL.
type PostgreSQLPolicyRepository struct {
	db *sql.DB
}

// NewPostgreSQLPolicyRepository creates a new PostgreSQLPolicyRepository.
func NewPostgreSQLPolicyRepository(db *sql.DB) *PostgreSQLPolicyRepository {
	return &PostgreSQLPolicyRepository{
		db: db,
	}
}

// Create inserts a new will policy.
func (r *PostgreSQLPolicyRepository) Create(ctx context.Context, policy *domain.WillPolicy) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO will_policies (id, owner_id, name, status, dispute_window_hours, created_at)
			  VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := querier.ExecContext(
		ctx,
		query,
		policy.ID,
		policy.OwnerID,
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
func (r *PostgreSQLPolicyRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.WillPolicy, error) {
	var policy domain.WillPolicy
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, owner_id, name, status, dispute_window_hours, created_at
			  FROM will_policies WHERE id = $1`

	err := querier.QueryRowContext(ctx, query, id).Scan(
		&policy.ID,
		&policy.OwnerID,
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

	return &policy, nil
}

// ListByOwner retrieves the owner's will policies ordered by id descending
// with pagination.
func (r *PostgreSQLPolicyRepository) ListByOwner(
	ctx context.Context,
	ownerID uuid.UUID,
	offset, limit int,
) ([]*domain.WillPolicy, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, owner_id, name, status, dispute_window_hours, created_at
			  FROM will_policies
			  WHERE owner_id = $1
			  ORDER BY id DESC
			  LIMIT $2 OFFSET $3`

	rows, err := querier.QueryContext(ctx, query, ownerID, limit, offset)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list will policies")
	}
	defer func() {
		_ = rows.Close()
	}()

	policies := make([]*domain.WillPolicy, 0)
	for rows.Next() {
		var policy domain.WillPolicy
		err := rows.Scan(
			&policy.ID,
			&policy.OwnerID,
			&policy.Name,
			&policy.Status,
			&policy.DisputeWindowHours,
			&policy.CreatedAt,
		)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan will policy")
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
func (r *PostgreSQLPolicyRepository) UpdateStatus(ctx context.Context, id, ownerID uuid.UUID, status string) error {
	querier := database.GetTx(ctx, r.db)

	query := `UPDATE will_policies SET status = $1 WHERE id = $2 AND owner_id = $3`

	result, err := querier.ExecContext(ctx, query, status, id, ownerID)
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
