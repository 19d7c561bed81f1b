package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/lifekey/lifekey/internal/database"
	apperrors "github.com/lifekey/lifekey/internal/errors"
	"github.com/lifekey/lifekey/internal/will/domain"
)

// PostgreSQLAssignmentRepository handles will assignment persistence for PostgreSQL.
type PostgreSQLAssignmentRepository struct {
	db *sql.DB
}

// NewPostgreSQLAssignmentRepository creates a new PostgreSQLAssignmentRepository.
func NewPostgreSQLAssignmentRepository(db *sql.DB) *PostgreSQLAssignmentRepository {
	return &PostgreSQLAssignmentRepository{
		db: db,
	}
}

// Create inserts a new will assignment.
func (r *PostgreSQLAssignmentRepository) Create(ctx context.Context, assignment *domain.WillAssignment) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO will_assignments (id, policy_id, vault_item_id, recipient_id, permission, created_at)
			  VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := querier.ExecContext(
		ctx,
		query,
		assignment.ID,
		assignment.PolicyID,
		assignment.VaultItemID,
		assignment.RecipientID,
		assignment.Permission,
		assignment.CreatedAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create will assignment")
	}
	return nil
}

// ListByPolicy retrieves all assignments under a policy ordered by id.
func (r *PostgreSQLAssignmentRepository) ListByPolicy(
	ctx context.Context,
	policyID uuid.UUID,
) ([]*domain.WillAssignment, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, policy_id, vault_item_id, recipient_id, permission, created_at
			  FROM will_assignments
			  WHERE policy_id = $1
			  ORDER BY id`

	return r.scanAssignments(querier.QueryContext(ctx, query, policyID))
}

// ListByPolicyAndRecipient retrieves the assignments under a policy that
// target one recipient, ordered by id.
func (r *PostgreSQLAssignmentRepository) ListByPolicyAndRecipient(
	ctx context.Context,
	policyID, recipientID uuid.UUID,
) ([]*domain.WillAssignment, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, policy_id, vault_item_id, recipient_id, permission, created_at
			  FROM will_assignments
			  WHERE policy_id = $1 AND recipient_id = $2
			  ORDER BY id`

	return r.scanAssignments(querier.QueryContext(ctx, query, policyID, recipientID))
}

func (r *PostgreSQLAssignmentRepository) scanAssignments(
	rows *sql.Rows,
	queryErr error,
) ([]*domain.WillAssignment, error) {
	if queryErr != nil {
		return nil, apperrors.Wrap(queryErr, "failed to list will assignments")
	}
	defer func() {
		_ = rows.Close()
	}()

	assignments := make([]*domain.WillAssignment, 0)
	for rows.Next() {
		var assignment domain.WillAssignment
		err := rows.Scan(
			&assignment.ID,
			&assignment.PolicyID,
			&assignment.VaultItemID,
			&assignment.RecipientID,
			&assignment.Permission,
			&assignment.CreatedAt,
		)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan will assignment")
		}
		assignments = append(assignments, &assignment)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate will assignments")
	}

	return assignments, nil
}
