package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/lifekey/lifekey/internal/database"
	apperrors "github.com/lifekey/lifekey/internal/errors"
	"github.com/lifekey/lifekey/internal/will/domain"
)

// MySQLAssignmentRepository handles will assignment persistence for MySQL.
// UUIDs are stored as BINARY(16).
type MySQLAssignmentRepository struct {
	db *sql.DB
}

// NewMySQLAssignmentRepository creates a new MySQLAssignmentRepository.
func NewMySQLAssignmentRepository(db *sql.DB) *MySQLAssignmentRepository {
	return &MySQLAssignmentRepository{
		db: db,
	}
}

// Create inserts a new will assignment.
func (r *MySQLAssignmentRepository) Create(ctx context.Context, assignment *domain.WillAssignment) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO will_assignments (id, policy_id, vault_item_id, recipient_id, permission, created_at)
			  VALUES (?, ?, ?, ?, ?, ?)`

	idBytes, err := assignment.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal UUID")
	}
	policyBytes, err := assignment.PolicyID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal UUID")
	}
	itemBytes, err := assignment.VaultItemID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal UUID")
	}
	recipientBytes, err := assignment.RecipientID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal UUID")
	}

	_, err = querier.ExecContext(
		ctx,
		query,
		idBytes,
		policyBytes,
		itemBytes,
		recipientBytes,
		assignment.Permission,
		assignment.CreatedAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create will assignment")
	}
	return nil
}

// ListByPolicy retrieves all assignments under a policy ordered by id.
func (r *MySQLAssignmentRepository) ListByPolicy(
	ctx context.Context,
	policyID uuid.UUID,
) ([]*domain.WillAssignment, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, policy_id, vault_item_id, recipient_id, permission, created_at
			  FROM will_assignments
			  WHERE policy_id = ?
			  ORDER BY id`

	policyParam, err := policyID.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal UUID")
	}

	return r.scanAssignments(querier.QueryContext(ctx, query, policyParam))
}

// ListByPolicyAndRecipient retrieves the assignments under a policy that
// target one recipient, ordered by id.
func (r *MySQLAssignmentRepository) ListByPolicyAndRecipient(
	ctx context.Context,
	policyID, recipientID uuid.UUID,
) ([]*domain.WillAssignment, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, policy_id, vault_item_id, recipient_id, permission, created_at
			  FROM will_assignments
			  WHERE policy_id = ? AND recipient_id = ?
			  ORDER BY id`

	policyParam, err := policyID.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal UUID")
	}
	recipientParam, err := recipientID.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal UUID")
	}

	return r.scanAssignments(querier.QueryContext(ctx, query, policyParam, recipientParam))
}

func (r *MySQLAssignmentRepository) scanAssignments(
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
		var idBytes, policyBytes, itemBytes, recipientBytes []byte
		err := rows.Scan(
			&idBytes,
			&policyBytes,
			&itemBytes,
			&recipientBytes,
			&assignment.Permission,
			&assignment.CreatedAt,
		)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan will assignment")
		}

		if err := assignment.ID.UnmarshalBinary(idBytes); err != nil {
			return nil, apperrors.Wrap(err, "failed to unmarshal UUID")
		}
		if err := assignment.PolicyID.UnmarshalBinary(policyBytes); err != nil {
			return nil, apperrors.Wrap(err, "failed to unmarshal UUID")
		}
		if err := assignment.VaultItemID.UnmarshalBinary(itemBytes); err != nil {
			return nil, apperrors.Wrap(err, "failed to unmarshal UUID")
		}
		if err := assignment.RecipientID.UnmarshalBinary(recipientBytes); err != nil {
			return nil, apperrors.Wrap(err, "failed to unmarshal UUID")
		}

		assignments = append(assignments, &assignment)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate will assignments")
	}

	return assignments, nil
}
