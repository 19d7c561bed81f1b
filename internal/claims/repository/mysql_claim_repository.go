package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/lifekey/lifekey/internal/claims/domain"
	"github.com/lifekey/lifekey/internal/database"
	apperrors "github.com/lifekey/lifekey/internal/errors"
)

// MySQLClaimRepository handles claim persistence for MySQL.
// UUIDs are stored as BINARY(16).
type MySQLClaimRepository struct {
	db *sql.DB
}

// NewMySQLClaimRepository creates a new MySQLClaimRepository.
func NewMySQLClaimRepository(db *sql.DB) *MySQLClaimRepository {
	return &MySQLClaimRepository{
		db: db,
	}
}

// Create inserts a new claim.
func (r *MySQLClaimRepository) Create(ctx context.Context, claim *domain.Claim) error {
	querier := database.GetTx(ctx, r.db)

	idBytes, err := claim.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal claim id")
	}
	policyBytes, err := claim.PolicyID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal policy id")
	}
	recipientBytes, err := claim.RecipientID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal recipient id")
	}

	query := `INSERT INTO claims (id, policy_id, recipient_id, status, id_document_key, death_cert_key, reviewed_by, reviewed_at, created_at)
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err = querier.ExecContext(
		ctx,
		query,
		idBytes,
		policyBytes,
		recipientBytes,
		claim.Status,
		claim.IDDocumentKey,
		claim.DeathCertKey,
		claim.ReviewedBy,
		claim.ReviewedAt,
		claim.CreatedAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create claim")
	}
	return nil
}

// GetByID retrieves a claim by ID.
func (r *MySQLClaimRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Claim, error) {
	var claim domain.Claim
	var idBytes, policyBytes, recipientBytes []byte
	var reviewedAt sql.NullTime
	querier := database.GetTx(ctx, r.db)

	queryID, err := id.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal claim id")
	}

	query := `SELECT id, policy_id, recipient_id, status, id_document_key, death_cert_key, reviewed_by, reviewed_at, created_at
			  FROM claims WHERE id = ?`

	err = querier.QueryRowContext(ctx, query, queryID).Scan(
		&idBytes, &policyBytes, &recipientBytes, &claim.Status,
		&claim.IDDocumentKey, &claim.DeathCertKey, &claim.ReviewedBy,
		&reviewedAt, &claim.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrClaimNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get claim by id")
	}

	if claim.ID, err = uuid.FromBytes(idBytes); err != nil {
		return nil, apperrors.Wrap(err, "failed to parse claim id")
	}
	if claim.PolicyID, err = uuid.FromBytes(policyBytes); err != nil {
		return nil, apperrors.Wrap(err, "failed to parse policy id")
	}
	if claim.RecipientID, err = uuid.FromBytes(recipientBytes); err != nil {
		return nil, apperrors.Wrap(err, "failed to parse recipient id")
	}
	if reviewedAt.Valid {
		claim.ReviewedAt = &reviewedAt.Time
	}
	return &claim, nil
}

// UpdateReview records a review decision on a pending claim.
func (r *MySQLClaimRepository) UpdateReview(
	ctx context.Context,
	id uuid.UUID,
	status, reviewedBy string,
	reviewedAt time.Time,
) error {
	querier := database.GetTx(ctx, r.db)

	idBytes, err := id.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal claim id")
	}

	query := `UPDATE claims SET status = ?, reviewed_by = ?, reviewed_at = ?
			  WHERE id = ? AND status = ?`

	result, err := querier.ExecContext(ctx, query, status, reviewedBy, reviewedAt, idBytes, domain.ClaimStatusPending)
	if err != nil {
		return apperrors.Wrap(err, "failed to update claim review")
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to check update result")
	}
	if affected == 0 {
		return domain.ErrClaimNotPending
	}

	return nil
}
