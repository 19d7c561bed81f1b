// Package repository provides data persistence implementations for claims.
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

// PostgreSQLClaimRepository handles claim persistence for PostgreSQL.
type PostgreSQLClaimRepository struct {
	db *sql.DB
}

// NewPostgreSQLClaimRepository creates a new PostgreSQLClaimRepository.
func NewPostgreSQLClaimRepository(db *sql.DB) *PostgreSQLClaimRepository {
	return &PostgreSQLClaimRepository{
		db: db,
	}
}

// Create inserts a new claim.
func (r *PostgreSQLClaimRepository) Create(ctx context.Context, claim *domain.Claim) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO claims (id, policy_id, recipient_id, status, id_document_key, death_cert_key, reviewed_by, reviewed_at, created_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := querier.ExecContext(
		ctx,
		query,
		claim.ID,
		claim.PolicyID,
		claim.RecipientID,
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
func (r *PostgreSQLClaimRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Claim, error) {
	var claim domain.Claim
	var reviewedAt sql.NullTime
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, policy_id, recipient_id, status, id_document_key, death_cert_key, reviewed_by, reviewed_at, created_at
			  FROM claims WHERE id = $1`

	err := querier.QueryRowContext(ctx, query, id).Scan(
		&claim.ID, &claim.PolicyID, &claim.RecipientID, &claim.Status,
		&claim.IDDocumentKey, &claim.DeathCertKey, &claim.ReviewedBy,
		&reviewedAt, &claim.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrClaimNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get claim by id")
	}

	if reviewedAt.Valid {
		claim.ReviewedAt = &reviewedAt.Time
	}
	return &claim, nil
}

// UpdateReview records a review decision on a pending claim. The status guard
// in the WHERE clause makes concurrent reviews lose cleanly.
func (r *PostgreSQLClaimRepository) UpdateReview(
	ctx context.Context,
	id uuid.UUID,
	status, reviewedBy string,
	reviewedAt time.Time,
) error {
	querier := database.GetTx(ctx, r.db)

	query := `UPDATE claims SET status = $1, reviewed_by = $2, reviewed_at = $3
			  WHERE id = $4 AND status = $5`

	result, err := querier.ExecContext(ctx, query, status, reviewedBy, reviewedAt, id, domain.ClaimStatusPending)
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
