// Package repository provides data persistence implementations for releases.
package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/lifekey/lifekey/internal/database"
	apperrors "github.com/lifekey/lifekey/internal/errors"
	"github.com/lifekey/lifekey/internal/release/domain"
)

// PostgreSQLReleaseRepository handles release persistence for PostgreSQL.
type PostgreSQLReleaseRepository struct {
	db *sql.DB
}

// NewPostgreSQLReleaseRepository creates a new PostgreSQLReleaseRepository.
func NewPostgreSQLReleaseRepository(db *sql.DB) *PostgreSQLReleaseRepository {
	return &PostgreSQLReleaseRepository{
		db: db,
	}
}

// Create inserts a new release.
func (r *PostgreSQLReleaseRepository) Create(ctx context.Context, release *domain.Release) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO releases (id, claim_id, recipient_id, token, expires_at, created_at)
			  VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := querier.ExecContext(
		ctx,
		query,
		release.ID,
		release.ClaimID,
		release.RecipientID,
		release.Token,
		release.ExpiresAt,
		release.CreatedAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create release")
	}
	return nil
}

// GetByID retrieves a release by ID.
func (r *PostgreSQLReleaseRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Release, error) {
	var release domain.Release
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, claim_id, recipient_id, token, expires_at, created_at
			  FROM releases WHERE id = $1`

	err := querier.QueryRowContext(ctx, query, id).Scan(
		&release.ID, &release.ClaimID, &release.RecipientID,
		&release.Token, &release.ExpiresAt, &release.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrReleaseNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get release by id")
	}

	return &release, nil
}
