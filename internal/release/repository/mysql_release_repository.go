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

// MySQLReleaseRepository handles release persistence for MySQL.
// UUIDs are stored as BINARY(16).
type MySQLReleaseRepository struct {
	db *sql.DB
}

// NewMySQLReleaseRepository creates a new MySQLReleaseRepository.
func NewMySQLReleaseRepository(db *sql.DB) *MySQLReleaseRepository {
	return &MySQLReleaseRepository{
		db: db,
	}
}

// Create inserts a new release.
func (r *MySQLReleaseRepository) Create(ctx context.Context, release *domain.Release) error {
	querier := database.GetTx(ctx, r.db)

	idBytes, err := release.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal release id")
	}
	claimBytes, err := release.ClaimID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal claim id")
	}
	recipientBytes, err := release.RecipientID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal recipient id")
	}

	query := `INSERT INTO releases (id, claim_id, recipient_id, token, expires_at, created_at)
			  VALUES (?, ?, ?, ?, ?, ?)`

	_, err = querier.ExecContext(
		ctx,
		query,
		idBytes,
		claimBytes,
		recipientBytes,
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
func (r *MySQLReleaseRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Release, error) {
	var release domain.Release
	var idBytes, claimBytes, recipientBytes []byte
	querier := database.GetTx(ctx, r.db)

	queryID, err := id.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal release id")
	}

	query := `SELECT id, claim_id, recipient_id, token, expires_at, created_at
			  FROM releases WHERE id = ?`

	err = querier.QueryRowContext(ctx, query, queryID).Scan(
		&idBytes, &claimBytes, &recipientBytes,
		&release.Token, &release.ExpiresAt, &release.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrReleaseNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get release by id")
	}

	if release.ID, err = uuid.FromBytes(idBytes); err != nil {
		return nil, apperrors.Wrap(err, "failed to parse release id")
	}
	if release.ClaimID, err = uuid.FromBytes(claimBytes); err != nil {
		return nil, apperrors.Wrap(err, "failed to parse claim id")
	}
	if release.RecipientID, err = uuid.FromBytes(recipientBytes); err != nil {
		return nil, apperrors.Wrap(err, "failed to parse recipient id")
	}

	return &release, nil
}
