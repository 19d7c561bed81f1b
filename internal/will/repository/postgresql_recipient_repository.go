// Package repository provides data persistence implementations for wills:
// recipients, policies, and assignments for both PostgreSQL and MySQL.
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

// PostgreSQLRecipientRepository handles recipient persistence for PostgreSQL.
type PostgreSQLRecipientRepository struct {
	db *sql.DB
}

// NewPostgreSQLRecipientRepository creates a new PostgreSQLRecipientRepository.
func NewPostgreSQLRecipientRepository(db *sql.DB) *PostgreSQLRecipientRepository {
	return &PostgreSQLRecipientRepository{
		db: db,
	}
}

// Create inserts a new recipient.
func (r *PostgreSQLRecipientRepository) Create(ctx context.Context, recipient *domain.Recipient) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO recipients (id, owner_id, email, legal_name, date_of_birth, relationship, created_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := querier.ExecContext(
		ctx,
		query,
		recipient.ID,
		recipient.OwnerID,
		recipient.Email,
		recipient.LegalName,
		recipient.DateOfBirth,
		recipient.Relationship,
		recipient.CreatedAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create recipient")
	}
	return nil
}

// GetByID retrieves a recipient by ID.
func (r *PostgreSQLRecipientRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Recipient, error) {
	var recipient domain.Recipient
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, owner_id, email, legal_name, date_of_birth, relationship, created_at
			  FROM recipients WHERE id = $1`

	err := querier.QueryRowContext(ctx, query, id).Scan(
		&recipient.ID,
		&recipient.OwnerID,
		&recipient.Email,
		&recipient.LegalName,
		&recipient.DateOfBirth,
		&recipient.Relationship,
		&recipient.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrRecipientNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get recipient by id")
	}

	return &recipient, nil
}

// ListByOwner retrieves the owner's recipients ordered by id descending with
// pagination.
func (r *PostgreSQLRecipientRepository) ListByOwner(
	ctx context.Context,
	ownerID uuid.UUID,
	offset, limit int,
) ([]*domain.Recipient, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, owner_id, email, legal_name, date_of_birth, relationship, created_at
			  FROM recipients
			  WHERE owner_id = $1
			  ORDER BY id DESC
			  LIMIT $2 OFFSET $3`

	rows, err := querier.QueryContext(ctx, query, ownerID, limit, offset)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list recipients")
	}
	defer func() {
		_ = rows.Close()
	}()

	recipients := make([]*domain.Recipient, 0)
	for rows.Next() {
		var recipient domain.Recipient
		err := rows.Scan(
			&recipient.ID,
			&recipient.OwnerID,
			&recipient.Email,
			&recipient.LegalName,
			&recipient.DateOfBirth,
			&recipient.Relationship,
			&recipient.CreatedAt,
		)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan recipient")
		}
		recipients = append(recipients, &recipient)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate recipients")
	}

	return recipients, nil
}

// FindByIdentity retrieves the owner's recipient whose identity triple
// matches exactly. The comparison is byte-for-byte and case-sensitive;
// Returns ErrRecipientNotFound on any mismatch.
func (r *PostgreSQLRecipientRepository) FindByIdentity(
	ctx context.Context,
	ownerID uuid.UUID,
	email, legalName, dateOfBirth string,
) (*domain.Recipient, error) {
	var recipient domain.Recipient
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, owner_id, email, legal_name, date_of_birth, relationship, created_at
			  FROM recipients
			  WHERE owner_id = $1 AND email = $2 AND legal_name = $3 AND date_of_birth = $4`

	err := querier.QueryRowContext(ctx, query, ownerID, email, legalName, dateOfBirth).Scan(
		&recipient.ID,
		&recipient.OwnerID,
		&recipient.Email,
		&recipient.LegalName,
		&recipient.DateOfBirth,
		&recipient.Relationship,
		&recipient.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrRecipientNotFound
		}
		return nil, apperrors.Wrap(err, "failed to find recipient by identity")
	}

	return &recipient, nil
}
