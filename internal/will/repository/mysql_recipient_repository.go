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

// MySQLRecipientRepository handles recipient persistence for MySQL.
// UUIDs are stored as BINARY(16).
type MySQLRecipientRepository struct {
	db *sql.DB
}

// NewMySQLRecipientRepository creates a new MySQLRecipientRepository.
func NewMySQLRecipientRepository(db *sql.DB) *MySQLRecipientRepository {
	return &MySQLRecipientRepository{
		db: db,
	}
}

// Create inserts a new recipient.
func (r *MySQLRecipientRepository) Create(ctx context.Context, recipient *domain.Recipient) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO recipients (id, owner_id, email, legal_name, date_of_birth, relationship, created_at)
			  VALUES (?, ?, ?, ?, ?, ?, ?)`

	idBytes, err := recipient.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal UUID")
	}
	ownerBytes, err := recipient.OwnerID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal UUID")
	}

	_, err = querier.ExecContext(
		ctx,
		query,
		idBytes,
		ownerBytes,
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
func (r *MySQLRecipientRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Recipient, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, owner_id, email, legal_name, date_of_birth, relationship, created_at
			  FROM recipients WHERE id = ?`

	idParam, err := id.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal UUID")
	}

	return r.scanRecipient(querier.QueryRowContext(ctx, query, idParam))
}

// ListByOwner retrieves the owner's recipients ordered by id descending with
// pagination.
func (r *MySQLRecipientRepository) ListByOwner(
	ctx context.Context,
	ownerID uuid.UUID,
	offset, limit int,
) ([]*domain.Recipient, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, owner_id, email, legal_name, date_of_birth, relationship, created_at
			  FROM recipients
			  WHERE owner_id = ?
			  ORDER BY id DESC
			  LIMIT ? OFFSET ?`

	ownerParam, err := ownerID.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal UUID")
	}

	rows, err := querier.QueryContext(ctx, query, ownerParam, limit, offset)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list recipients")
	}
	defer func() {
		_ = rows.Close()
	}()

	recipients := make([]*domain.Recipient, 0)
	for rows.Next() {
		var recipient domain.Recipient
		var idBytes, ownerBytes []byte
		err := rows.Scan(
			&idBytes,
			&ownerBytes,
			&recipient.Email,
			&recipient.LegalName,
			&recipient.DateOfBirth,
			&recipient.Relationship,
			&recipient.CreatedAt,
		)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan recipient")
		}

		if err := recipient.ID.UnmarshalBinary(idBytes); err != nil {
			return nil, apperrors.Wrap(err, "failed to unmarshal UUID")
		}
		if err := recipient.OwnerID.UnmarshalBinary(ownerBytes); err != nil {
			return nil, apperrors.Wrap(err, "failed to unmarshal UUID")
		}

		recipients = append(recipients, &recipient)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate recipients")
	}

	return recipients, nil
}

// FindByIdentity retrieves the owner's recipient whose identity triple
// matches exactly. The email, legal name, and date of birth columns use a
// binary collation so the comparison is byte-for-byte.
func (r *MySQLRecipientRepository) FindByIdentity(
	ctx context.Context,
	ownerID uuid.UUID,
	email, legalName, dateOfBirth string,
) (*domain.Recipient, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, owner_id, email, legal_name, date_of_birth, relationship, created_at
			  FROM recipients
			  WHERE owner_id = ? AND email = ? AND legal_name = ? AND date_of_birth = ?`

	ownerParam, err := ownerID.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal UUID")
	}

	return r.scanRecipient(querier.QueryRowContext(ctx, query, ownerParam, email, legalName, dateOfBirth))
}

func (r *MySQLRecipientRepository) scanRecipient(row *sql.Row) (*domain.Recipient, error) {
	var recipient domain.Recipient
	var idBytes, ownerBytes []byte

	err := row.Scan(
		&idBytes,
		&ownerBytes,
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
		return nil, apperrors.Wrap(err, "failed to get recipient")
	}

	if err := recipient.ID.UnmarshalBinary(idBytes); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal UUID")
	}
	if err := recipient.OwnerID.UnmarshalBinary(ownerBytes); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal UUID")
	}

	return &recipient, nil
}
