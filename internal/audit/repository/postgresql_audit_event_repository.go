// Package repository implements audit event persistence for PostgreSQL and MySQL.
package repository

import (
	"context"
	"database/sql"
	"encoding/json"

	auditDomain "github.com/lifekey/lifekey/internal/audit/domain"
	"github.com/lifekey/lifekey/internal/database"
	apperrors "github.com/lifekey/lifekey/internal/errors"
)

// PostgreSQLAuditEventRepository implements AuditEvent persistence for PostgreSQL.
// Uses native UUID types with transaction support via database.GetTx().
type PostgreSQLAuditEventRepository struct {
	db *sql.DB
}

// Create inserts a new AuditEvent into the PostgreSQL database. Handles nil
// metadata as database NULL.
func (p *PostgreSQLAuditEventRepository) Create(ctx context.Context, event *auditDomain.AuditEvent) error {
	querier := database.GetTx(ctx, p.db)

	var metadataJSON []byte
	var err error

	// Handle nil metadata as NULL
	if event.Metadata != nil {
		metadataJSON, err = json.Marshal(event.Metadata)
		if err != nil {
			return apperrors.Wrap(err, "failed to marshal audit event metadata")
		}
	}

	query := `INSERT INTO audit_events (id, actor, action, target_type, target_id, metadata, created_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err = querier.ExecContext(
		ctx,
		query,
		event.ID,
		event.Actor,
		event.Action,
		event.TargetType,
		event.TargetID,
		metadataJSON,
		event.CreatedAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create audit event")
	}

	return nil
}

// List retrieves audit events ordered by ID descending (newest first) with
// pagination. UUIDv7 identifiers make ID order match creation order. Returns
// empty slice if no events found.
func (p *PostgreSQLAuditEventRepository) List(
	ctx context.Context,
	offset, limit int,
) ([]*auditDomain.AuditEvent, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, actor, action, target_type, target_id, metadata, created_at
			  FROM audit_events
			  ORDER BY id DESC
			  LIMIT $1 OFFSET $2`

	rows, err := querier.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list audit events")
	}
	defer func() {
		_ = rows.Close()
	}()

	// Initialize empty slice to avoid returning nil for empty results
	events := make([]*auditDomain.AuditEvent, 0)
	for rows.Next() {
		var event auditDomain.AuditEvent
		var metadataJSON []byte

		err := rows.Scan(
			&event.ID,
			&event.Actor,
			&event.Action,
			&event.TargetType,
			&event.TargetID,
			&metadataJSON,
			&event.CreatedAt,
		)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan audit event")
		}

		// Unmarshal metadata if not NULL
		if metadataJSON != nil {
			if err := json.Unmarshal(metadataJSON, &event.Metadata); err != nil {
				return nil, apperrors.Wrap(err, "failed to unmarshal audit event metadata")
			}
		}

		events = append(events, &event)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate audit events")
	}

	return events, nil
}

// NewPostgreSQLAuditEventRepository creates a new PostgreSQL AuditEvent repository.
func NewPostgreSQLAuditEventRepository(db *sql.DB) *PostgreSQLAuditEventRepository {
	return &PostgreSQLAuditEventRepository{db: db}
}
