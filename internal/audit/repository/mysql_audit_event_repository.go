package repository

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/google/uuid"

	auditDomain "github.com/lifekey/lifekey/internal/audit/domain"
	"github.com/lifekey/lifekey/internal/database"
	apperrors "github.com/lifekey/lifekey/internal/errors"
)

// MySQLAuditEventRepository implements AuditEvent persistence for MySQL.
// Uses BINARY(16) for UUID storage with transaction support via database.GetTx().
type MySQLAuditEventRepository struct {
	db *sql.DB
}

// Create inserts a new AuditEvent into the MySQL database using BINARY(16) for UUIDs.
// Handles nil metadata as database NULL.
func (m *MySQLAuditEventRepository) Create(ctx context.Context, event *auditDomain.AuditEvent) error {
	querier := database.GetTx(ctx, m.db)

	var metadataJSON []byte
	var err error

	// Handle nil metadata as NULL
	if event.Metadata != nil {
		metadataJSON, err = json.Marshal(event.Metadata)
		if err != nil {
			return apperrors.Wrap(err, "failed to marshal audit event metadata")
		}
	}

	id, err := event.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal audit event id")
	}

	query := `INSERT INTO audit_events (id, actor, action, target_type, target_id, metadata, created_at)
			  VALUES (?, ?, ?, ?, ?, ?, ?)`

	_, err = querier.ExecContext(
		ctx,
		query,
		id,
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

// List retrieves audit events ordered by ID descending (newest first) with pagination.
func (m *MySQLAuditEventRepository) List(
	ctx context.Context,
	offset, limit int,
) ([]*auditDomain.AuditEvent, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT id, actor, action, target_type, target_id, metadata, created_at
			  FROM audit_events
			  ORDER BY id DESC
			  LIMIT ? OFFSET ?`

	rows, err := querier.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list audit events")
	}
	defer func() {
		_ = rows.Close()
	}()

	events := make([]*auditDomain.AuditEvent, 0)
	for rows.Next() {
		var event auditDomain.AuditEvent
		var idBytes []byte
		var metadataJSON []byte

		err := rows.Scan(
			&idBytes,
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

		event.ID, err = uuid.FromBytes(idBytes)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to parse audit event id")
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

// NewMySQLAuditEventRepository creates a new MySQL AuditEvent repository.
func NewMySQLAuditEventRepository(db *sql.DB) *MySQLAuditEventRepository {
	return &MySQLAuditEventRepository{db: db}
}
