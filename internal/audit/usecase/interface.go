// Package usecase implements business logic orchestration for the audit trail.
package usecase

import (
	"context"

	auditDomain "github.com/lifekey/lifekey/internal/audit/domain"
)

// AuditEventRepository defines persistence operations for audit events.
type AuditEventRepository interface {
	// Create inserts a new audit event.
	Create(ctx context.Context, event *auditDomain.AuditEvent) error

	// List retrieves audit events ordered by created_at descending with pagination.
	List(ctx context.Context, offset, limit int) ([]*auditDomain.AuditEvent, error)
}

// AuditUseCase defines operations for recording and reading the audit trail.
type AuditUseCase interface {
	// Record appends an audit event. The metadata parameter is optional and
	// can be nil.
	Record(ctx context.Context, actor, action, targetType, targetID string, metadata map[string]any) error

	// List retrieves audit events ordered newest first with pagination.
	List(ctx context.Context, offset, limit int) ([]*auditDomain.AuditEvent, error)
}
