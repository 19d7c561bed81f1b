package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	auditDomain "github.com/lifekey/lifekey/internal/audit/domain"
	apperrors "github.com/lifekey/lifekey/internal/errors"
)

// auditUseCase implements AuditUseCase for recording audit events.
type auditUseCase struct {
	auditEventRepo AuditEventRepository
}

// Record appends an audit event attributed to the actor. Generates a UUIDv7
// identifier and a UTC timestamp.
func (a *auditUseCase) Record(
	ctx context.Context,
	actor, action, targetType, targetID string,
	metadata map[string]any,
) error {
	event := &auditDomain.AuditEvent{
		ID:         uuid.Must(uuid.NewV7()),
		Actor:      actor,
		Action:     action,
		TargetType: targetType,
		TargetID:   targetID,
		Metadata:   metadata,
		CreatedAt:  time.Now().UTC(),
	}

	if err := a.auditEventRepo.Create(ctx, event); err != nil {
		return apperrors.Wrap(err, "failed to record audit event")
	}

	return nil
}

// List retrieves audit events ordered by created_at descending (newest first)
// with pagination. Returns an empty slice if no events are found.
func (a *auditUseCase) List(
	ctx context.Context,
	offset, limit int,
) ([]*auditDomain.AuditEvent, error) {
	events, err := a.auditEventRepo.List(ctx, offset, limit)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list audit events")
	}

	return events, nil
}

// NewAuditUseCase creates a new AuditUseCase with the provided dependencies.
func NewAuditUseCase(auditEventRepo AuditEventRepository) AuditUseCase {
	return &auditUseCase{
		auditEventRepo: auditEventRepo,
	}
}
