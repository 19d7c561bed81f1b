// Package http provides HTTP handlers for reading the audit trail.
package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	auditDomain "github.com/lifekey/lifekey/internal/audit/domain"
	auditUseCase "github.com/lifekey/lifekey/internal/audit/usecase"
	"github.com/lifekey/lifekey/internal/httputil"
)

// AuditEventHandler handles HTTP requests for audit trail queries.
type AuditEventHandler struct {
	auditUseCase auditUseCase.AuditUseCase
	logger       *slog.Logger
}

// NewAuditEventHandler creates a new audit event handler with required dependencies.
func NewAuditEventHandler(
	auditUseCase auditUseCase.AuditUseCase,
	logger *slog.Logger,
) *AuditEventHandler {
	return &AuditEventHandler{
		auditUseCase: auditUseCase,
		logger:       logger,
	}
}

// AuditEventResponse represents an audit event in API responses.
type AuditEventResponse struct {
	ID         string         `json:"id"`
	Actor      string         `json:"actor"`
	Action     string         `json:"action"`
	TargetType string         `json:"target_type"`
	TargetID   string         `json:"target_id"`
	Metadata   map[string]any `json:"metadata,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
}

// ListAuditEventsResponse contains a page of audit events.
type ListAuditEventsResponse struct {
	AuditEvents []AuditEventResponse `json:"audit_events"`
	Offset      int                  `json:"offset"`
	Limit       int                  `json:"limit"`
}

// mapAuditEventToResponse converts a domain audit event to an API response.
func mapAuditEventToResponse(event *auditDomain.AuditEvent) AuditEventResponse {
	return AuditEventResponse{
		ID:         event.ID.String(),
		Actor:      event.Actor,
		Action:     event.Action,
		TargetType: event.TargetType,
		TargetID:   event.TargetID,
		Metadata:   event.Metadata,
		CreatedAt:  event.CreatedAt,
	}
}

// ListHandler retrieves audit events ordered newest first.
// GET /v1/audit-events - Requires an authenticated session.
// Returns 200 OK with a paginated list of audit events.
func (h *AuditEventHandler) ListHandler(c *gin.Context) {
	offset, limit, err := httputil.ParsePagination(c)
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	events, err := h.auditUseCase.List(c.Request.Context(), offset, limit)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	response := ListAuditEventsResponse{
		AuditEvents: make([]AuditEventResponse, 0, len(events)),
		Offset:      offset,
		Limit:       limit,
	}
	for _, event := range events {
		response.AuditEvents = append(response.AuditEvents, mapAuditEventToResponse(event))
	}

	c.JSON(http.StatusOK, response)
}
