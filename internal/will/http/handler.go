// Package http provides HTTP handlers for owner will operations: recipients,
// policies, and assignments.
package http

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/lifekey/lifekey/internal/httputil"
	userDomain "github.com/lifekey/lifekey/internal/user/domain"
	userHTTP "github.com/lifekey/lifekey/internal/user/http"
	"github.com/lifekey/lifekey/internal/will/domain"
	willUseCase "github.com/lifekey/lifekey/internal/will/usecase"
)

// WillHandler handles HTTP requests for recipients, policies, and assignments.
type WillHandler struct {
	willUseCase willUseCase.WillUseCase
	logger      *slog.Logger
}

// NewWillHandler creates a new will handler with required dependencies.
func NewWillHandler(willUseCase willUseCase.WillUseCase, logger *slog.Logger) *WillHandler {
	return &WillHandler{
		willUseCase: willUseCase,
		logger:      logger,
	}
}

// AddRecipientRequest contains the parameters for designating a recipient.
type AddRecipientRequest struct {
	Email        string `json:"email"`
	LegalName    string `json:"legal_name"`
	DateOfBirth  string `json:"date_of_birth"`
	Relationship string `json:"relationship"`
}

// RecipientResponse represents a recipient in API responses.
type RecipientResponse struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	LegalName    string    `json:"legal_name"`
	DateOfBirth  string    `json:"date_of_birth"`
	Relationship string    `json:"relationship"`
	CreatedAt    time.Time `json:"created_at"`
}

// CreatePolicyRequest contains the parameters for creating a will policy.
type CreatePolicyRequest struct {
	Name               string `json:"name"`
	DisputeWindowHours int    `json:"dispute_window_hours"`
}

// UpdatePolicyStatusRequest contains the parameters for pausing or resuming
// a policy.
type UpdatePolicyStatusRequest struct {
	Status string `json:"status"`
}

// PolicyResponse represents a will policy in API responses.
type PolicyResponse struct {
	ID                 string    `json:"id"`
	Name               string    `json:"name"`
	Status             string    `json:"status"`
	DisputeWindowHours int       `json:"dispute_window_hours"`
	CreatedAt          time.Time `json:"created_at"`
}

// CreateAssignmentRequest contains the parameters for assigning a vault item
// to a recipient under a policy.
type CreateAssignmentRequest struct {
	PolicyID    string `json:"policy_id"`
	VaultItemID string `json:"vault_item_id"`
	RecipientID string `json:"recipient_id"`
	Permission  string `json:"permission"`
}

// AssignmentResponse represents a will assignment in API responses.
type AssignmentResponse struct {
	ID          string    `json:"id"`
	PolicyID    string    `json:"policy_id"`
	VaultItemID string    `json:"vault_item_id"`
	RecipientID string    `json:"recipient_id"`
	Permission  string    `json:"permission"`
	CreatedAt   time.Time `json:"created_at"`
}

func mapRecipientToResponse(recipient *domain.Recipient) RecipientResponse {
	return RecipientResponse{
		ID:           recipient.ID.String(),
		Email:        recipient.Email,
		LegalName:    recipient.LegalName,
		DateOfBirth:  recipient.DateOfBirth,
		Relationship: recipient.Relationship,
		CreatedAt:    recipient.CreatedAt,
	}
}

func mapPolicyToResponse(policy *domain.WillPolicy) PolicyResponse {
	return PolicyResponse{
		ID:                 policy.ID.String(),
		Name:               policy.Name,
		Status:             policy.Status,
		DisputeWindowHours: policy.DisputeWindowHours,
		CreatedAt:          policy.CreatedAt,
	}
}

func mapAssignmentToResponse(assignment *domain.WillAssignment) AssignmentResponse {
	return AssignmentResponse{
		ID:          assignment.ID.String(),
		PolicyID:    assignment.PolicyID.String(),
		VaultItemID: assignment.VaultItemID.String(),
		RecipientID: assignment.RecipientID.String(),
		Permission:  assignment.Permission,
		CreatedAt:   assignment.CreatedAt,
	}
}

// sessionUser extracts the authenticated user or writes a 401.
func (h *WillHandler) sessionUser(c *gin.Context) (*userDomain.User, bool) {
	user, ok := userHTTP.GetUser(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, userDomain.ErrInvalidSessionToken, h.logger)
		return nil, false
	}
	return user, true
}

// AddRecipientHandler designates a new recipient.
// POST /v1/recipients - Requires an authenticated session.
func (h *WillHandler) AddRecipientHandler(c *gin.Context) {
	user, ok := h.sessionUser(c)
	if !ok {
		return
	}

	var req AddRecipientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	input := &willUseCase.AddRecipientInput{
		Email:        req.Email,
		LegalName:    req.LegalName,
		DateOfBirth:  req.DateOfBirth,
		Relationship: req.Relationship,
	}

	recipient, err := h.willUseCase.AddRecipient(c.Request.Context(), user.ID, input)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, mapRecipientToResponse(recipient))
}

// ListRecipientsHandler retrieves the caller's recipients.
// GET /v1/recipients - Requires an authenticated session.
func (h *WillHandler) ListRecipientsHandler(c *gin.Context) {
	user, ok := h.sessionUser(c)
	if !ok {
		return
	}

	offset, limit, err := httputil.ParsePagination(c)
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	recipients, err := h.willUseCase.ListRecipients(c.Request.Context(), user.ID, offset, limit)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	responses := make([]RecipientResponse, 0, len(recipients))
	for _, recipient := range recipients {
		responses = append(responses, mapRecipientToResponse(recipient))
	}

	c.JSON(http.StatusOK, gin.H{"recipients": responses, "offset": offset, "limit": limit})
}

// CreatePolicyHandler creates an active will policy.
// POST /v1/policies - Requires an authenticated session.
func (h *WillHandler) CreatePolicyHandler(c *gin.Context) {
	user, ok := h.sessionUser(c)
	if !ok {
		return
	}

	var req CreatePolicyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	input := &willUseCase.CreatePolicyInput{
		Name:               req.Name,
		DisputeWindowHours: req.DisputeWindowHours,
	}

	policy, err := h.willUseCase.CreatePolicy(c.Request.Context(), user.ID, input)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, mapPolicyToResponse(policy))
}

// ListPoliciesHandler retrieves the caller's will policies.
// GET /v1/policies - Requires an authenticated session.
func (h *WillHandler) ListPoliciesHandler(c *gin.Context) {
	user, ok := h.sessionUser(c)
	if !ok {
		return
	}

	offset, limit, err := httputil.ParsePagination(c)
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	policies, err := h.willUseCase.ListPolicies(c.Request.Context(), user.ID, offset, limit)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	responses := make([]PolicyResponse, 0, len(policies))
	for _, policy := range policies {
		responses = append(responses, mapPolicyToResponse(policy))
	}

	c.JSON(http.StatusOK, gin.H{"policies": responses, "offset": offset, "limit": limit})
}

// UpdatePolicyStatusHandler pauses or resumes one of the caller's policies.
// PATCH /v1/policies/:id/status - Requires an authenticated session.
func (h *WillHandler) UpdatePolicyStatusHandler(c *gin.Context) {
	user, ok := h.sessionUser(c)
	if !ok {
		return
	}

	policyID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleValidationErrorGin(c,
			fmt.Errorf("invalid policy ID format: must be a valid UUID"),
			h.logger)
		return
	}

	var req UpdatePolicyStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	if err := h.willUseCase.UpdatePolicyStatus(c.Request.Context(), user.ID, policyID, req.Status); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": policyID.String(), "status": req.Status})
}

// CreateAssignmentHandler binds a vault item to a recipient under a policy.
// POST /v1/assignments - Requires an authenticated session.
func (h *WillHandler) CreateAssignmentHandler(c *gin.Context) {
	user, ok := h.sessionUser(c)
	if !ok {
		return
	}

	var req CreateAssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	policyID, err := uuid.Parse(req.PolicyID)
	if err != nil {
		httputil.HandleValidationErrorGin(c,
			fmt.Errorf("invalid policy_id format: must be a valid UUID"),
			h.logger)
		return
	}
	vaultItemID, err := uuid.Parse(req.VaultItemID)
	if err != nil {
		httputil.HandleValidationErrorGin(c,
			fmt.Errorf("invalid vault_item_id format: must be a valid UUID"),
			h.logger)
		return
	}
	recipientID, err := uuid.Parse(req.RecipientID)
	if err != nil {
		httputil.HandleValidationErrorGin(c,
			fmt.Errorf("invalid recipient_id format: must be a valid UUID"),
			h.logger)
		return
	}

	input := &willUseCase.CreateAssignmentInput{
		PolicyID:    policyID,
		VaultItemID: vaultItemID,
		RecipientID: recipientID,
		Permission:  req.Permission,
	}

	assignment, err := h.willUseCase.CreateAssignment(c.Request.Context(), user.ID, input)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, mapAssignmentToResponse(assignment))
}

// ListAssignmentsHandler retrieves the assignments under one of the caller's
// policies.
// GET /v1/policies/:id/assignments - Requires an authenticated session.
func (h *WillHandler) ListAssignmentsHandler(c *gin.Context) {
	user, ok := h.sessionUser(c)
	if !ok {
		return
	}

	policyID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleValidationErrorGin(c,
			fmt.Errorf("invalid policy ID format: must be a valid UUID"),
			h.logger)
		return
	}

	assignments, err := h.willUseCase.ListAssignments(c.Request.Context(), user.ID, policyID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	responses := make([]AssignmentResponse, 0, len(assignments))
	for _, assignment := range assignments {
		responses = append(responses, mapAssignmentToResponse(assignment))
	}

	c.JSON(http.StatusOK, gin.H{"assignments": responses})
}
