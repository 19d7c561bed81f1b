// Package http provides HTTP handlers for claim submission and review.
package http

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/lifekey/lifekey/internal/claims/domain"
	claimUseCase "github.com/lifekey/lifekey/internal/claims/usecase"
	"github.com/lifekey/lifekey/internal/httputil"
	userDomain "github.com/lifekey/lifekey/internal/user/domain"
	userHTTP "github.com/lifekey/lifekey/internal/user/http"
)

// ClaimHandler handles HTTP requests for claims.
type ClaimHandler struct {
	claimUseCase claimUseCase.ClaimUseCase
	logger       *slog.Logger
}

// NewClaimHandler creates a new claim handler with required dependencies.
func NewClaimHandler(claimUseCase claimUseCase.ClaimUseCase, logger *slog.Logger) *ClaimHandler {
	return &ClaimHandler{
		claimUseCase: claimUseCase,
		logger:       logger,
	}
}

// ClaimResponse represents a claim in API responses. Document contents are
// never returned, only opaque storage keys.
type ClaimResponse struct {
	ID          string     `json:"id"`
	PolicyID    string     `json:"policy_id"`
	RecipientID string     `json:"recipient_id"`
	Status      string     `json:"status"`
	ReviewedBy  string     `json:"reviewed_by,omitempty"`
	ReviewedAt  *time.Time `json:"reviewed_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

func mapClaimToResponse(claim *domain.Claim) ClaimResponse {
	return ClaimResponse{
		ID:          claim.ID.String(),
		PolicyID:    claim.PolicyID.String(),
		RecipientID: claim.RecipientID.String(),
		Status:      claim.Status,
		ReviewedBy:  claim.ReviewedBy,
		ReviewedAt:  claim.ReviewedAt,
		CreatedAt:   claim.CreatedAt,
	}
}

// readDocument loads an uploaded multipart file into memory.
func readDocument(header *multipart.FileHeader) (*claimUseCase.Document, error) {
	file, err := header.Open()
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = file.Close()
	}()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, err
	}

	return &claimUseCase.Document{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}

// SubmitHandler files a claim against a policy.
// POST /v1/claims - Public endpoint; the submitted identity triple is the
// only credential a recipient has.
// Expects a multipart form with policy_id, email, legal_name, date_of_birth,
// and files id_document and death_certificate.
func (h *ClaimHandler) SubmitHandler(c *gin.Context) {
	policyID, err := uuid.Parse(c.PostForm("policy_id"))
	if err != nil {
		httputil.HandleValidationErrorGin(c,
			fmt.Errorf("invalid policy_id format: must be a valid UUID"),
			h.logger)
		return
	}

	idDocHeader, err := c.FormFile("id_document")
	if err != nil {
		httputil.HandleValidationErrorGin(c,
			fmt.Errorf("id_document file is required"),
			h.logger)
		return
	}
	deathCertHeader, err := c.FormFile("death_certificate")
	if err != nil {
		httputil.HandleValidationErrorGin(c,
			fmt.Errorf("death_certificate file is required"),
			h.logger)
		return
	}

	idDoc, err := readDocument(idDocHeader)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}
	deathCert, err := readDocument(deathCertHeader)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	input := &claimUseCase.SubmitClaimInput{
		PolicyID:    policyID,
		Email:       c.PostForm("email"),
		LegalName:   c.PostForm("legal_name"),
		DateOfBirth: c.PostForm("date_of_birth"),
		IDDocument:  idDoc,
		DeathCert:   deathCert,
	}

	claim, err := h.claimUseCase.SubmitClaim(c.Request.Context(), input)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, mapClaimToResponse(claim))
}

// GetHandler retrieves a claim by ID.
// GET /v1/claims/:id - Requires an authenticated session.
func (h *ClaimHandler) GetHandler(c *gin.Context) {
	if _, ok := h.sessionUser(c); !ok {
		return
	}

	claimID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleValidationErrorGin(c,
			fmt.Errorf("invalid claim ID format: must be a valid UUID"),
			h.logger)
		return
	}

	claim, err := h.claimUseCase.GetClaim(c.Request.Context(), claimID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, mapClaimToResponse(claim))
}

// ApproveHandler marks a pending claim approved.
// POST /v1/claims/:id/approve - Requires an authenticated session.
func (h *ClaimHandler) ApproveHandler(c *gin.Context) {
	h.reviewHandler(c, h.claimUseCase.ApproveClaim)
}

// DenyHandler marks a pending claim denied.
// POST /v1/claims/:id/deny - Requires an authenticated session.
func (h *ClaimHandler) DenyHandler(c *gin.Context) {
	h.reviewHandler(c, h.claimUseCase.DenyClaim)
}

func (h *ClaimHandler) reviewHandler(
	c *gin.Context,
	decide func(ctx context.Context, claimID uuid.UUID, reviewer string) (*domain.Claim, error),
) {
	user, ok := h.sessionUser(c)
	if !ok {
		return
	}

	claimID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleValidationErrorGin(c,
			fmt.Errorf("invalid claim ID format: must be a valid UUID"),
			h.logger)
		return
	}

	claim, err := decide(c.Request.Context(), claimID, "admin:"+user.Email)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, mapClaimToResponse(claim))
}

func (h *ClaimHandler) sessionUser(c *gin.Context) (*userDomain.User, bool) {
	user, ok := userHTTP.GetUser(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, userDomain.ErrInvalidSessionToken, h.logger)
		return nil, false
	}
	return user, true
}
