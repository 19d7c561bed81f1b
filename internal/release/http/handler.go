// Package http provides HTTP handlers for release issuance and redemption.
package http

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/lifekey/lifekey/internal/httputil"
	"github.com/lifekey/lifekey/internal/release/domain"
	releaseUseCase "github.com/lifekey/lifekey/internal/release/usecase"
	userDomain "github.com/lifekey/lifekey/internal/user/domain"
	userHTTP "github.com/lifekey/lifekey/internal/user/http"
)

// ReleaseHandler handles HTTP requests for releases.
type ReleaseHandler struct {
	releaseUseCase releaseUseCase.ReleaseUseCase
	logger         *slog.Logger
}

// NewReleaseHandler creates a new release handler with required dependencies.
func NewReleaseHandler(releaseUseCase releaseUseCase.ReleaseUseCase, logger *slog.Logger) *ReleaseHandler {
	return &ReleaseHandler{
		releaseUseCase: releaseUseCase,
		logger:         logger,
	}
}

// IssuedReleaseResponse represents one minted release in API responses. The
// redemption URL embeds the token; the token is never listed separately.
type IssuedReleaseResponse struct {
	RecipientID string    `json:"recipient_id"`
	URL         string    `json:"url"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// IssueReleasesResponse is the issuance result for a claim.
type IssueReleasesResponse struct {
	Releases []IssuedReleaseResponse `json:"releases"`
}

// ReleasedItemResponse represents a decrypted item in a redemption response.
type ReleasedItemResponse struct {
	Title      string         `json:"title"`
	Type       string         `json:"type"`
	Payload    map[string]any `json:"payload"`
	Permission string         `json:"permission"`
}

// ViewReleaseResponse is what a recipient sees when redeeming a token.
type ViewReleaseResponse struct {
	RecipientEmail string                 `json:"recipient_email"`
	Items          []ReleasedItemResponse `json:"items"`
}

// IssueHandler mints releases for every recipient of an approved claim.
// POST /v1/claims/:id/issue-releases - Requires an authenticated session.
func (h *ReleaseHandler) IssueHandler(c *gin.Context) {
	if _, ok := userHTTP.GetUser(c.Request.Context()); !ok {
		httputil.HandleErrorGin(c, userDomain.ErrInvalidSessionToken, h.logger)
		return
	}

	claimID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleValidationErrorGin(c,
			fmt.Errorf("invalid claim ID format: must be a valid UUID"),
			h.logger)
		return
	}

	issued, err := h.releaseUseCase.IssueReleases(c.Request.Context(), claimID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	releases := make([]IssuedReleaseResponse, 0, len(issued))
	for _, release := range issued {
		releases = append(releases, IssuedReleaseResponse{
			RecipientID: release.RecipientID.String(),
			URL:         release.URL,
			ExpiresAt:   release.ExpiresAt,
		})
	}

	c.JSON(http.StatusCreated, IssueReleasesResponse{Releases: releases})
}

// ViewHandler redeems a release token and returns the decrypted items.
// GET /release/:token - Public endpoint; the token is the whole credential.
func (h *ReleaseHandler) ViewHandler(c *gin.Context) {
	token := c.Param("token")
	if token == "" {
		httputil.HandleErrorGin(c, domain.ErrInvalidReleaseToken, h.logger)
		return
	}

	view, err := h.releaseUseCase.ViewRelease(c.Request.Context(), token)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	items := make([]ReleasedItemResponse, 0, len(view.Items))
	for _, item := range view.Items {
		items = append(items, ReleasedItemResponse{
			Title:      item.Title,
			Type:       item.Type,
			Payload:    item.Payload,
			Permission: item.Permission,
		})
	}

	c.JSON(http.StatusOK, ViewReleaseResponse{
		RecipientEmail: view.RecipientEmail,
		Items:          items,
	})
}
