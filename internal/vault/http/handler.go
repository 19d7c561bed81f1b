// Package http provides HTTP handlers for owner vault item operations.
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
	"github.com/lifekey/lifekey/internal/vault/domain"
	vaultUseCase "github.com/lifekey/lifekey/internal/vault/usecase"
)

// VaultItemHandler handles HTTP requests for vault item management.
type VaultItemHandler struct {
	vaultUseCase vaultUseCase.VaultUseCase
	logger       *slog.Logger
}

// NewVaultItemHandler creates a new vault item handler with required dependencies.
func NewVaultItemHandler(vaultUseCase vaultUseCase.VaultUseCase, logger *slog.Logger) *VaultItemHandler {
	return &VaultItemHandler{
		vaultUseCase: vaultUseCase,
		logger:       logger,
	}
}

// CreateVaultItemRequest contains the parameters for creating a vault item.
type CreateVaultItemRequest struct {
	Title   string         `json:"title"`
	Type    string         `json:"type"`
	Payload map[string]any `json:"payload"`
}

// VaultItemResponse represents a vault item in API responses. The payload is
// never included; owners write payloads but read them back only as sealed
// opaque strings via explicit exports.
type VaultItemResponse struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Type      string    `json:"type"`
	CreatedAt time.Time `json:"created_at"`
}

// ListVaultItemsResponse contains a page of vault items.
type ListVaultItemsResponse struct {
	VaultItems []VaultItemResponse `json:"vault_items"`
	Offset     int                 `json:"offset"`
	Limit      int                 `json:"limit"`
}

// mapVaultItemToResponse converts a domain vault item to an API response.
func mapVaultItemToResponse(item *domain.VaultItem) VaultItemResponse {
	return VaultItemResponse{
		ID:        item.ID.String(),
		Title:     item.Title,
		Type:      item.Type,
		CreatedAt: item.CreatedAt,
	}
}

// CreateHandler creates a new vault item with a sealed payload.
// POST /v1/vault-items - Requires an authenticated session.
// Returns 201 Created without the payload.
func (h *VaultItemHandler) CreateHandler(c *gin.Context) {
	user, ok := userHTTP.GetUser(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, userDomain.ErrInvalidSessionToken, h.logger)
		return
	}

	var req CreateVaultItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	// Field validation happens in the use case
	input := &vaultUseCase.CreateItemInput{
		Title:   req.Title,
		Type:    req.Type,
		Payload: req.Payload,
	}

	item, err := h.vaultUseCase.CreateItem(c.Request.Context(), user.ID, input)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, mapVaultItemToResponse(item))
}

// ListHandler retrieves the caller's vault items, newest first.
// GET /v1/vault-items - Requires an authenticated session.
func (h *VaultItemHandler) ListHandler(c *gin.Context) {
	user, ok := userHTTP.GetUser(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, userDomain.ErrInvalidSessionToken, h.logger)
		return
	}

	offset, limit, err := httputil.ParsePagination(c)
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	items, err := h.vaultUseCase.ListItems(c.Request.Context(), user.ID, offset, limit)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	response := ListVaultItemsResponse{
		VaultItems: make([]VaultItemResponse, 0, len(items)),
		Offset:     offset,
		Limit:      limit,
	}
	for _, item := range items {
		response.VaultItems = append(response.VaultItems, mapVaultItemToResponse(item))
	}

	c.JSON(http.StatusOK, response)
}

// GetHandler retrieves a single vault item owned by the caller.
// GET /v1/vault-items/:id - Requires an authenticated session.
// Returns 404 for items owned by someone else.
func (h *VaultItemHandler) GetHandler(c *gin.Context) {
	user, ok := userHTTP.GetUser(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, userDomain.ErrInvalidSessionToken, h.logger)
		return
	}

	itemID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleValidationErrorGin(c,
			fmt.Errorf("invalid vault item ID format: must be a valid UUID"),
			h.logger)
		return
	}

	item, err := h.vaultUseCase.GetItem(c.Request.Context(), user.ID, itemID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, mapVaultItemToResponse(item))
}

// DeleteHandler removes a vault item owned by the caller.
// DELETE /v1/vault-items/:id - Requires an authenticated session.
// Returns 204 No Content.
func (h *VaultItemHandler) DeleteHandler(c *gin.Context) {
	user, ok := userHTTP.GetUser(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, userDomain.ErrInvalidSessionToken, h.logger)
		return
	}

	itemID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleValidationErrorGin(c,
			fmt.Errorf("invalid vault item ID format: must be a valid UUID"),
			h.logger)
		return
	}

	if err := h.vaultUseCase.DeleteItem(c.Request.Context(), user.ID, itemID); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Data(http.StatusNoContent, "application/json", nil)
}
