package http

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	userDomain "github.com/lifekey/lifekey/internal/user/domain"
	userHTTP "github.com/lifekey/lifekey/internal/user/http"
	"github.com/lifekey/lifekey/internal/vault/domain"
	"github.com/lifekey/lifekey/internal/vault/http/mocks"
	vaultUseCase "github.com/lifekey/lifekey/internal/vault/usecase"
)

func setupVaultRouter(uc *mocks.MockVaultUseCase, user *userDomain.User) *gin.Engine {
	gin.SetMode(gin.TestMode)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	handler := NewVaultItemHandler(uc, logger)

	router := gin.New()
	// Stand-in for the session middleware
	router.Use(func(c *gin.Context) {
		if user != nil {
			ctx := userHTTP.WithUser(c.Request.Context(), user)
			c.Request = c.Request.WithContext(ctx)
		}
		c.Next()
	})
	router.POST("/v1/vault-items", handler.CreateHandler)
	router.GET("/v1/vault-items", handler.ListHandler)
	router.GET("/v1/vault-items/:id", handler.GetHandler)
	router.DELETE("/v1/vault-items/:id", handler.DeleteHandler)
	return router
}

func testUser() *userDomain.User {
	return &userDomain.User{
		ID:    uuid.Must(uuid.NewV7()),
		Email: "ana@example.com",
		Name:  "Ana Souza",
	}
}

func TestVaultItemHandler_CreateHandler(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		uc := new(mocks.MockVaultUseCase)
		user := testUser()
		router := setupVaultRouter(uc, user)

		item := &domain.VaultItem{
			ID:        uuid.Must(uuid.NewV7()),
			OwnerID:   user.ID,
			Title:     "Bank login",
			Type:      domain.ItemTypeLogin,
			CreatedAt: time.Now().UTC(),
		}

		uc.On("CreateItem", mock.Anything, user.ID, mock.MatchedBy(func(input *vaultUseCase.CreateItemInput) bool {
			return input.Title == "Bank login" && input.Type == "login" && input.Payload["username"] == "ana"
		})).Return(item, nil)

		body := `{"title":"Bank login","type":"login","payload":{"username":"ana","password":"hunter2"}}`
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/v1/vault-items", bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)

		var response VaultItemResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, item.ID.String(), response.ID)
		// Sealed payload never leaves the server
		assert.NotContains(t, w.Body.String(), "hunter2")
		assert.NotContains(t, w.Body.String(), "payload")
		uc.AssertExpectations(t)
	})

	t.Run("NoSession", func(t *testing.T) {
		uc := new(mocks.MockVaultUseCase)
		router := setupVaultRouter(uc, nil)

		body := `{"title":"Bank login","type":"login","payload":{"username":"ana"}}`
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/v1/vault-items", bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		uc.AssertNotCalled(t, "CreateItem")
	})
}

func TestVaultItemHandler_ListHandler(t *testing.T) {
	uc := new(mocks.MockVaultUseCase)
	user := testUser()
	router := setupVaultRouter(uc, user)

	items := []*domain.VaultItem{
		{ID: uuid.Must(uuid.NewV7()), OwnerID: user.ID, Title: "Bank login", Type: domain.ItemTypeLogin},
	}

	uc.On("ListItems", mock.Anything, user.ID, 0, 50).Return(items, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/v1/vault-items", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response ListVaultItemsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Len(t, response.VaultItems, 1)
	assert.Equal(t, "Bank login", response.VaultItems[0].Title)
}

func TestVaultItemHandler_GetHandler(t *testing.T) {
	t.Run("NotFound", func(t *testing.T) {
		uc := new(mocks.MockVaultUseCase)
		user := testUser()
		router := setupVaultRouter(uc, user)

		itemID := uuid.Must(uuid.NewV7())
		uc.On("GetItem", mock.Anything, user.ID, itemID).Return(nil, domain.ErrVaultItemNotFound)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/v1/vault-items/"+itemID.String(), nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("BadUUID", func(t *testing.T) {
		uc := new(mocks.MockVaultUseCase)
		router := setupVaultRouter(uc, testUser())

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/v1/vault-items/not-a-uuid", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		uc.AssertNotCalled(t, "GetItem")
	})
}

func TestVaultItemHandler_DeleteHandler(t *testing.T) {
	uc := new(mocks.MockVaultUseCase)
	user := testUser()
	router := setupVaultRouter(uc, user)

	itemID := uuid.Must(uuid.NewV7())
	uc.On("DeleteItem", mock.Anything, user.ID, itemID).Return(nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/v1/vault-items/"+itemID.String(), nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	uc.AssertExpectations(t)
}
