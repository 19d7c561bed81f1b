package http

import (
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

	"github.com/lifekey/lifekey/internal/release/domain"
	"github.com/lifekey/lifekey/internal/release/http/mocks"
	userDomain "github.com/lifekey/lifekey/internal/user/domain"
	userHTTP "github.com/lifekey/lifekey/internal/user/http"
)

func setupReleaseRouter(uc *mocks.MockReleaseUseCase, user *userDomain.User) *gin.Engine {
	gin.SetMode(gin.TestMode)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	handler := NewReleaseHandler(uc, logger)

	router := gin.New()
	// Stand-in for the session middleware
	router.Use(func(c *gin.Context) {
		if user != nil {
			ctx := userHTTP.WithUser(c.Request.Context(), user)
			c.Request = c.Request.WithContext(ctx)
		}
		c.Next()
	})
	router.POST("/v1/claims/:id/issue-releases", handler.IssueHandler)
	router.GET("/release/:token", handler.ViewHandler)
	return router
}

func TestReleaseHandler_IssueHandler(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		uc := new(mocks.MockReleaseUseCase)
		user := &userDomain.User{ID: uuid.Must(uuid.NewV7()), Email: "root@example.com"}
		router := setupReleaseRouter(uc, user)

		claimID := uuid.Must(uuid.NewV7())
		issued := []*domain.IssuedRelease{
			{
				RecipientID: uuid.Must(uuid.NewV7()),
				URL:         "https://lifekey.example.com/release/token-a",
				ExpiresAt:   time.Now().UTC().Add(6 * time.Hour),
			},
		}

		uc.On("IssueReleases", mock.Anything, claimID).Return(issued, nil)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/v1/claims/"+claimID.String()+"/issue-releases", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)

		var response IssueReleasesResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		require.Len(t, response.Releases, 1)
		assert.Contains(t, response.Releases[0].URL, "/release/")
		uc.AssertExpectations(t)
	})

	t.Run("NotApproved", func(t *testing.T) {
		uc := new(mocks.MockReleaseUseCase)
		user := &userDomain.User{ID: uuid.Must(uuid.NewV7()), Email: "root@example.com"}
		router := setupReleaseRouter(uc, user)

		claimID := uuid.Must(uuid.NewV7())
		uc.On("IssueReleases", mock.Anything, claimID).Return(nil, domain.ErrClaimNotApproved)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/v1/claims/"+claimID.String()+"/issue-releases", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("NoSession", func(t *testing.T) {
		uc := new(mocks.MockReleaseUseCase)
		router := setupReleaseRouter(uc, nil)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/v1/claims/"+uuid.Must(uuid.NewV7()).String()+"/issue-releases", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		uc.AssertNotCalled(t, "IssueReleases")
	})
}

func TestReleaseHandler_ViewHandler(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		uc := new(mocks.MockReleaseUseCase)
		router := setupReleaseRouter(uc, nil)

		view := &domain.ReleaseView{
			RecipientEmail: "maria@example.com",
			Items: []*domain.ReleasedItem{
				{
					Title:      "Bank login",
					Type:       "login",
					Payload:    map[string]any{"username": "ana", "password": "hunter2"},
					Permission: "view",
				},
			},
		}

		uc.On("ViewRelease", mock.Anything, "signed-token").Return(view, nil)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/release/signed-token", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var response ViewReleaseResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, "maria@example.com", response.RecipientEmail)
		require.Len(t, response.Items, 1)
		// Redemption is the one place decrypted payloads appear
		assert.Equal(t, "hunter2", response.Items[0].Payload["password"])
	})

	t.Run("ExpiredToken", func(t *testing.T) {
		uc := new(mocks.MockReleaseUseCase)
		router := setupReleaseRouter(uc, nil)

		uc.On("ViewRelease", mock.Anything, "stale-token").Return(nil, domain.ErrReleaseExpired)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/release/stale-token", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("ForgedToken", func(t *testing.T) {
		uc := new(mocks.MockReleaseUseCase)
		router := setupReleaseRouter(uc, nil)

		uc.On("ViewRelease", mock.Anything, "forged").Return(nil, domain.ErrInvalidReleaseToken)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/release/forged", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
