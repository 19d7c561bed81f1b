package http

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/lifekey/lifekey/internal/claims/domain"
	"github.com/lifekey/lifekey/internal/claims/http/mocks"
	claimUseCase "github.com/lifekey/lifekey/internal/claims/usecase"
	userDomain "github.com/lifekey/lifekey/internal/user/domain"
	userHTTP "github.com/lifekey/lifekey/internal/user/http"
)

func setupClaimRouter(uc *mocks.MockClaimUseCase, user *userDomain.User) *gin.Engine {
	gin.SetMode(gin.TestMode)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	handler := NewClaimHandler(uc, logger)

	router := gin.New()
	// Stand-in for the session middleware
	router.Use(func(c *gin.Context) {
		if user != nil {
			ctx := userHTTP.WithUser(c.Request.Context(), user)
			c.Request = c.Request.WithContext(ctx)
		}
		c.Next()
	})
	router.POST("/v1/claims", handler.SubmitHandler)
	router.GET("/v1/claims/:id", handler.GetHandler)
	router.POST("/v1/claims/:id/approve", handler.ApproveHandler)
	router.POST("/v1/claims/:id/deny", handler.DenyHandler)
	return router
}

func testReviewer() *userDomain.User {
	return &userDomain.User{
		ID:    uuid.Must(uuid.NewV7()),
		Email: "root@example.com",
		Name:  "Root",
	}
}

// buildClaimForm builds a multipart claim submission request body.
func buildClaimForm(t *testing.T, policyID string, withDocs bool) (*bytes.Buffer, string) {
	t.Helper()

	body := new(bytes.Buffer)
	writer := multipart.NewWriter(body)
	require.NoError(t, writer.WriteField("policy_id", policyID))
	require.NoError(t, writer.WriteField("email", "maria@example.com"))
	require.NoError(t, writer.WriteField("legal_name", "Maria Oliveira"))
	require.NoError(t, writer.WriteField("date_of_birth", "1961-04-12"))

	if withDocs {
		idPart, err := writer.CreateFormFile("id_document", "passport.pdf")
		require.NoError(t, err)
		_, err = idPart.Write([]byte("id-doc"))
		require.NoError(t, err)

		dcPart, err := writer.CreateFormFile("death_certificate", "certificate.pdf")
		require.NoError(t, err)
		_, err = dcPart.Write([]byte("death-cert"))
		require.NoError(t, err)
	}

	require.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}

func TestClaimHandler_SubmitHandler(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		uc := new(mocks.MockClaimUseCase)
		router := setupClaimRouter(uc, nil)

		policyID := uuid.Must(uuid.NewV7())
		claim := &domain.Claim{
			ID:          uuid.Must(uuid.NewV7()),
			PolicyID:    policyID,
			RecipientID: uuid.Must(uuid.NewV7()),
			Status:      domain.ClaimStatusPending,
			CreatedAt:   time.Now().UTC(),
		}

		uc.On("SubmitClaim", mock.Anything, mock.MatchedBy(func(input *claimUseCase.SubmitClaimInput) bool {
			return input.PolicyID == policyID &&
				input.Email == "maria@example.com" &&
				input.DateOfBirth == "1961-04-12" &&
				string(input.IDDocument.Data) == "id-doc" &&
				string(input.DeathCert.Data) == "death-cert"
		})).Return(claim, nil)

		body, contentType := buildClaimForm(t, policyID.String(), true)
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/v1/claims", body)
		req.Header.Set("Content-Type", contentType)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)

		var response ClaimResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, claim.ID.String(), response.ID)
		assert.Equal(t, domain.ClaimStatusPending, response.Status)
		uc.AssertExpectations(t)
	})

	t.Run("MissingDocuments", func(t *testing.T) {
		uc := new(mocks.MockClaimUseCase)
		router := setupClaimRouter(uc, nil)

		body, contentType := buildClaimForm(t, uuid.Must(uuid.NewV7()).String(), false)
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/v1/claims", body)
		req.Header.Set("Content-Type", contentType)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		uc.AssertNotCalled(t, "SubmitClaim")
	})

	t.Run("IdentityMismatch", func(t *testing.T) {
		uc := new(mocks.MockClaimUseCase)
		router := setupClaimRouter(uc, nil)

		uc.On("SubmitClaim", mock.Anything, mock.Anything).Return(nil, domain.ErrIdentityMismatch)

		body, contentType := buildClaimForm(t, uuid.Must(uuid.NewV7()).String(), true)
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/v1/claims", body)
		req.Header.Set("Content-Type", contentType)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		// The response never says which identity field failed
		assert.NotContains(t, w.Body.String(), "email")
		assert.NotContains(t, w.Body.String(), "date_of_birth")
	})

	t.Run("BadPolicyID", func(t *testing.T) {
		uc := new(mocks.MockClaimUseCase)
		router := setupClaimRouter(uc, nil)

		body, contentType := buildClaimForm(t, "not-a-uuid", true)
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/v1/claims", body)
		req.Header.Set("Content-Type", contentType)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		uc.AssertNotCalled(t, "SubmitClaim")
	})
}

func TestClaimHandler_GetHandler(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		uc := new(mocks.MockClaimUseCase)
		router := setupClaimRouter(uc, testReviewer())

		claim := &domain.Claim{
			ID:          uuid.Must(uuid.NewV7()),
			PolicyID:    uuid.Must(uuid.NewV7()),
			RecipientID: uuid.Must(uuid.NewV7()),
			Status:      domain.ClaimStatusPending,
			CreatedAt:   time.Now().UTC(),
		}

		uc.On("GetClaim", mock.Anything, claim.ID).Return(claim, nil)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/v1/claims/"+claim.ID.String(), nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("NoSession", func(t *testing.T) {
		uc := new(mocks.MockClaimUseCase)
		router := setupClaimRouter(uc, nil)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/v1/claims/"+uuid.Must(uuid.NewV7()).String(), nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		uc.AssertNotCalled(t, "GetClaim")
	})
}

func TestClaimHandler_ApproveHandler(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		uc := new(mocks.MockClaimUseCase)
		reviewer := testReviewer()
		router := setupClaimRouter(uc, reviewer)

		now := time.Now().UTC()
		claim := &domain.Claim{
			ID:         uuid.Must(uuid.NewV7()),
			Status:     domain.ClaimStatusApproved,
			ReviewedBy: "admin:root@example.com",
			ReviewedAt: &now,
			CreatedAt:  now,
		}

		uc.On("ApproveClaim", mock.Anything, claim.ID, "admin:root@example.com").Return(claim, nil)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/v1/claims/"+claim.ID.String()+"/approve", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), domain.ClaimStatusApproved)
		uc.AssertExpectations(t)
	})

	t.Run("AlreadyReviewed", func(t *testing.T) {
		uc := new(mocks.MockClaimUseCase)
		router := setupClaimRouter(uc, testReviewer())

		claimID := uuid.Must(uuid.NewV7())
		uc.On("ApproveClaim", mock.Anything, claimID, "admin:root@example.com").Return(nil, domain.ErrClaimNotPending)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/v1/claims/"+claimID.String()+"/approve", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusConflict, w.Code)
	})
}

func TestClaimHandler_DenyHandler(t *testing.T) {
	uc := new(mocks.MockClaimUseCase)
	router := setupClaimRouter(uc, testReviewer())

	now := time.Now().UTC()
	claim := &domain.Claim{
		ID:         uuid.Must(uuid.NewV7()),
		Status:     domain.ClaimStatusDenied,
		ReviewedBy: "admin:root@example.com",
		ReviewedAt: &now,
		CreatedAt:  now,
	}

	uc.On("DenyClaim", mock.Anything, claim.ID, "admin:root@example.com").Return(claim, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/claims/"+claim.ID.String()+"/deny", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), domain.ClaimStatusDenied)
	uc.AssertExpectations(t)
}
