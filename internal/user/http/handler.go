package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	validation "github.com/jellydator/validation"

	"github.com/lifekey/lifekey/internal/httputil"
	userDomain "github.com/lifekey/lifekey/internal/user/domain"
	userUseCase "github.com/lifekey/lifekey/internal/user/usecase"
	customValidation "github.com/lifekey/lifekey/internal/validation"
)

// UserHandler handles HTTP requests for registration, login, and profile.
type UserHandler struct {
	userUseCase userUseCase.UserUseCase
	logger      *slog.Logger
}

// NewUserHandler creates a new user handler with required dependencies.
func NewUserHandler(userUseCase userUseCase.UserUseCase, logger *slog.Logger) *UserHandler {
	return &UserHandler{
		userUseCase: userUseCase,
		logger:      logger,
	}
}

// RegisterRequest contains the parameters for registering a new account.
type RegisterRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

// LoginRequest contains the credentials for logging in.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate checks if the login request is valid.
func (r *LoginRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Email, validation.Required, customValidation.NotBlank),
		validation.Field(&r.Password, validation.Required),
	)
}

// UserResponse represents an account owner in API responses.
type UserResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// LoginResponse contains the session token and the authenticated user.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// mapUserToResponse converts a domain user to an API response.
func mapUserToResponse(user *userDomain.User) UserResponse {
	return UserResponse{
		ID:        user.ID.String(),
		Email:     user.Email,
		Name:      user.Name,
		CreatedAt: user.CreatedAt,
	}
}

// RegisterHandler creates a new account.
// POST /v1/auth/register - Public endpoint.
// Returns 201 Created with the new account, or 409 if the email is taken.
func (h *UserHandler) RegisterHandler(c *gin.Context) {
	var req RegisterRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	// Field validation happens in the use case
	input := &userUseCase.RegisterInput{
		Email:    req.Email,
		Name:     req.Name,
		Password: req.Password,
	}

	user, err := h.userUseCase.Register(c.Request.Context(), input)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, mapUserToResponse(user))
}

// LoginHandler verifies credentials and returns a session token.
// POST /v1/auth/login - Public endpoint, rate limited.
// Returns 200 OK with the token, or 401 for bad credentials.
func (h *UserHandler) LoginHandler(c *gin.Context) {
	var req LoginRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	output, err := h.userUseCase.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	response := LoginResponse{
		Token: output.Token,
		User:  mapUserToResponse(output.User),
	}

	c.JSON(http.StatusOK, response)
}

// MeHandler returns the authenticated account owner.
// GET /v1/me - Requires an authenticated session.
func (h *UserHandler) MeHandler(c *gin.Context) {
	user, ok := GetUser(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, userDomain.ErrInvalidSessionToken, h.logger)
		return
	}

	c.JSON(http.StatusOK, mapUserToResponse(user))
}
