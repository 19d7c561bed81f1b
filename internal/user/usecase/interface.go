// Package usecase implements account registration and login business logic.
package usecase

import (
	"context"

	"github.com/google/uuid"

	"github.com/lifekey/lifekey/internal/user/domain"
)

// RegisterInput contains the input data for account registration.
type RegisterInput struct {
	Email    string
	Name     string
	Password string
}

// LoginOutput contains the result of a successful login.
type LoginOutput struct {
	// Token is the signed session capability token.
	Token string
	// User is the authenticated account owner.
	User *domain.User
}

// UserRepository defines persistence operations for account owners.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

// UserUseCase defines account registration, login, and lookup operations.
type UserUseCase interface {
	// Register creates a new account with a hashed password.
	// Returns ErrEmailTaken when the email is already registered.
	Register(ctx context.Context, input *RegisterInput) (*domain.User, error)

	// Login verifies credentials and mints a session token.
	// Returns ErrInvalidCredentials for both unknown email and wrong
	// password.
	Login(ctx context.Context, email, password string) (*LoginOutput, error)

	// Get retrieves an account owner by ID.
	Get(ctx context.Context, id uuid.UUID) (*domain.User, error)
}
