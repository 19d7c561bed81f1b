// Package mocks provides mock implementations for testing HTTP handlers.
package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	userDomain "github.com/lifekey/lifekey/internal/user/domain"
	userUseCase "github.com/lifekey/lifekey/internal/user/usecase"
)

// MockUserUseCase is a mock implementation of UserUseCase for testing.
type MockUserUseCase struct {
	mock.Mock
}

// Register mocks the Register method of UserUseCase.
func (m *MockUserUseCase) Register(
	ctx context.Context,
	input *userUseCase.RegisterInput,
) (*userDomain.User, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*userDomain.User), args.Error(1)
}

// Login mocks the Login method of UserUseCase.
func (m *MockUserUseCase) Login(
	ctx context.Context,
	email, password string,
) (*userUseCase.LoginOutput, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*userUseCase.LoginOutput), args.Error(1)
}

// Get mocks the Get method of UserUseCase.
func (m *MockUserUseCase) Get(ctx context.Context, id uuid.UUID) (*userDomain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*userDomain.User), args.Error(1)
}

// MockSessionTokenCodec is a mock implementation of SessionTokenCodec for testing.
type MockSessionTokenCodec struct {
	mock.Mock
}

// Encode mocks the Encode method of SessionTokenCodec.
func (m *MockSessionTokenCodec) Encode(userID uuid.UUID) (string, error) {
	args := m.Called(userID)
	return args.String(0), args.Error(1)
}

// Decode mocks the Decode method of SessionTokenCodec.
func (m *MockSessionTokenCodec) Decode(token string) (uuid.UUID, error) {
	args := m.Called(token)
	return args.Get(0).(uuid.UUID), args.Error(1)
}
