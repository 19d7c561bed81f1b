package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	auditDomain "github.com/lifekey/lifekey/internal/audit/domain"
	apperrors "github.com/lifekey/lifekey/internal/errors"
	"github.com/lifekey/lifekey/internal/user/domain"
)

// MockTxManager is a mock implementation of database.TxManager
type MockTxManager struct {
	mock.Mock
}

func (m *MockTxManager) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	args := m.Called(ctx, fn)
	if args.Get(0) != nil {
		return args.Error(0)
	}
	// Execute the function to test the logic inside
	return fn(ctx)
}

// MockUserRepository is a mock implementation of UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

// MockAuditUseCase is a mock implementation of audit usecase.AuditUseCase
type MockAuditUseCase struct {
	mock.Mock
}

func (m *MockAuditUseCase) Record(
	ctx context.Context,
	actor, action, targetType, targetID string,
	metadata map[string]any,
) error {
	args := m.Called(ctx, actor, action, targetType, targetID, metadata)
	return args.Error(0)
}

func (m *MockAuditUseCase) List(
	ctx context.Context,
	offset, limit int,
) ([]*auditDomain.AuditEvent, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*auditDomain.AuditEvent), args.Error(1)
}

// MockPasswordService is a mock implementation of service.PasswordService
type MockPasswordService struct {
	mock.Mock
}

func (m *MockPasswordService) HashPassword(plainPassword string) (string, error) {
	args := m.Called(plainPassword)
	return args.String(0), args.Error(1)
}

func (m *MockPasswordService) ComparePassword(plainPassword string, hashedPassword string) bool {
	args := m.Called(plainPassword, hashedPassword)
	return args.Bool(0)
}

// MockSessionTokenCodec is a mock implementation of service.SessionTokenCodec
type MockSessionTokenCodec struct {
	mock.Mock
}

func (m *MockSessionTokenCodec) Encode(userID uuid.UUID) (string, error) {
	args := m.Called(userID)
	return args.String(0), args.Error(1)
}

func (m *MockSessionTokenCodec) Decode(token string) (uuid.UUID, error) {
	args := m.Called(token)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func setupUserUseCase() (*MockTxManager, *MockUserRepository, *MockAuditUseCase, *MockPasswordService, *MockSessionTokenCodec, UserUseCase) {
	txManager := new(MockTxManager)
	userRepo := new(MockUserRepository)
	audit := new(MockAuditUseCase)
	passwords := new(MockPasswordService)
	codec := new(MockSessionTokenCodec)
	uc := NewUserUseCase(txManager, userRepo, audit, passwords, codec)
	return txManager, userRepo, audit, passwords, codec, uc
}

func TestUserUseCase_Register(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		txManager, userRepo, audit, passwords, _, uc := setupUserUseCase()

		passwords.On("HashPassword", "s3cretPass!").Return("hashed-password", nil)
		txManager.On("WithTx", mock.Anything, mock.Anything).Return(nil)
		userRepo.On("Create", mock.Anything, mock.MatchedBy(func(user *domain.User) bool {
			return user.Email == "ana@example.com" &&
				user.Name == "Ana Souza" &&
				user.PasswordHash == "hashed-password" &&
				user.ID != uuid.Nil
		})).Return(nil)
		audit.On(
			"Record",
			mock.Anything,
			mock.MatchedBy(func(actor string) bool { return len(actor) > 5 && actor[:5] == "user:" }),
			auditDomain.ActionUserRegistered,
			auditDomain.TargetTypeUser,
			mock.Anything,
			mock.Anything,
		).Return(nil)

		user, err := uc.Register(context.Background(), &RegisterInput{
			Email:    "Ana@Example.com",
			Name:     "  Ana Souza  ",
			Password: "s3cretPass!",
		})
		require.NoError(t, err)
		assert.Equal(t, "ana@example.com", user.Email)
		assert.Equal(t, "Ana Souza", user.Name)
		userRepo.AssertExpectations(t)
		audit.AssertExpectations(t)
	})

	t.Run("InvalidInput", func(t *testing.T) {
		_, userRepo, _, _, _, uc := setupUserUseCase()

		user, err := uc.Register(context.Background(), &RegisterInput{
			Email:    "not-an-email",
			Name:     "Ana",
			Password: "short",
		})
		assert.Nil(t, user)
		assert.True(t, apperrors.Is(err, apperrors.ErrInvalidInput))
		userRepo.AssertNotCalled(t, "Create")
	})

	t.Run("DuplicateEmail", func(t *testing.T) {
		txManager, userRepo, _, passwords, _, uc := setupUserUseCase()

		passwords.On("HashPassword", "s3cretPass!").Return("hashed-password", nil)
		txManager.On("WithTx", mock.Anything, mock.Anything).Return(nil)
		userRepo.On("Create", mock.Anything, mock.Anything).Return(domain.ErrEmailTaken)

		user, err := uc.Register(context.Background(), &RegisterInput{
			Email:    "ana@example.com",
			Name:     "Ana Souza",
			Password: "s3cretPass!",
		})
		assert.Nil(t, user)
		assert.ErrorIs(t, err, domain.ErrEmailTaken)
	})
}

func TestUserUseCase_Login(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		_, userRepo, _, passwords, codec, uc := setupUserUseCase()

		user := &domain.User{
			ID:           uuid.Must(uuid.NewV7()),
			Email:        "ana@example.com",
			Name:         "Ana Souza",
			PasswordHash: "hashed-password",
		}

		userRepo.On("GetByEmail", mock.Anything, "ana@example.com").Return(user, nil)
		passwords.On("ComparePassword", "s3cretPass!", "hashed-password").Return(true)
		codec.On("Encode", user.ID).Return("session-token", nil)

		output, err := uc.Login(context.Background(), "Ana@Example.com", "s3cretPass!")
		require.NoError(t, err)
		assert.Equal(t, "session-token", output.Token)
		assert.Equal(t, user.ID, output.User.ID)
	})

	t.Run("UnknownEmail", func(t *testing.T) {
		_, userRepo, _, _, codec, uc := setupUserUseCase()

		userRepo.On("GetByEmail", mock.Anything, "ghost@example.com").Return(nil, domain.ErrUserNotFound)

		output, err := uc.Login(context.Background(), "ghost@example.com", "whatever1")
		assert.Nil(t, output)
		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
		codec.AssertNotCalled(t, "Encode")
	})

	t.Run("WrongPassword", func(t *testing.T) {
		_, userRepo, _, passwords, codec, uc := setupUserUseCase()

		user := &domain.User{
			ID:           uuid.Must(uuid.NewV7()),
			Email:        "ana@example.com",
			PasswordHash: "hashed-password",
		}

		userRepo.On("GetByEmail", mock.Anything, "ana@example.com").Return(user, nil)
		passwords.On("ComparePassword", "wrong-password", "hashed-password").Return(false)

		output, err := uc.Login(context.Background(), "ana@example.com", "wrong-password")
		assert.Nil(t, output)
		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
		codec.AssertNotCalled(t, "Encode")
	})

	t.Run("RepositoryError", func(t *testing.T) {
		_, userRepo, _, _, _, uc := setupUserUseCase()

		userRepo.On("GetByEmail", mock.Anything, "ana@example.com").Return(nil, errors.New("database error"))

		output, err := uc.Login(context.Background(), "ana@example.com", "s3cretPass!")
		assert.Nil(t, output)
		assert.Error(t, err)
		assert.NotErrorIs(t, err, domain.ErrInvalidCredentials)
	})
}

func TestUserUseCase_Get(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		_, userRepo, _, _, _, uc := setupUserUseCase()

		user := &domain.User{ID: uuid.Must(uuid.NewV7()), Email: "ana@example.com"}
		userRepo.On("GetByID", mock.Anything, user.ID).Return(user, nil)

		got, err := uc.Get(context.Background(), user.ID)
		require.NoError(t, err)
		assert.Equal(t, user.Email, got.Email)
	})

	t.Run("NotFound", func(t *testing.T) {
		_, userRepo, _, _, _, uc := setupUserUseCase()

		id := uuid.Must(uuid.NewV7())
		userRepo.On("GetByID", mock.Anything, id).Return(nil, domain.ErrUserNotFound)

		got, err := uc.Get(context.Background(), id)
		assert.Nil(t, got)
		assert.ErrorIs(t, err, domain.ErrUserNotFound)
	})
}
