package usecase

import (
	"context"
	"strings"
	"time"

	validation "github.com/jellydator/validation"

	"github.com/google/uuid"

	auditDomain "github.com/lifekey/lifekey/internal/audit/domain"
	auditUseCase "github.com/lifekey/lifekey/internal/audit/usecase"
	"github.com/lifekey/lifekey/internal/database"
	apperrors "github.com/lifekey/lifekey/internal/errors"
	"github.com/lifekey/lifekey/internal/user/domain"
	"github.com/lifekey/lifekey/internal/user/service"
	appValidation "github.com/lifekey/lifekey/internal/validation"
)

// userUseCase handles account registration and login.
type userUseCase struct {
	txManager       database.TxManager
	userRepo        UserRepository
	auditUseCase    auditUseCase.AuditUseCase
	passwordService service.PasswordService
	sessionCodec    service.SessionTokenCodec
}

// NewUserUseCase creates a new UserUseCase with the provided dependencies.
func NewUserUseCase(
	txManager database.TxManager,
	userRepo UserRepository,
	auditUseCase auditUseCase.AuditUseCase,
	passwordService service.PasswordService,
	sessionCodec service.SessionTokenCodec,
) UserUseCase {
	return &userUseCase{
		txManager:       txManager,
		userRepo:        userRepo,
		auditUseCase:    auditUseCase,
		passwordService: passwordService,
		sessionCodec:    sessionCodec,
	}
}

// validateRegisterInput validates registration input using jellydator/validation.
func (uc *userUseCase) validateRegisterInput(input *RegisterInput) error {
	err := validation.ValidateStruct(input,
		validation.Field(&input.Email,
			validation.Required.Error("email is required"),
			appValidation.NotBlank,
			appValidation.Email,
			validation.Length(5, 255).Error("email must be between 5 and 255 characters"),
		),
		validation.Field(&input.Name,
			validation.Required.Error("name is required"),
			appValidation.NotBlank,
			validation.Length(1, 255).Error("name must be between 1 and 255 characters"),
		),
		validation.Field(&input.Password,
			validation.Required.Error("password is required"),
			validation.Length(8, 128).Error("password must be between 8 and 128 characters"),
		),
	)
	return appValidation.WrapValidationError(err)
}

// Register creates a new account with an argon2id password hash and records
// a registration audit event in the same transaction.
func (uc *userUseCase) Register(ctx context.Context, input *RegisterInput) (*domain.User, error) {
	if err := uc.validateRegisterInput(input); err != nil {
		return nil, err
	}

	hashedPassword, err := uc.passwordService.HashPassword(input.Password)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to hash password")
	}

	user := &domain.User{
		ID:           uuid.Must(uuid.NewV7()),
		Email:        strings.TrimSpace(strings.ToLower(input.Email)),
		Name:         strings.TrimSpace(input.Name),
		PasswordHash: hashedPassword,
		CreatedAt:    time.Now().UTC(),
	}

	err = uc.txManager.WithTx(ctx, func(ctx context.Context) error {
		// Create user - repository will return domain errors
		if err := uc.userRepo.Create(ctx, user); err != nil {
			return err
		}

		return uc.auditUseCase.Record(
			ctx,
			"user:"+user.ID.String(),
			auditDomain.ActionUserRegistered,
			auditDomain.TargetTypeUser,
			user.ID.String(),
			map[string]any{"email": user.Email},
		)
	})
	if err != nil {
		return nil, err
	}

	return user, nil
}

// Login verifies credentials and mints a session capability token.
// Unknown email and wrong password both return ErrInvalidCredentials.
func (uc *userUseCase) Login(ctx context.Context, email, password string) (*LoginOutput, error) {
	user, err := uc.userRepo.GetByEmail(ctx, strings.TrimSpace(strings.ToLower(email)))
	if err != nil {
		if apperrors.Is(err, apperrors.ErrNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, apperrors.Wrap(err, "failed to look up user for login")
	}

	if !uc.passwordService.ComparePassword(password, user.PasswordHash) {
		return nil, domain.ErrInvalidCredentials
	}

	token, err := uc.sessionCodec.Encode(user.ID)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to mint session token")
	}

	return &LoginOutput{Token: token, User: user}, nil
}

// Get retrieves an account owner by ID.
func (uc *userUseCase) Get(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return uc.userRepo.GetByID(ctx, id)
}
