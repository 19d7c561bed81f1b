package usecase

import (
	"context"
	"time"

	validation "github.com/jellydator/validation"

	"github.com/google/uuid"

	auditDomain "github.com/lifekey/lifekey/internal/audit/domain"
	auditUseCase "github.com/lifekey/lifekey/internal/audit/usecase"
	"github.com/lifekey/lifekey/internal/database"
	apperrors "github.com/lifekey/lifekey/internal/errors"
	appValidation "github.com/lifekey/lifekey/internal/validation"
	"github.com/lifekey/lifekey/internal/vault/domain"
	"github.com/lifekey/lifekey/internal/vault/service"
)

// vaultUseCase handles owner-scoped vault item operations.
type vaultUseCase struct {
	txManager     database.TxManager
	vaultItemRepo VaultItemRepository
	payloadCipher service.PayloadCipher
	auditUseCase  auditUseCase.AuditUseCase
}

// NewVaultUseCase creates a new VaultUseCase with the provided dependencies.
func NewVaultUseCase(
	txManager database.TxManager,
	vaultItemRepo VaultItemRepository,
	payloadCipher service.PayloadCipher,
	auditUseCase auditUseCase.AuditUseCase,
) VaultUseCase {
	return &vaultUseCase{
		txManager:     txManager,
		vaultItemRepo: vaultItemRepo,
		payloadCipher: payloadCipher,
		auditUseCase:  auditUseCase,
	}
}

// validateCreateItemInput validates vault item creation input.
func (uc *vaultUseCase) validateCreateItemInput(input *CreateItemInput) error {
	err := validation.ValidateStruct(input,
		validation.Field(&input.Title,
			validation.Required.Error("title is required"),
			appValidation.NotBlank,
			validation.Length(1, 255).Error("title must be between 1 and 255 characters"),
		),
		validation.Field(&input.Type,
			validation.Required.Error("type is required"),
			validation.In(domain.ItemTypeLogin, domain.ItemTypeSecureNote, domain.ItemTypeCryptoWallet).
				Error("type must be one of: login, secure_note, crypto_wallet"),
		),
		validation.Field(&input.Payload,
			validation.Required.Error("payload is required"),
		),
	)
	return appValidation.WrapValidationError(err)
}

// CreateItem seals the payload and stores a new vault item, recording a
// creation audit event in the same transaction. The plaintext payload never
// reaches the repository.
func (uc *vaultUseCase) CreateItem(
	ctx context.Context,
	ownerID uuid.UUID,
	input *CreateItemInput,
) (*domain.VaultItem, error) {
	if err := uc.validateCreateItemInput(input); err != nil {
		return nil, err
	}

	sealed, err := uc.payloadCipher.EncryptPayload(input.Payload)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to seal vault payload")
	}

	item := &domain.VaultItem{
		ID:               uuid.Must(uuid.NewV7()),
		OwnerID:          ownerID,
		Title:            input.Title,
		Type:             input.Type,
		EncryptedPayload: sealed,
		CreatedAt:        time.Now().UTC(),
	}

	err = uc.txManager.WithTx(ctx, func(ctx context.Context) error {
		if err := uc.vaultItemRepo.Create(ctx, item); err != nil {
			return err
		}

		return uc.auditUseCase.Record(
			ctx,
			"user:"+ownerID.String(),
			auditDomain.ActionVaultItemCreated,
			auditDomain.TargetTypeVaultItem,
			item.ID.String(),
			map[string]any{"title": item.Title, "type": item.Type},
		)
	})
	if err != nil {
		return nil, err
	}

	return item, nil
}

// ListItems retrieves the owner's vault items, newest first.
func (uc *vaultUseCase) ListItems(
	ctx context.Context,
	ownerID uuid.UUID,
	offset, limit int,
) ([]*domain.VaultItem, error) {
	return uc.vaultItemRepo.ListByOwner(ctx, ownerID, offset, limit)
}

// GetItem retrieves a single vault item owned by the caller. Items owned by
// someone else return ErrVaultItemNotFound rather than a forbidden error so
// item existence is not leaked.
func (uc *vaultUseCase) GetItem(ctx context.Context, ownerID, itemID uuid.UUID) (*domain.VaultItem, error) {
	item, err := uc.vaultItemRepo.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item.OwnerID != ownerID {
		return nil, domain.ErrVaultItemNotFound
	}
	return item, nil
}

// DeleteItem removes a vault item owned by the caller and records a deletion
// audit event in the same transaction.
func (uc *vaultUseCase) DeleteItem(ctx context.Context, ownerID, itemID uuid.UUID) error {
	return uc.txManager.WithTx(ctx, func(ctx context.Context) error {
		if err := uc.vaultItemRepo.Delete(ctx, itemID, ownerID); err != nil {
			return err
		}

		return uc.auditUseCase.Record(
			ctx,
			"user:"+ownerID.String(),
			auditDomain.ActionVaultItemDeleted,
			auditDomain.TargetTypeVaultItem,
			itemID.String(),
			nil,
		)
	})
}
