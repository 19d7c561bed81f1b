package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/lifekey/lifekey/internal/metrics"
	"github.com/lifekey/lifekey/internal/vault/domain"
)

// vaultUseCaseWithMetrics decorates VaultUseCase with metrics instrumentation.
type vaultUseCaseWithMetrics struct {
	next    VaultUseCase
	metrics metrics.BusinessMetrics
}

// NewVaultUseCaseWithMetrics wraps a VaultUseCase with metrics recording.
func NewVaultUseCaseWithMetrics(useCase VaultUseCase, m metrics.BusinessMetrics) VaultUseCase {
	return &vaultUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// CreateItem records metrics for vault item creation.
func (v *vaultUseCaseWithMetrics) CreateItem(
	ctx context.Context,
	ownerID uuid.UUID,
	input *CreateItemInput,
) (*domain.VaultItem, error) {
	start := time.Now()
	item, err := v.next.CreateItem(ctx, ownerID, input)

	status := "success"
	if err != nil {
		status = "error"
	}

	v.metrics.RecordOperation(ctx, "vault", "item_create", status)
	v.metrics.RecordDuration(ctx, "vault", "item_create", time.Since(start), status)

	return item, err
}

// ListItems records metrics for vault item listing.
func (v *vaultUseCaseWithMetrics) ListItems(
	ctx context.Context,
	ownerID uuid.UUID,
	offset, limit int,
) ([]*domain.VaultItem, error) {
	start := time.Now()
	items, err := v.next.ListItems(ctx, ownerID, offset, limit)

	status := "success"
	if err != nil {
		status = "error"
	}

	v.metrics.RecordOperation(ctx, "vault", "item_list", status)
	v.metrics.RecordDuration(ctx, "vault", "item_list", time.Since(start), status)

	return items, err
}

// GetItem records metrics for vault item retrieval.
func (v *vaultUseCaseWithMetrics) GetItem(
	ctx context.Context,
	ownerID, itemID uuid.UUID,
) (*domain.VaultItem, error) {
	start := time.Now()
	item, err := v.next.GetItem(ctx, ownerID, itemID)

	status := "success"
	if err != nil {
		status = "error"
	}

	v.metrics.RecordOperation(ctx, "vault", "item_get", status)
	v.metrics.RecordDuration(ctx, "vault", "item_get", time.Since(start), status)

	return item, err
}

// DeleteItem records metrics for vault item deletion.
func (v *vaultUseCaseWithMetrics) DeleteItem(ctx context.Context, ownerID, itemID uuid.UUID) error {
	start := time.Now()
	err := v.next.DeleteItem(ctx, ownerID, itemID)

	status := "success"
	if err != nil {
		status = "error"
	}

	v.metrics.RecordOperation(ctx, "vault", "item_delete", status)
	v.metrics.RecordDuration(ctx, "vault", "item_delete", time.Since(start), status)

	return err
}
