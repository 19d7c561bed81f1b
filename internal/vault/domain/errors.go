package domain

import (
	"github.com/lifekey/lifekey/internal/errors"
)

// Vault-specific error definitions.
var (
	// ErrVaultItemNotFound indicates no vault item exists with the given
	// identifier, or the caller does not own it.
	ErrVaultItemNotFound = errors.Wrap(errors.ErrNotFound, "vault item not found")

	// ErrInvalidItemType indicates an unaccepted vault item type.
	ErrInvalidItemType = errors.Wrap(errors.ErrInvalidInput, "invalid vault item type")

	// ErrPayloadIntegrity indicates a stored payload failed AEAD
	// authentication during decryption. The payload is never partially
	// returned.
	ErrPayloadIntegrity = errors.New("vault payload failed integrity check")
)
