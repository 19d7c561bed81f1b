// Package domain defines the core domain model for encrypted vault items.
// Owners store credentials, notes, and wallet material; payloads are sealed
// with an AEAD cipher at rest and only decrypted when an approved release is
// viewed by a recipient.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Vault item types.
const (
	// ItemTypeLogin holds website or service credentials.
	ItemTypeLogin = "login"
	// ItemTypeSecureNote holds free-form sensitive text.
	ItemTypeSecureNote = "secure_note"
	// ItemTypeCryptoWallet holds wallet seed phrases or keys.
	ItemTypeCryptoWallet = "crypto_wallet"
)

// ItemTypes lists the accepted vault item types.
var ItemTypes = []string{ItemTypeLogin, ItemTypeSecureNote, ItemTypeCryptoWallet}

// IsValidItemType reports whether the given type is accepted.
func IsValidItemType(itemType string) bool {
	for _, t := range ItemTypes {
		if t == itemType {
			return true
		}
	}
	return false
}

// VaultItem represents an encrypted item owned by an account owner.
type VaultItem struct {
	// ID is the unique identifier for the vault item.
	ID uuid.UUID
	// OwnerID is the account owner the item belongs to.
	OwnerID uuid.UUID
	// Title is the plaintext display title.
	Title string
	// Type is one of the accepted item types.
	Type string
	// EncryptedPayload is the sealed payload encoded as
	// base64url(nonce || ciphertext). The plaintext never touches the
	// database.
	EncryptedPayload string
	// CreatedAt is the UTC timestamp when the item was created.
	CreatedAt time.Time
}
