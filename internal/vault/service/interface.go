// Package service provides the AEAD ciphers and payload codec used to seal
// vault item payloads at rest.
package service

// AEAD defines the interface for Authenticated Encryption with Associated Data.
type AEAD interface {
	// Encrypt encrypts plaintext and returns the ciphertext (with
	// authentication tag appended) and the randomly generated nonce.
	Encrypt(plaintext, aad []byte) (ciphertext, nonce []byte, err error)

	// Decrypt verifies the authentication tag and returns the plaintext.
	Decrypt(ciphertext, nonce, aad []byte) ([]byte, error)
}

// PayloadCipher seals and opens vault item payloads.
type PayloadCipher interface {
	// EncryptPayload serializes the payload and seals it, returning
	// base64url(nonce || ciphertext).
	EncryptPayload(payload map[string]any) (string, error)

	// DecryptPayload opens a sealed payload. Returns an integrity error if
	// the ciphertext fails authentication; no partial plaintext is ever
	// returned.
	DecryptPayload(sealed string) (map[string]any, error)
}
