package service

import (
	"encoding/base64"
	"encoding/json"

	apperrors "github.com/lifekey/lifekey/internal/errors"
	"github.com/lifekey/lifekey/internal/vault/domain"
)

// Supported cipher algorithm names for configuration.
const (
	AlgorithmAESGCM           = "aes-gcm"
	AlgorithmChaCha20Poly1305 = "chacha20-poly1305"
)

// aeadPayloadCipher seals vault payloads with an AEAD cipher. The sealed form
// is base64url(nonce || ciphertext) so a single string column carries
// everything needed for decryption.
type aeadPayloadCipher struct {
	aead AEAD
}

// NewPayloadCipher creates a PayloadCipher backed by the named algorithm.
// The key must be 32 bytes. Unknown algorithm names return an error.
func NewPayloadCipher(algorithm string, key []byte) (PayloadCipher, error) {
	var aead AEAD
	var err error

	switch algorithm {
	case AlgorithmAESGCM:
		aead, err = NewAESGCM(key)
	case AlgorithmChaCha20Poly1305:
		aead, err = NewChaCha20Poly1305(key)
	default:
		return nil, apperrors.Wrap(apperrors.ErrInvalidInput, "unknown cipher algorithm: "+algorithm)
	}
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to create payload cipher")
	}

	return &aeadPayloadCipher{aead: aead}, nil
}

// EncryptPayload serializes the payload as JSON, seals it, and returns
// base64url(nonce || ciphertext).
func (p *aeadPayloadCipher) EncryptPayload(payload map[string]any) (string, error) {
	plaintext, err := json.Marshal(payload)
	if err != nil {
		return "", apperrors.Wrap(err, "failed to serialize payload")
	}

	ciphertext, nonce, err := p.aead.Encrypt(plaintext, nil)
	if err != nil {
		return "", apperrors.Wrap(err, "failed to seal payload")
	}

	sealed := make([]byte, 0, len(nonce)+len(ciphertext))
	sealed = append(sealed, nonce...)
	sealed = append(sealed, ciphertext...)

	return base64.URLEncoding.EncodeToString(sealed), nil
}

// DecryptPayload decodes and opens a sealed payload. Any decode or
// authentication failure maps to ErrPayloadIntegrity; plaintext is never
// partially returned.
func (p *aeadPayloadCipher) DecryptPayload(sealed string) (map[string]any, error) {
	raw, err := base64.URLEncoding.DecodeString(sealed)
	if err != nil {
		return nil, domain.ErrPayloadIntegrity
	}

	// 12-byte nonce for both supported algorithms
	const nonceSize = 12
	if len(raw) < nonceSize {
		return nil, domain.ErrPayloadIntegrity
	}

	plaintext, err := p.aead.Decrypt(raw[nonceSize:], raw[:nonceSize], nil)
	if err != nil {
		return nil, domain.ErrPayloadIntegrity
	}

	var payload map[string]any
	if err := json.Unmarshal(plaintext, &payload); err != nil {
		return nil, domain.ErrPayloadIntegrity
	}

	return payload, nil
}
