package commands

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"io"
)

// RunCreateVaultKey generates a cryptographically secure 32-byte key for vault
// payload encryption and prints it base64-encoded, ready to paste into the
// VAULT_ENCRYPTION_KEY environment variable.
func RunCreateVaultKey(w io.Writer) error {
	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		return fmt.Errorf("failed to generate vault key: %w", err)
	}

	encoded := base64.StdEncoding.EncodeToString(key)

	if _, err := fmt.Fprintf(w, "VAULT_ENCRYPTION_KEY=\"%s\"\n", encoded); err != nil {
		return fmt.Errorf("failed to write vault key: %w", err)
	}

	return nil
}
