package commands

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"io"
)

// secretBytes is the generated secret length. Matches the minimum the startup
// validation accepts.
const secretBytes = 32

// RunGenSecret generates a cryptographically secure random secret and writes
// it in base64 form, ready to paste into TRUST_TOKEN_SECRET or
// GATEWAY_SIGNATURE_SECRET.
func RunGenSecret(w io.Writer) error {
	secret := make([]byte, secretBytes)
	if _, err := rand.Read(secret); err != nil {
		return fmt.Errorf("failed to generate secret: %w", err)
	}

	_, err := fmt.Fprintln(w, base64.StdEncoding.EncodeToString(secret))
	return err
}

// RunGenPIIKey generates a 32-byte PII encryption key and writes it in the
// "version:base64key" form PII_KEYS expects.
func RunGenPIIKey(w io.Writer, version uint) error {
	key := make([]byte, secretBytes)
	if _, err := rand.Read(key); err != nil {
		return fmt.Errorf("failed to generate key: %w", err)
	}

	_, err := fmt.Fprintf(w, "%d:%s\n", version, base64.StdEncoding.EncodeToString(key))
	return err
}
