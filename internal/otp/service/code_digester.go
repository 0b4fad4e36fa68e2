package service

import (
	"crypto/hmac"
	"crypto/sha256"
	"fmt"
	"io"

	"golang.org/x/crypto/hkdf"

	"github.com/civicgate/trustplane/internal/errors"
)

// digestKeyInfo is the HKDF info string binding the derived key to code
// digesting. Changing it invalidates all pending challenges.
const digestKeyInfo = "otp-code-digest-v1"

// minDigestSecretBytes is the minimum secret size accepted for key derivation.
const minDigestSecretBytes = 32

// hmacCodeDigester digests codes with HMAC-SHA256 under a key derived from
// the process secret. A plain hash of a short numeric code would be trivially
// brute-forced from the stored digest; the keyed digest is not.
type hmacCodeDigester struct {
	key []byte
}

// NewCodeDigester derives the digest key from secret and returns a digester.
// Returns an error when the secret is shorter than 32 bytes.
func NewCodeDigester(secret []byte) (CodeDigester, error) {
	if len(secret) < minDigestSecretBytes {
		return nil, errors.Wrap(errors.ErrConfiguration, "otp digest secret must be at least 32 bytes")
	}

	key := make([]byte, sha256.Size)
	reader := hkdf.New(sha256.New, secret, nil, []byte(digestKeyInfo))
	if _, err := io.ReadFull(reader, key); err != nil {
		return nil, fmt.Errorf("failed to derive otp digest key: %w", err)
	}

	return &hmacCodeDigester{key: key}, nil
}

// Digest computes HMAC-SHA256 over the destination and code. Binding the
// destination prevents a digest stored for one destination from verifying a
// code sent to another.
func (d *hmacCodeDigester) Digest(destination, code string) []byte {
	mac := hmac.New(sha256.New, d.key)
	mac.Write([]byte(destination))
	mac.Write([]byte{0})
	mac.Write([]byte(code))
	return mac.Sum(nil)
}

// Compare recomputes the digest and compares in constant time.
func (d *hmacCodeDigester) Compare(destination, code string, digest []byte) bool {
	return hmac.Equal(d.Digest(destination, code), digest)
}
