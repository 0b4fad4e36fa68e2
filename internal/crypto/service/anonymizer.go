package service

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// sha256Anonymizer implements Anonymizer using unsalted SHA-256.
//
// The digest is deterministic by design: it exists so two independently
// captured identity records can be joined by equality without storing
// plaintext. It offers no brute-force resistance for low-entropy inputs and
// must never be used in place of a password hash.
type sha256Anonymizer struct{}

// NewSHA256Anonymizer creates the deterministic anonymization hasher.
func NewSHA256Anonymizer() Anonymizer {
	return &sha256Anonymizer{}
}

// Hash digests an opaque identifier. The value is trimmed before hashing so
// incidental whitespace does not split records.
func (s *sha256Anonymizer) Hash(value string) string {
	return digest(strings.TrimSpace(value))
}

// HashEmail digests an email address. Emails are trimmed and lower-cased
// first: "A@B.com" and " a@b.com " produce the same digest.
func (s *sha256Anonymizer) HashEmail(value string) string {
	return digest(strings.ToLower(strings.TrimSpace(value)))
}

// digest renders the SHA-256 of the input as 64 lowercase hex characters.
func digest(value string) string {
	sum := sha256.Sum256([]byte(value))
	return hex.EncodeToString(sum[:])
}
