// Package domain defines PII protection domain models.
package domain

// Algorithm represents the AEAD algorithm used to protect PII at rest.
//
// Both supported algorithms provide authenticated encryption: confidentiality
// plus tamper detection. A forged or modified ciphertext fails authentication
// instead of decrypting to garbage.
type Algorithm string

const (
	// AESGCM represents the AES-256-GCM authenticated encryption algorithm.
	// Default choice; hardware-accelerated on CPUs with AES-NI.
	AESGCM Algorithm = "aes-gcm"

	// ChaCha20 represents the ChaCha20-Poly1305 authenticated encryption
	// algorithm. Constant-time in software; preferred on CPUs without AES-NI.
	ChaCha20 Algorithm = "chacha20-poly1305"
)

// KeySize is the required key length in bytes for both supported algorithms.
const KeySize = 32

// DigestLength is the length of an anonymization digest in hex characters.
const DigestLength = 64
