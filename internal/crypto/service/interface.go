// Package service implements the PII protection services: AEAD ciphers, the
// versioned PII encryptor, and the deterministic anonymization hasher.
package service

import (
	cryptoDomain "github.com/civicgate/trustplane/internal/crypto/domain"
)

// AEADCipher provides authenticated encryption with associated data.
//
// Implementations must generate a fresh random nonce per Encrypt call and must
// verify the authentication tag before returning plaintext from Decrypt.
type AEADCipher interface {
	// Encrypt encrypts plaintext and returns the ciphertext (with the
	// authentication tag appended) and the nonce used.
	Encrypt(plaintext, aad []byte) (ciphertext, nonce []byte, err error)

	// Decrypt authenticates and decrypts ciphertext. It returns an error,
	// never partial plaintext, when authentication fails.
	Decrypt(ciphertext, nonce, aad []byte) ([]byte, error)
}

// CipherFactory creates AEAD cipher instances for a given key and algorithm.
type CipherFactory interface {
	CreateCipher(key []byte, algorithm cryptoDomain.Algorithm) (AEADCipher, error)
}

// Encryptor protects PII values with the active versioned key.
//
// Encrypt always uses the active key version; Decrypt accepts any loaded
// version so that ciphertexts survive a key rotation until they are
// re-encrypted out of band.
type Encryptor interface {
	Encrypt(plaintext []byte) (cryptoDomain.EncryptedBlob, error)
	Decrypt(blob cryptoDomain.EncryptedBlob) ([]byte, error)
	EncryptString(plaintext string) (string, error)
	DecryptString(content string) (string, error)
}

// Anonymizer computes deterministic one-way digests for equality lookup of
// sensitive values without storing plaintext. Not a password hash: no salt,
// no work factor.
type Anonymizer interface {
	// Hash digests an opaque identifier (trimmed before hashing).
	Hash(value string) string

	// HashEmail digests an email address (trimmed and lower-cased so that
	// independently captured records join on equality).
	HashEmail(value string) string
}
