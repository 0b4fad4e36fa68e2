package service

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"fmt"

	cryptoDomain "github.com/civicgate/trustplane/internal/crypto/domain"
)

// AESGCMCipher implements AEADCipher using AES-256-GCM.
//
// Security properties:
//   - 256-bit key size
//   - 12-byte nonce (96 bits, randomly generated per encryption)
//   - 16-byte authentication tag appended to the ciphertext
//
// Nonce reuse under the same GCM key is a catastrophic confidentiality
// failure, so every Encrypt call draws a fresh nonce from crypto/rand.
//
// Thread safety: the cipher instance is stateless and safe for concurrent use
// from multiple goroutines.
type AESGCMCipher struct {
	aead cipher.AEAD
}

// NewAESGCM creates a new AES-256-GCM cipher instance.
//
// The key must be exactly 32 bytes (256 bits). Keys should be generated using
// crypto/rand.
func NewAESGCM(key []byte) (*AESGCMCipher, error) {
	if len(key) != cryptoDomain.KeySize {
		return nil, cryptoDomain.ErrInvalidKeySize
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create AES cipher: %w", err)
	}

	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}

	return &AESGCMCipher{aead: aead}, nil
}

// Encrypt encrypts plaintext using AES-256-GCM with optional additional
// authenticated data.
//
// The AAD is authenticated but not encrypted, binding the ciphertext to its
// context (here: the key version) so a blob cannot be replayed under a
// different version even if intercepted. Pass nil when no context is needed.
//
// The returned ciphertext includes the 16-byte authentication tag appended to
// the end; the nonce must be stored alongside it for later decryption.
func (a *AESGCMCipher) Encrypt(plaintext, aad []byte) (ciphertext, nonce []byte, err error) {
	nonce = make([]byte, a.aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return nil, nil, fmt.Errorf("failed to generate nonce: %w", err)
	}

	ciphertext = a.aead.Seal(nil, nonce, plaintext, aad)
	return ciphertext, nonce, nil
}

// Decrypt decrypts ciphertext using AES-256-GCM with the provided nonce and AAD.
//
// The authentication tag is verified before any plaintext is returned; a
// tampered or truncated ciphertext, a wrong key, or mismatched AAD all fail
// with ErrDecryptionFailed rather than returning corrupted plaintext.
func (a *AESGCMCipher) Decrypt(ciphertext, nonce, aad []byte) ([]byte, error) {
	plaintext, err := a.aead.Open(nil, nonce, ciphertext, aad)
	if err != nil {
		return nil, cryptoDomain.ErrDecryptionFailed
	}
	return plaintext, nil
}
