package service

import (
	"crypto/cipher"
	"crypto/rand"
	"fmt"

	"golang.org/x/crypto/chacha20poly1305"

	cryptoDomain "github.com/civicgate/trustplane/internal/crypto/domain"
)

// ChaCha20Poly1305Cipher implements AEADCipher using ChaCha20-Poly1305.
//
// Equivalent 256-bit security to AES-256-GCM with a constant-time software
// implementation, making it the better choice on CPUs without AES-NI.
// Nonce handling mirrors AESGCMCipher: 12 bytes, fresh from crypto/rand per
// encryption, never reused under the same key.
type ChaCha20Poly1305Cipher struct {
	aead cipher.AEAD
}

// NewChaCha20Poly1305 creates a new ChaCha20-Poly1305 cipher instance.
// The key must be exactly 32 bytes (256 bits).
func NewChaCha20Poly1305(key []byte) (*ChaCha20Poly1305Cipher, error) {
	if len(key) != cryptoDomain.KeySize {
		return nil, cryptoDomain.ErrInvalidKeySize
	}

	aead, err := chacha20poly1305.New(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create ChaCha20-Poly1305: %w", err)
	}

	return &ChaCha20Poly1305Cipher{aead: aead}, nil
}

// Encrypt encrypts plaintext with a fresh random nonce and optional AAD.
// The returned ciphertext has the 16-byte Poly1305 tag appended.
func (c *ChaCha20Poly1305Cipher) Encrypt(plaintext, aad []byte) (ciphertext, nonce []byte, err error) {
	nonce = make([]byte, c.aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return nil, nil, fmt.Errorf("failed to generate nonce: %w", err)
	}

	ciphertext = c.aead.Seal(nil, nonce, plaintext, aad)
	return ciphertext, nonce, nil
}

// Decrypt authenticates and decrypts ciphertext. Tampering, a wrong key, or
// mismatched AAD fail with ErrDecryptionFailed.
func (c *ChaCha20Poly1305Cipher) Decrypt(ciphertext, nonce, aad []byte) ([]byte, error) {
	plaintext, err := c.aead.Open(nil, nonce, ciphertext, aad)
	if err != nil {
		return nil, cryptoDomain.ErrDecryptionFailed
	}
	return plaintext, nil
}
