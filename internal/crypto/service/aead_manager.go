package service

import (
	cryptoDomain "github.com/civicgate/trustplane/internal/crypto/domain"
)

// aeadManager implements CipherFactory, dispatching on the configured algorithm.
type aeadManager struct{}

// NewAEADManager creates a CipherFactory that supports AES-256-GCM and
// ChaCha20-Poly1305.
func NewAEADManager() CipherFactory {
	return &aeadManager{}
}

// CreateCipher creates an AEAD cipher for the given key and algorithm.
// Returns ErrInvalidKeySize for keys that are not 32 bytes and
// ErrUnsupportedAlgorithm for unknown algorithms.
func (m *aeadManager) CreateCipher(
	key []byte,
	algorithm cryptoDomain.Algorithm,
) (AEADCipher, error) {
	if len(key) != cryptoDomain.KeySize {
		return nil, cryptoDomain.ErrInvalidKeySize
	}

	switch algorithm {
	case cryptoDomain.AESGCM:
		return NewAESGCM(key)
	case cryptoDomain.ChaCha20:
		return NewChaCha20Poly1305(key)
	default:
		return nil, cryptoDomain.ErrUnsupportedAlgorithm
	}
}
