package usecase

import (
	"context"

	cryptoService "github.com/civicgate/trustplane/internal/crypto/service"
	"github.com/civicgate/trustplane/internal/errors"
)

// piiUseCase implements PIIUseCase over the crypto services.
type piiUseCase struct {
	encryptor  cryptoService.Encryptor
	anonymizer cryptoService.Anonymizer
}

// NewPIIUseCase creates a new PIIUseCase.
func NewPIIUseCase(
	encryptor cryptoService.Encryptor,
	anonymizer cryptoService.Anonymizer,
) PIIUseCase {
	return &piiUseCase{
		encryptor:  encryptor,
		anonymizer: anonymizer,
	}
}

// Encrypt protects the plaintext with the active key version.
func (u *piiUseCase) Encrypt(ctx context.Context, plaintext string) (string, error) {
	if plaintext == "" {
		return "", errors.Wrap(errors.ErrInvalidInput, "plaintext is required")
	}
	return u.encryptor.EncryptString(plaintext)
}

// Decrypt recovers the plaintext from a versioned blob string.
func (u *piiUseCase) Decrypt(ctx context.Context, content string) (string, error) {
	if content == "" {
		return "", errors.Wrap(errors.ErrInvalidInput, "content is required")
	}
	return u.encryptor.DecryptString(content)
}

// Anonymize returns the deterministic digest of the value.
func (u *piiUseCase) Anonymize(ctx context.Context, value string, asEmail bool) (string, error) {
	if value == "" {
		return "", errors.Wrap(errors.ErrInvalidInput, "value is required")
	}
	if asEmail {
		return u.anonymizer.HashEmail(value), nil
	}
	return u.anonymizer.Hash(value), nil
}
