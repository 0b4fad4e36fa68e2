// Package usecase implements business logic orchestration for the internal
// PII protection endpoints.
package usecase

import "context"

// PIIUseCase exposes the PII protection operations to trusted internal
// callers: versioned encryption, decryption, and deterministic anonymization.
type PIIUseCase interface {
	// Encrypt protects a plaintext value with the active key version and
	// returns the versioned blob string.
	Encrypt(ctx context.Context, plaintext string) (string, error)

	// Decrypt recovers the plaintext from a versioned blob string. A failed
	// authentication or unknown key version is a typed error; the caller
	// never receives a placeholder value.
	Decrypt(ctx context.Context, content string) (string, error)

	// Anonymize returns the deterministic digest of a value for equality
	// lookup. AsEmail selects email normalization (trim plus lower-case).
	Anonymize(ctx context.Context, value string, asEmail bool) (string, error)
}
