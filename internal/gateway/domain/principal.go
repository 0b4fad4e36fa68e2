// Package domain defines the principal directory entities for the gateway's
// authentication surface.
package domain

import (
	"time"

	"github.com/google/uuid"

	"github.com/civicgate/trustplane/internal/errors"
	trustDomain "github.com/civicgate/trustplane/internal/trust/domain"
)

// Principal is a registered account in the gateway directory. PII fields are
// stored encrypted; lookups go through deterministic digests so the
// plaintext email never needs to be indexed.
type Principal struct {
	ID uuid.UUID

	// EmailEncrypted is the versioned ciphertext of the email address.
	EmailEncrypted string

	// EmailDigest is the deterministic digest of the normalized email,
	// used for equality lookup.
	EmailDigest string

	// FullNameEncrypted is the versioned ciphertext of the display name.
	FullNameEncrypted string

	// CedulaDigest is the deterministic digest of the national ID number.
	// The plaintext cedula is never stored.
	CedulaDigest string

	// PasswordHash is the Argon2id hash of the account password.
	PasswordHash string

	// Role is the trust role minted into tokens for this principal.
	Role trustDomain.Role

	// IsActive gates login; a deactivated principal cannot authenticate.
	IsActive bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Domain errors for the principal directory.
var (
	// ErrPrincipalNotFound indicates no principal matches the lookup.
	ErrPrincipalNotFound = errors.Wrap(errors.ErrNotFound, "principal not found")

	// ErrPrincipalExists indicates a registration collides with an existing
	// email digest.
	ErrPrincipalExists = errors.Wrap(errors.ErrInvalidInput, "principal already registered")

	// ErrInvalidCredentials is the single error returned for unknown email,
	// wrong password, and inactive account, so login cannot be used to
	// enumerate principals.
	ErrInvalidCredentials = errors.Wrap(errors.ErrUnauthorized, "invalid credentials")
)
