// Package usecase implements business logic orchestration for the gateway's
// authentication surface: registration, login, OTP verification, and trust
// token minting.
package usecase

import (
	"context"

	"github.com/google/uuid"

	gatewayDomain "github.com/civicgate/trustplane/internal/gateway/domain"
	trustDomain "github.com/civicgate/trustplane/internal/trust/domain"
)

// PrincipalRepository stores the principal directory.
type PrincipalRepository interface {
	// Create stores a new principal. Returns ErrPrincipalExists when the
	// email digest is already registered.
	Create(ctx context.Context, principal *gatewayDomain.Principal) error

	// GetByEmailDigest returns the principal matching the email digest, or
	// ErrPrincipalNotFound.
	GetByEmailDigest(ctx context.Context, emailDigest string) (*gatewayDomain.Principal, error)

	// Get returns the principal by ID, or ErrPrincipalNotFound.
	Get(ctx context.Context, id uuid.UUID) (*gatewayDomain.Principal, error)
}

// RegisterPrincipalInput carries the plaintext registration fields. They are
// encrypted or digested before anything is stored.
type RegisterPrincipalInput struct {
	Email    string
	FullName string
	Cedula   string
	Password string
	Role     trustDomain.Role
}

// AuthUseCase drives the two-step login flow.
type AuthUseCase interface {
	// Register creates a principal with encrypted PII and a hashed password.
	Register(ctx context.Context, input RegisterPrincipalInput) (*gatewayDomain.Principal, error)

	// Login checks the password and dispatches an OTP challenge to the
	// email. Unknown email, wrong password, and inactive account all return
	// ErrInvalidCredentials.
	Login(ctx context.Context, email, password string) error

	// VerifyLogin consumes the OTP challenge and mints a trust token for the
	// principal. Returns the signed token and its claims.
	VerifyLogin(ctx context.Context, email, code string) (string, *trustDomain.TokenClaims, error)
}
