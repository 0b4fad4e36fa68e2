package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	apperrors "github.com/civicgate/trustplane/internal/errors"
	trustDomain "github.com/civicgate/trustplane/internal/trust/domain"
)

// minSecretBytes mirrors the startup contract: a signing secret below this
// length refuses to construct the service.
const minSecretBytes = 32

// trustClaims is the JWT claim layout of a trust token.
type trustClaims struct {
	Role   string   `json:"role"`
	APIKey string   `json:"api_key,omitempty"`
	Scopes []string `json:"scopes,omitempty"`
	jwt.RegisteredClaims
}

// tokenService implements TokenService using HMAC-SHA256 signed JWTs.
type tokenService struct {
	secret     []byte
	expiration time.Duration
	now        func() time.Time
}

// NewTokenService creates the trust token service.
//
// Fails closed when the secret is shorter than 32 bytes; there is no default
// secret to fall back to.
func NewTokenService(secret string, expiration time.Duration) (TokenService, error) {
	if len(secret) < minSecretBytes {
		return nil, apperrors.Wrap(apperrors.ErrConfiguration, "trust token secret too short")
	}

	return &tokenService{
		secret:     []byte(secret),
		expiration: expiration,
		now:        time.Now,
	}, nil
}

// Issue mints a signed, time-limited token for the given claims.
func (t *tokenService) Issue(
	subject string,
	role trustDomain.Role,
	apiKey string,
	scopes []string,
) (string, *trustDomain.TokenClaims, error) {
	if _, err := trustDomain.ParseRole(string(role)); err != nil {
		return "", nil, err
	}

	issuedAt := t.now().UTC()
	expiresAt := issuedAt.Add(t.expiration)

	claims := trustClaims{
		Role:   string(role),
		APIKey: apiKey,
		Scopes: scopes,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
	if err != nil {
		return "", nil, apperrors.Wrap(err, "failed to sign trust token")
	}

	return token, &trustDomain.TokenClaims{
		Subject:   subject,
		Role:      role,
		APIKey:    apiKey,
		Scopes:    scopes,
		IssuedAt:  issuedAt,
		ExpiresAt: expiresAt,
	}, nil
}

// Validate decodes and verifies a token, returning the decoded claims.
//
// The signing secret never appears in the output. Failure kinds are typed so
// internal logs and metrics can distinguish expiry from forgery, but all of
// them wrap the same ErrUnauthorized sentinel.
func (t *tokenService) Validate(token string) (*trustDomain.TokenClaims, error) {
	var claims trustClaims

	parsed, err := jwt.ParseWithClaims(
		token,
		&claims,
		func(*jwt.Token) (any, error) { return t.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(t.now),
	)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, trustDomain.ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return nil, trustDomain.ErrTokenBadSignature
		default:
			return nil, trustDomain.ErrTokenMalformed
		}
	}
	if !parsed.Valid {
		return nil, trustDomain.ErrTokenBadSignature
	}

	role, err := trustDomain.ParseRole(claims.Role)
	if err != nil {
		return nil, trustDomain.ErrTokenMalformed
	}
	if claims.Subject == "" {
		return nil, trustDomain.ErrTokenMalformed
	}
	if claims.IssuedAt == nil || claims.ExpiresAt == nil {
		return nil, trustDomain.ErrTokenMalformed
	}

	return &trustDomain.TokenClaims{
		Subject:   claims.Subject,
		Role:      role,
		APIKey:    claims.APIKey,
		Scopes:    claims.Scopes,
		IssuedAt:  claims.IssuedAt.Time,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}
