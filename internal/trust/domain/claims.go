package domain

import (
	"time"
)

// TokenClaims is the fixed claim set of a trust token.
//
// Claims are immutable once issued; changing any of them requires issuing a
// new token. There is no server-side revocation list: a token dies by client
// discard or natural expiry.
type TokenClaims struct {
	// Subject is the opaque identifier of the authenticated principal.
	Subject string

	// Role is the principal's role within the closed enum.
	Role Role

	// APIKey is the internal service identifier the token was minted for.
	APIKey string

	// Scopes is the optional set of fine-grained scopes.
	Scopes []string

	// IssuedAt is the issue time.
	IssuedAt time.Time

	// ExpiresAt is the expiry time.
	ExpiresAt time.Time
}

// HasScope reports whether the claim set carries the given scope.
func (c *TokenClaims) HasScope(scope string) bool {
	for _, s := range c.Scopes {
		if s == scope {
			return true
		}
	}
	return false
}
