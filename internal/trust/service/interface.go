// Package service implements the trust protocol services: token issuance and
// validation, gateway request signing, and the core-side inbound validator.
package service

import (
	"net/http"
	"time"

	trustDomain "github.com/civicgate/trustplane/internal/trust/domain"
)

// TokenService issues and validates the bearer trust token.
//
// Both operations are pure functions over the token and the signing secret;
// there is no server-side token state.
type TokenService interface {
	// Issue mints a signed token for the given claims. Scopes may be nil.
	Issue(subject string, role trustDomain.Role, apiKey string, scopes []string) (string, *trustDomain.TokenClaims, error)

	// Validate decodes and verifies a token, returning its claims. Failures
	// are typed (expired, malformed, bad signature) for internal logging;
	// callers must treat every failure as the same denial.
	Validate(token string) (*trustDomain.TokenClaims, error)
}

// RequestSigner computes the gateway-side signature over a forwarded request.
type RequestSigner interface {
	// Sign computes the Base64 HMAC-SHA256 over the canonical signed fields.
	Sign(request trustDomain.SignedRequest) string

	// Annotate signs the request described by (method, path, subject, role)
	// at the given time and injects the signature plus supporting headers.
	Annotate(header http.Header, method, path, subject string, role trustDomain.Role, now time.Time)
}

// RequestValidator is the core-side admission check for forwarded requests.
type RequestValidator interface {
	// IsPublicPath reports whether the path is on the unauthenticated
	// allow-list and may be admitted without metadata.
	IsPublicPath(path string) bool

	// Validate runs the admission chain over the presented metadata and
	// returns the validated identity or the first failure. Every failure
	// short-circuits; there is no partial admission.
	Validate(header http.Header, method, path string, now time.Time) (*Identity, error)
}

// Identity is the validated caller identity the core attaches to a request.
type Identity struct {
	Subject string
	Role    trustDomain.Role
	APIKey  string
}
