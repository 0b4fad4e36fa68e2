package service

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"net/http"
	"strconv"
	"strings"
	"time"

	trustDomain "github.com/civicgate/trustplane/internal/trust/domain"
)

// DefaultPublicPathPrefixes is the fixed allow-list of unauthenticated routes:
// health probes, the primary authentication surface, callback webhooks, and
// static assets.
var DefaultPublicPathPrefixes = []string{
	"/health",
	"/ready",
	"/v1/auth/",
	"/webhooks/",
	"/static/",
}

// DefaultRolePathPrefixes is the role-to-path-prefix authorization matrix.
// An unmatched (role, path) combination is denied.
var DefaultRolePathPrefixes = map[trustDomain.Role][]string{
	trustDomain.RoleAdmin:   {"/admin/", "/staff/"},
	trustDomain.RoleAnalyst: {"/staff/"},
	trustDomain.RoleCitizen: {"/complaint/"},
}

// requestValidator implements RequestValidator.
//
// Admission chain per request: public-path check, metadata presence,
// freshness window, constant-time signature comparison, role-to-path
// authorization. Any failing step short-circuits the chain.
type requestValidator struct {
	key         []byte
	maxSkew     time.Duration
	publicPaths []string
	rolePaths   map[trustDomain.Role][]string
}

// NewRequestValidator creates the core-side inbound validator.
//
// The secret must be the same shared secret the gateway signs with, and the
// freshness window must be the single deployment-wide value; fails closed on
// a short secret.
func NewRequestValidator(
	secret string,
	maxSkew time.Duration,
	publicPaths []string,
	rolePaths map[trustDomain.Role][]string,
) (RequestValidator, error) {
	key, err := deriveSigningKey(secret)
	if err != nil {
		return nil, err
	}

	if publicPaths == nil {
		publicPaths = DefaultPublicPathPrefixes
	}
	if rolePaths == nil {
		rolePaths = DefaultRolePathPrefixes
	}

	return &requestValidator{
		key:         key,
		maxSkew:     maxSkew,
		publicPaths: publicPaths,
		rolePaths:   rolePaths,
	}, nil
}

// IsPublicPath reports whether the path is on the unauthenticated allow-list.
func (v *requestValidator) IsPublicPath(path string) bool {
	for _, prefix := range v.publicPaths {
		if path == strings.TrimSuffix(prefix, "/") || strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

// Validate runs the admission chain and returns the validated identity or the
// first failure.
func (v *requestValidator) Validate(
	header http.Header,
	method, path string,
	now time.Time,
) (*Identity, error) {
	// Metadata presence. An absent field means the caller is not a known
	// identity at all: forbidden, not unauthorized.
	subject := header.Get(trustDomain.HeaderUserID)
	roleValue := header.Get(trustDomain.HeaderUserRole)
	timestampValue := header.Get(trustDomain.HeaderTimestamp)
	signature := header.Get(trustDomain.HeaderSignature)
	if subject == "" || roleValue == "" || timestampValue == "" || signature == "" {
		return nil, trustDomain.ErrMissingMetadata
	}

	role, err := trustDomain.ParseRole(roleValue)
	if err != nil {
		return nil, trustDomain.ErrMissingMetadata
	}

	timestampMillis, err := strconv.ParseInt(timestampValue, 10, 64)
	if err != nil {
		return nil, trustDomain.ErrMissingMetadata
	}

	// Freshness. A stale (or future-dated) timestamp is rejected regardless
	// of signature validity; this is the replay defense.
	skew := now.UnixMilli() - timestampMillis
	if skew < 0 {
		skew = -skew
	}
	if skew > v.maxSkew.Milliseconds() {
		return nil, trustDomain.ErrReplayRejected
	}

	// Signature. Constant-time comparison; a short-circuiting equality
	// would leak how many leading bytes matched.
	request := trustDomain.SignedRequest{
		Method:          method,
		Path:            path,
		TimestampMillis: timestampMillis,
		Subject:         subject,
		Role:            role,
	}

	mac := hmac.New(sha256.New, v.key)
	mac.Write([]byte(request.Canonical()))
	expected := mac.Sum(nil)

	presented, err := base64.StdEncoding.DecodeString(signature)
	if err != nil {
		return nil, trustDomain.ErrSignatureMismatch
	}
	if !hmac.Equal(expected, presented) {
		return nil, trustDomain.ErrSignatureMismatch
	}

	// Authorization. Role-to-path-prefix matrix; unmatched combinations
	// are denied.
	if !v.roleAllows(role, path) {
		return nil, trustDomain.ErrRoleNotAllowed
	}

	return &Identity{
		Subject: subject,
		Role:    role,
		APIKey:  header.Get(trustDomain.HeaderAPIKey),
	}, nil
}

// roleAllows checks the role-to-path-prefix matrix.
func (v *requestValidator) roleAllows(role trustDomain.Role, path string) bool {
	for _, prefix := range v.rolePaths[role] {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}
