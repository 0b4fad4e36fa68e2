package service

import (
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/civicgate/trustplane/internal/errors"
	trustDomain "github.com/civicgate/trustplane/internal/trust/domain"
)

const testWindow = 300 * time.Second

func newTestValidator(t *testing.T) RequestValidator {
	t.Helper()
	validator, err := NewRequestValidator(testSigningSecret, testWindow, nil, nil)
	require.NoError(t, err)
	return validator
}

// signedHeader builds the header set the gateway would attach.
func signedHeader(
	t *testing.T,
	method, path, subject string,
	role trustDomain.Role,
	at time.Time,
) http.Header {
	t.Helper()
	signer := newTestSigner(t)
	header := http.Header{}
	signer.Annotate(header, method, path, subject, role, at)
	return header
}

func TestNewRequestValidator(t *testing.T) {
	t.Run("short secret fails closed", func(t *testing.T) {
		_, err := NewRequestValidator("short", testWindow, nil, nil)
		assert.ErrorIs(t, err, apperrors.ErrConfiguration)
	})
}

func TestRequestValidator_IsPublicPath(t *testing.T) {
	validator := newTestValidator(t)

	tests := []struct {
		path   string
		public bool
	}{
		{"/health", true},
		{"/ready", true},
		{"/v1/auth/login", true},
		{"/v1/auth/otp/verify", true},
		{"/webhooks/identity", true},
		{"/static/app.css", true},
		{"/staff/cases", false},
		{"/admin/keys", false},
		{"/complaint/new", false},
		{"/", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.public, validator.IsPublicPath(tt.path))
		})
	}
}

func TestRequestValidator_Validate_Admit(t *testing.T) {
	validator := newTestValidator(t)
	now := time.Now()

	header := signedHeader(t, "GET", "/staff/cases", "U1", trustDomain.RoleAnalyst, now)

	identity, err := validator.Validate(header, "GET", "/staff/cases", now.Add(10*time.Second))
	require.NoError(t, err)
	assert.Equal(t, "U1", identity.Subject)
	assert.Equal(t, trustDomain.RoleAnalyst, identity.Role)
	assert.Equal(t, "core-api", identity.APIKey)
}

func TestRequestValidator_Validate_MissingMetadata(t *testing.T) {
	validator := newTestValidator(t)
	now := time.Now()

	full := signedHeader(t, "GET", "/staff/cases", "U1", trustDomain.RoleAnalyst, now)

	for _, missing := range []string{
		trustDomain.HeaderUserID,
		trustDomain.HeaderUserRole,
		trustDomain.HeaderTimestamp,
		trustDomain.HeaderSignature,
	} {
		t.Run("missing "+missing, func(t *testing.T) {
			header := full.Clone()
			header.Del(missing)

			_, err := validator.Validate(header, "GET", "/staff/cases", now)
			assert.ErrorIs(t, err, trustDomain.ErrMissingMetadata)
			assert.ErrorIs(t, err, apperrors.ErrForbidden)
		})
	}

	t.Run("empty header set", func(t *testing.T) {
		_, err := validator.Validate(http.Header{}, "GET", "/staff/cases", now)
		assert.ErrorIs(t, err, trustDomain.ErrMissingMetadata)
	})

	t.Run("role outside the enum", func(t *testing.T) {
		header := full.Clone()
		header.Set(trustDomain.HeaderUserRole, "ROOT")

		_, err := validator.Validate(header, "GET", "/staff/cases", now)
		assert.ErrorIs(t, err, trustDomain.ErrMissingMetadata)
	})

	t.Run("non-numeric timestamp", func(t *testing.T) {
		header := full.Clone()
		header.Set(trustDomain.HeaderTimestamp, "yesterday")

		_, err := validator.Validate(header, "GET", "/staff/cases", now)
		assert.ErrorIs(t, err, trustDomain.ErrMissingMetadata)
	})
}

func TestRequestValidator_Validate_Freshness(t *testing.T) {
	validator := newTestValidator(t)
	t0 := time.Now()

	header := signedHeader(t, "GET", "/staff/cases", "U1", trustDomain.RoleAnalyst, t0)

	t.Run("inside the window is admitted", func(t *testing.T) {
		_, err := validator.Validate(header, "GET", "/staff/cases", t0.Add(299*time.Second))
		assert.NoError(t, err)
	})

	t.Run("just outside the window is rejected", func(t *testing.T) {
		_, err := validator.Validate(header, "GET", "/staff/cases", t0.Add(301*time.Second))
		assert.ErrorIs(t, err, trustDomain.ErrReplayRejected)
		assert.ErrorIs(t, err, apperrors.ErrForbidden)
	})

	t.Run("future-dated timestamp is rejected", func(t *testing.T) {
		_, err := validator.Validate(header, "GET", "/staff/cases", t0.Add(-301*time.Second))
		assert.ErrorIs(t, err, trustDomain.ErrReplayRejected)
	})

	t.Run("stale request is rejected even with a valid signature", func(t *testing.T) {
		// The signature itself still verifies: freshness is checked first
		// so a captured request cannot be replayed after the window.
		_, err := validator.Validate(header, "GET", "/staff/cases", t0.Add(time.Hour))
		assert.ErrorIs(t, err, trustDomain.ErrReplayRejected)
	})
}

func TestRequestValidator_Validate_Signature(t *testing.T) {
	validator := newTestValidator(t)
	now := time.Now()

	t.Run("wrong secret is rejected with a fresh timestamp", func(t *testing.T) {
		otherSigner, err := NewRequestSigner(strings.Repeat("w", 32), "core-api")
		require.NoError(t, err)

		header := http.Header{}
		otherSigner.Annotate(header, "GET", "/staff/cases", "U1", trustDomain.RoleAnalyst, now)

		_, err = validator.Validate(header, "GET", "/staff/cases", now)
		assert.ErrorIs(t, err, trustDomain.ErrSignatureMismatch)
	})

	t.Run("signed fields cannot be swapped after signing", func(t *testing.T) {
		header := signedHeader(t, "GET", "/complaint/new", "U2", trustDomain.RoleCitizen, now)
		header.Set(trustDomain.HeaderUserRole, string(trustDomain.RoleAdmin))

		_, err := validator.Validate(header, "GET", "/complaint/new", now)
		assert.ErrorIs(t, err, trustDomain.ErrSignatureMismatch)
	})

	t.Run("signature for one path does not admit another", func(t *testing.T) {
		header := signedHeader(t, "GET", "/staff/cases", "U1", trustDomain.RoleAnalyst, now)

		_, err := validator.Validate(header, "GET", "/staff/export", now)
		assert.ErrorIs(t, err, trustDomain.ErrSignatureMismatch)
	})

	t.Run("signature that is not base64 is rejected", func(t *testing.T) {
		header := signedHeader(t, "GET", "/staff/cases", "U1", trustDomain.RoleAnalyst, now)
		header.Set(trustDomain.HeaderSignature, "!!not-base64!!")

		_, err := validator.Validate(header, "GET", "/staff/cases", now)
		assert.ErrorIs(t, err, trustDomain.ErrSignatureMismatch)
	})
}

func TestRequestValidator_Validate_Authorization(t *testing.T) {
	validator := newTestValidator(t)
	now := time.Now()

	tests := []struct {
		role    trustDomain.Role
		path    string
		allowed bool
	}{
		{trustDomain.RoleAdmin, "/admin/keys", true},
		{trustDomain.RoleAdmin, "/staff/cases", true},
		{trustDomain.RoleAdmin, "/complaint/new", false},
		{trustDomain.RoleAnalyst, "/staff/cases", true},
		{trustDomain.RoleAnalyst, "/admin/keys", false},
		{trustDomain.RoleAnalyst, "/complaint/new", false},
		{trustDomain.RoleCitizen, "/complaint/new", true},
		{trustDomain.RoleCitizen, "/staff/cases", false},
		{trustDomain.RoleCitizen, "/admin/keys", false},
	}

	for _, tt := range tests {
		t.Run(string(tt.role)+" "+tt.path, func(t *testing.T) {
			header := signedHeader(t, "GET", tt.path, "U1", tt.role, now)

			_, err := validator.Validate(header, "GET", tt.path, now)
			if tt.allowed {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, trustDomain.ErrRoleNotAllowed)
				assert.ErrorIs(t, err, apperrors.ErrForbidden)
			}
		})
	}
}

// TestTrustBoundary_EndToEnd exercises the full token-sign-validate flow.
func TestTrustBoundary_EndToEnd(t *testing.T) {
	tokens := newTestTokenService(t)
	validator := newTestValidator(t)

	// Primary authentication issues a token for an analyst.
	token, _, err := tokens.Issue("U1", trustDomain.RoleAnalyst, "core-api", nil)
	require.NoError(t, err)

	// The gateway validates the token and signs the forwarded request.
	claims, err := tokens.Validate(token)
	require.NoError(t, err)

	t0 := time.Now()
	header := signedHeader(t, "GET", "/staff/cases", claims.Subject, claims.Role, t0)

	// Validated 10 seconds later with a 300 second window: admit.
	identity, err := validator.Validate(header, "GET", "/staff/cases", t0.Add(10*time.Second))
	require.NoError(t, err)
	assert.Equal(t, "U1", identity.Subject)

	// Same request replayed after the window: reject.
	_, err = validator.Validate(header, "GET", "/staff/cases", t0.Add(301*time.Second))
	assert.ErrorIs(t, err, trustDomain.ErrReplayRejected)
}
