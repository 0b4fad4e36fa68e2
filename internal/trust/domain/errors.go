package domain

import (
	"github.com/civicgate/trustplane/internal/errors"
)

// Trust protocol error definitions.
//
// Token validation failures are typed for internal logging and metrics, but
// every one of them must surface to the caller as the same generic denial.
// Branching on the failure kind for an authorization decision re-opens the
// oracle this taxonomy exists to close.
var (
	// ErrTokenExpired indicates the trust token is past its expiry.
	ErrTokenExpired = errors.Wrap(errors.ErrUnauthorized, "trust token expired")

	// ErrTokenMalformed indicates the trust token could not be decoded.
	ErrTokenMalformed = errors.Wrap(errors.ErrUnauthorized, "trust token malformed")

	// ErrTokenBadSignature indicates the trust token signature did not verify.
	ErrTokenBadSignature = errors.Wrap(errors.ErrUnauthorized, "trust token signature invalid")

	// ErrInvalidRole indicates a role outside the closed enum.
	ErrInvalidRole = errors.Wrap(errors.ErrInvalidInput, "invalid role")

	// ErrMissingMetadata indicates one or more signed request headers are
	// absent. The caller is not a known identity, so this is forbidden,
	// not unauthorized.
	ErrMissingMetadata = errors.Wrap(errors.ErrForbidden, "missing gateway metadata")

	// ErrReplayRejected indicates a signed request timestamp outside the
	// freshness window. Surfaces identically to a signature failure;
	// distinguished only in internal logs.
	ErrReplayRejected = errors.Wrap(errors.ErrForbidden, "request timestamp outside freshness window")

	// ErrSignatureMismatch indicates the recomputed request signature did
	// not match the presented one.
	ErrSignatureMismatch = errors.Wrap(errors.ErrForbidden, "gateway signature mismatch")

	// ErrRoleNotAllowed indicates a valid identity whose role does not
	// cover the requested path.
	ErrRoleNotAllowed = errors.Wrap(errors.ErrForbidden, "role not allowed for path")
)
