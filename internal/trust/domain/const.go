// Package domain defines the cross-service trust domain models: roles, token
// claims, and the signed request exchanged between the gateway and the core.
package domain

// Role is the closed set of principal roles carried by a trust token.
// Claims are decoded into this enum so a missing or mistyped role is a
// decode-time error, never a runtime nil.
type Role string

const (
	// RoleCitizen may access the complaint surface.
	RoleCitizen Role = "CITIZEN"

	// RoleAnalyst may access the staff surface.
	RoleAnalyst Role = "ANALYST"

	// RoleAdmin may access the admin and staff surfaces.
	RoleAdmin Role = "ADMIN"
)

// Valid reports whether the role is a member of the closed enum.
func (r Role) Valid() bool {
	switch r {
	case RoleCitizen, RoleAnalyst, RoleAdmin:
		return true
	default:
		return false
	}
}

// ParseRole validates a role string against the closed enum.
func ParseRole(value string) (Role, error) {
	switch Role(value) {
	case RoleCitizen, RoleAnalyst, RoleAdmin:
		return Role(value), nil
	default:
		return "", ErrInvalidRole
	}
}

// Request metadata header names used on the gateway-to-core leg.
const (
	// HeaderUserID carries the authenticated subject identifier.
	HeaderUserID = "X-Gateway-User-Id"

	// HeaderUserRole carries the subject's role.
	HeaderUserRole = "X-Gateway-User-Role"

	// HeaderTimestamp carries the signing time in epoch milliseconds.
	HeaderTimestamp = "X-Gateway-Timestamp"

	// HeaderSignature carries the Base64 HMAC-SHA256 request signature.
	HeaderSignature = "X-Gateway-Signature"

	// HeaderAPIKey optionally carries the internal service identifier.
	HeaderAPIKey = "X-Api-Key"
)
