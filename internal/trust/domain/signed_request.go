package domain

import (
	"fmt"
)

// SignedRequest is the ephemeral description of a forwarded request that the
// gateway signs and the core validates. It is never persisted and validated
// exactly once; replay protection comes from the freshness window, not from
// an allow-list of seen signatures.
type SignedRequest struct {
	Method          string
	Path            string
	TimestampMillis int64
	Subject         string
	Role            Role
}

// Canonical renders the signed fields in their canonical concatenation:
// "timestamp:method:path:subject:role". Both sides of the trust boundary
// must agree on this ordering byte for byte.
func (r SignedRequest) Canonical() string {
	return fmt.Sprintf(
		"%d:%s:%s:%s:%s",
		r.TimestampMillis,
		r.Method,
		r.Path,
		r.Subject,
		r.Role,
	)
}
