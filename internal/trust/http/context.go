// Package http provides the trust boundary middleware and the session cookie
// helpers.
package http

import (
	"context"

	trustService "github.com/civicgate/trustplane/internal/trust/service"
)

// identityKey is a context key type for storing validated identities.
type identityKey struct{}

// WithIdentity stores a validated caller identity in the context. Called by
// the trust middleware after a request is admitted.
func WithIdentity(ctx context.Context, identity *trustService.Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, identity)
}

// GetIdentity retrieves the validated identity from the context. Returns
// (nil, false) when the request was admitted through a public path and
// carries no identity.
func GetIdentity(ctx context.Context) (*trustService.Identity, bool) {
	identity, ok := ctx.Value(identityKey{}).(*trustService.Identity)
	return identity, ok
}
