package session

import (
	"context"
	"strings"
)

// Identity captures the principal attached to a request: either an
// authenticated shopper (token-backed) or an anonymous browser session
// identified by cookie.
type Identity struct {
	UID       string
	Email     string
	Name      string
	Anonymous bool
}

type contextKey string

const identityContextKey contextKey = "github.com/furnikart/api/internal/platform/session/identity"

// WithIdentity stores the identity on the context for downstream consumers.
func WithIdentity(ctx context.Context, identity *Identity) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, identityContextKey, identity)
}

// IdentityFromContext retrieves the request identity when present.
func IdentityFromContext(ctx context.Context) (*Identity, bool) {
	if ctx == nil {
		return nil, false
	}
	identity, ok := ctx.Value(identityContextKey).(*Identity)
	if !ok || identity == nil {
		return nil, false
	}
	return identity, true
}

// UID returns the session identifier from context, empty when absent.
func UID(ctx context.Context) string {
	identity, ok := IdentityFromContext(ctx)
	if !ok {
		return ""
	}
	return strings.TrimSpace(identity.UID)
}
