package httpx

import (
	"context"

	domainauth "github.com/pulsepoint/pulsepoint-api/internal/domain/auth"
)

// identityKey is an unexported context key type to avoid collisions across packages.
// Centralized in this file so all handlers/middleware use the same key.
type identityKey struct{}

// Identity is the per-request authentication state attached by middleware.
type Identity struct {
	SessionID string
	User      *domainauth.User
}

// SetIdentityInContext returns a child context that carries the given identity.
// If identity is nil, the original ctx is returned unchanged.
func SetIdentityInContext(ctx context.Context, identity *Identity) context.Context {
	if identity == nil {
		return ctx
	}
	return context.WithValue(ctx, identityKey{}, identity)
}

// GetIdentityFromContext returns the identity from context and a boolean indicating presence.
func GetIdentityFromContext(ctx context.Context) (*Identity, bool) {
	if identity, ok := ctx.Value(identityKey{}).(*Identity); ok && identity != nil {
		return identity, true
	}
	return nil, false
}

// GetUserFromContext retrieves the authenticated user from the request
// context, or nil for anonymous requests.
func GetUserFromContext(ctx context.Context) *domainauth.User {
	if identity, ok := GetIdentityFromContext(ctx); ok {
		return identity.User
	}
	return nil
}
