// AngelaMos | 2026
// context.go

package middleware

import (
	"context"

	"github.com/adeyemi-dev/storefront/internal/session"
)

type contextKey string

const (
	identityKey  contextKey = "identity"
	assertionKey contextKey = "assertion"
	requestIDKey contextKey = "request_id"
)

func WithIdentity(
	ctx context.Context,
	identity session.Identity,
) context.Context {
	return context.WithValue(ctx, identityKey, identity)
}

func IdentityFrom(ctx context.Context) (session.Identity, bool) {
	identity, ok := ctx.Value(identityKey).(session.Identity)
	return identity, ok
}

func GetUserID(ctx context.Context) string {
	if identity, ok := IdentityFrom(ctx); ok {
		return identity.UserID
	}
	return ""
}

func GetRole(ctx context.Context) session.Role {
	if identity, ok := IdentityFrom(ctx); ok {
		return identity.Role
	}
	return ""
}

func withAssertion(ctx context.Context, value string) context.Context {
	return context.WithValue(ctx, assertionKey, value)
}

// AssertionFrom returns the raw assertion value the guard resolved,
// needed by logout to revoke it and by add-to-cart to bind the cart.
func AssertionFrom(ctx context.Context) string {
	if v, ok := ctx.Value(assertionKey).(string); ok {
		return v
	}
	return ""
}

func GetRequestID(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey).(string); ok {
		return id
	}
	return ""
}
