// AngelaMos | 2026
// auth.go

package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/adeyemi-dev/storefront/internal/core"
	"github.com/adeyemi-dev/storefront/internal/session"
)

// Resolver is the slice of session.Issuer the guard needs.
type Resolver interface {
	Extract(r *http.Request) string
	Resolve(ctx context.Context, value string) (session.Identity, error)
}

// RequireRole admits only requests carrying an assertion that resolves
// to the given role. No assertion, a failed resolve, or a role mismatch
// all reject with 401; an unexpected resolver failure (store
// unreachable) maps to a 500-class error, never to an implicit allow.
func RequireRole(
	resolver Resolver,
	role session.Role,
) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			value := resolver.Extract(r)
			if value == "" {
				core.Unauthorized(w, "unauthorized request, access denied")
				return
			}

			identity, err := resolver.Resolve(r.Context(), value)
			if err != nil {
				handleResolveError(w, err)
				return
			}

			if identity.Role != role {
				core.Unauthorized(w, "access denied")
				return
			}

			ctx := WithIdentity(r.Context(), identity)
			ctx = withAssertion(ctx, value)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func RequireUser(resolver Resolver) func(http.Handler) http.Handler {
	return RequireRole(resolver, session.RoleUser)
}

func RequireAdmin(resolver Resolver) func(http.Handler) http.Handler {
	return RequireRole(resolver, session.RoleAdmin)
}

func handleResolveError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, session.ErrExpired):
		core.JSONError(w, core.NewAppError(
			err,
			"session expired, log in again",
			http.StatusUnauthorized,
			"EXPIRED",
		))
	case errors.Is(err, session.ErrInvalid):
		core.Unauthorized(w, "access denied")
	case errors.Is(err, core.ErrStorageUnavailable):
		core.JSONError(w, core.StorageUnavailableError())
	default:
		core.InternalServerError(w, err)
	}
}
