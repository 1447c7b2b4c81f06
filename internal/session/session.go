// AngelaMos | 2026
// session.go

// Package session binds a verified login to subsequent requests. Two
// interchangeable strategies satisfy the same Issuer contract: signed
// role-scoped tokens carried in headers, or server-side redis records
// carried by a cookie. The strategy is chosen once at startup; nothing
// past that point branches on which one is active.
package session

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/adeyemi-dev/storefront/internal/config"
	"github.com/adeyemi-dev/storefront/internal/core"
	"github.com/redis/go-redis/v9"
)

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

// Identity is the resolved assertion: who the caller is and the single
// role fixed at login. The mutual exclusivity of "user vs admin" is
// structural, not a pair of optional fields.
type Identity struct {
	UserID string
	Role   Role
}

// Handle is an issued assertion plus enough shape for transport: bearer
// handles go back to the client in a header and the response body,
// cookie handles only in a Set-Cookie.
type Handle struct {
	Value     string
	Role      Role
	Bearer    bool
	ExpiresAt time.Time
}

// Token returns the value a client must present itself, or "" when the
// browser carries it automatically.
func (h Handle) Token() string {
	if h.Bearer {
		return h.Value
	}
	return ""
}

var (
	ErrInvalid = errors.New("assertion invalid")
	ErrExpired = errors.New("assertion expired")
)

type Issuer interface {
	// Issue binds a verified identity to a new assertion. The returned
	// handle resolves to the same (UserID, Role) until expiry or
	// revocation.
	Issue(ctx context.Context, identity Identity) (Handle, error)

	// Resolve recovers the identity behind an assertion value. Fails
	// closed: ErrInvalid on malformed/forged input, ErrExpired when the
	// assertion's lifetime is over, a wrapped storage error otherwise.
	Resolve(ctx context.Context, value string) (Identity, error)

	// Revoke invalidates an assertion. Must complete (or report
	// failure) before the response goes out; logout is not fire and
	// forget.
	Revoke(ctx context.Context, value string) error

	// BindCart records the caller's active cart against the assertion.
	// A no-op for stateless assertions.
	BindCart(ctx context.Context, value, cartID string) error

	// Extract pulls the raw assertion value off a request, "" if absent.
	Extract(r *http.Request) string

	// Attach writes the transport side of a freshly issued handle.
	Attach(w http.ResponseWriter, h Handle)

	// Clear removes the client side of an assertion after revocation.
	Clear(w http.ResponseWriter)
}

// New selects the deployment's strategy. This is the only place the
// token/session split is visible.
func New(cfg config.AuthConfig, rdb *redis.Client, secureCookies bool) (Issuer, error) {
	switch cfg.Strategy {
	case config.StrategyToken:
		return NewTokenIssuer(cfg)
	case config.StrategySession:
		return NewRedisIssuer(rdb, cfg, secureCookies), nil
	default:
		return nil, fmt.Errorf("unknown auth strategy %q", cfg.Strategy)
	}
}

func storageErr(op string, err error) error {
	return fmt.Errorf("%s: %v: %w", op, err, core.ErrStorageUnavailable)
}
