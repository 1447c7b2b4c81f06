// AngelaMos | 2026
// token.go

package session

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lestrrat-go/jwx/v3/jwa"
	"github.com/lestrrat-go/jwx/v3/jwk"
	"github.com/lestrrat-go/jwx/v3/jwt"

	"github.com/adeyemi-dev/storefront/internal/config"
)

const (
	headerUserToken  = "x-auth-token"
	headerAdminToken = "x-admin-token"
)

// TokenIssuer is the stateless strategy: identity and role live in a
// signed token, verified on every request and never persisted. Each
// role has its own secret, so a user token can never verify as an
// admin token or vice versa.
type TokenIssuer struct {
	keys   map[Role]jwk.Key
	expire time.Duration
}

func NewTokenIssuer(cfg config.AuthConfig) (*TokenIssuer, error) {
	userKey, err := jwk.Import([]byte(cfg.UserTokenSecret))
	if err != nil {
		return nil, fmt.Errorf("import user token secret: %w", err)
	}

	adminKey, err := jwk.Import([]byte(cfg.AdminTokenSecret))
	if err != nil {
		return nil, fmt.Errorf("import admin token secret: %w", err)
	}

	return &TokenIssuer{
		keys: map[Role]jwk.Key{
			RoleUser:  userKey,
			RoleAdmin: adminKey,
		},
		expire: cfg.TokenExpire,
	}, nil
}

func (t *TokenIssuer) Issue(
	_ context.Context,
	identity Identity,
) (Handle, error) {
	key, ok := t.keys[identity.Role]
	if !ok {
		return Handle{}, fmt.Errorf(
			"issue token: unknown role %q: %w",
			identity.Role,
			ErrInvalid,
		)
	}

	now := time.Now()
	expiresAt := now.Add(t.expire)

	token, err := jwt.NewBuilder().
		JwtID(uuid.New().String()).
		Subject(identity.UserID).
		IssuedAt(now).
		Expiration(expiresAt).
		Claim("role", string(identity.Role)).
		Build()
	if err != nil {
		return Handle{}, fmt.Errorf("build token: %w", err)
	}

	signed, err := jwt.Sign(token, jwt.WithKey(jwa.HS256(), key))
	if err != nil {
		return Handle{}, fmt.Errorf("sign token: %w", err)
	}

	return Handle{
		Value:     string(signed),
		Role:      identity.Role,
		Bearer:    true,
		ExpiresAt: expiresAt,
	}, nil
}

func (t *TokenIssuer) Resolve(
	_ context.Context,
	value string,
) (Identity, error) {
	for _, role := range []Role{RoleUser, RoleAdmin} {
		token, err := jwt.Parse(
			[]byte(value),
			jwt.WithKey(jwa.HS256(), t.keys[role]),
			jwt.WithValidate(true),
		)
		if err != nil {
			if isTokenExpiredError(err) {
				return Identity{}, fmt.Errorf("resolve token: %w", ErrExpired)
			}
			// Signature mismatch against this role's secret; try the
			// other role before rejecting.
			continue
		}

		// The role claim must agree with the secret that verified the
		// signature, otherwise the token was minted for the other role.
		var claimRole string
		if err := token.Get("role", &claimRole); err != nil ||
			Role(claimRole) != role {
			return Identity{}, fmt.Errorf(
				"resolve token: role claim mismatch: %w",
				ErrInvalid,
			)
		}

		subject, ok := token.Subject()
		if !ok || subject == "" {
			return Identity{}, fmt.Errorf(
				"resolve token: missing subject: %w",
				ErrInvalid,
			)
		}

		return Identity{UserID: subject, Role: role}, nil
	}

	return Identity{}, fmt.Errorf("resolve token: %w", ErrInvalid)
}

// Revoke is a no-op: the only revocation for a stateless token is the
// expiry claim enforced at Resolve.
func (t *TokenIssuer) Revoke(_ context.Context, _ string) error {
	return nil
}

// BindCart is a no-op: tokens carry no mutable state.
func (t *TokenIssuer) BindCart(_ context.Context, _, _ string) error {
	return nil
}

func (t *TokenIssuer) Extract(r *http.Request) string {
	if v := r.Header.Get(headerUserToken); v != "" {
		return v
	}
	return r.Header.Get(headerAdminToken)
}

func (t *TokenIssuer) Attach(w http.ResponseWriter, h Handle) {
	header := headerUserToken
	if h.Role == RoleAdmin {
		header = headerAdminToken
	}
	w.Header().Set(header, h.Value)
}

func (t *TokenIssuer) Clear(_ http.ResponseWriter) {}

func isTokenExpiredError(err error) bool {
	if err == nil {
		return false
	}
	errStr := err.Error()
	return strings.Contains(errStr, "exp") &&
		strings.Contains(errStr, "not satisfied")
}

var _ Issuer = (*TokenIssuer)(nil)
