// AngelaMos | 2026
// token_test.go

package session

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/adeyemi-dev/storefront/internal/config"
)

func newRequest(t *testing.T) *http.Request {
	t.Helper()
	return httptest.NewRequest(http.MethodGet, "/", nil)
}

func newTestTokenIssuer(t *testing.T, expire time.Duration) *TokenIssuer {
	t.Helper()

	issuer, err := NewTokenIssuer(config.AuthConfig{
		Strategy:         config.StrategyToken,
		UserTokenSecret:  "user-secret-for-tests-0123456789",
		AdminTokenSecret: "admin-secret-for-tests-012345678",
		TokenExpire:      expire,
	})
	if err != nil {
		t.Fatalf("NewTokenIssuer returned error: %v", err)
	}
	return issuer
}

func TestTokenIssueResolve(t *testing.T) {
	issuer := newTestTokenIssuer(t, time.Hour)
	ctx := context.Background()

	for _, role := range []Role{RoleUser, RoleAdmin} {
		handle, err := issuer.Issue(ctx, Identity{UserID: "u-1", Role: role})
		if err != nil {
			t.Fatalf("Issue(%s) returned error: %v", role, err)
		}

		if !handle.Bearer {
			t.Errorf("token handles must be bearer")
		}
		if handle.Token() == "" {
			t.Errorf("bearer handle should expose its token")
		}

		identity, err := issuer.Resolve(ctx, handle.Value)
		if err != nil {
			t.Fatalf("Resolve(%s) returned error: %v", role, err)
		}

		if identity.UserID != "u-1" {
			t.Errorf("resolved UserID = %q, want u-1", identity.UserID)
		}
		if identity.Role != role {
			t.Errorf("resolved Role = %q, want %q", identity.Role, role)
		}
	}
}

func TestTokenResolveGarbage(t *testing.T) {
	issuer := newTestTokenIssuer(t, time.Hour)

	_, err := issuer.Resolve(context.Background(), "not.a.token")
	if !errors.Is(err, ErrInvalid) {
		t.Errorf("garbage token should resolve to ErrInvalid, got %v", err)
	}
}

func TestTokenResolveExpired(t *testing.T) {
	issuer := newTestTokenIssuer(t, -time.Minute)

	handle, err := issuer.Issue(
		context.Background(),
		Identity{UserID: "u-1", Role: RoleUser},
	)
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	_, err = issuer.Resolve(context.Background(), handle.Value)
	if !errors.Is(err, ErrExpired) {
		t.Errorf("expired token should resolve to ErrExpired, got %v", err)
	}
}

// A token minted for one role must never resolve as the other, even
// when both secrets belong to the same deployment.
func TestTokenRoleIsolation(t *testing.T) {
	issuer := newTestTokenIssuer(t, time.Hour)
	ctx := context.Background()

	userHandle, err := issuer.Issue(ctx, Identity{UserID: "u-1", Role: RoleUser})
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	identity, err := issuer.Resolve(ctx, userHandle.Value)
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if identity.Role != RoleUser {
		t.Fatalf("user token resolved as role %q", identity.Role)
	}

	// A token signed with the user secret but claiming the admin role
	// must be rejected outright.
	forged := newTestTokenIssuer(t, time.Hour)
	forged.keys[RoleUser] = forged.keys[RoleAdmin]

	forgedHandle, err := forged.Issue(ctx, Identity{UserID: "u-1", Role: RoleUser})
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	if _, err := issuer.Resolve(ctx, forgedHandle.Value); err == nil {
		t.Error("token signed with the wrong role's secret should not resolve")
	}
}

func TestTokenRevokeIsNoOp(t *testing.T) {
	issuer := newTestTokenIssuer(t, time.Hour)
	ctx := context.Background()

	handle, err := issuer.Issue(ctx, Identity{UserID: "u-1", Role: RoleUser})
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	if err := issuer.Revoke(ctx, handle.Value); err != nil {
		t.Fatalf("Revoke returned error: %v", err)
	}

	// Stateless tokens stay resolvable until expiry.
	if _, err := issuer.Resolve(ctx, handle.Value); err != nil {
		t.Errorf("token should still resolve after no-op revoke: %v", err)
	}
}

func TestTokenExtract(t *testing.T) {
	issuer := newTestTokenIssuer(t, time.Hour)

	tests := []struct {
		name   string
		header string
		value  string
		want   string
	}{
		{"user header", "x-auth-token", "abc", "abc"},
		{"admin header", "x-admin-token", "def", "def"},
		{"no header", "", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newRequest(t)
			if tt.header != "" {
				r.Header.Set(tt.header, tt.value)
			}
			if got := issuer.Extract(r); got != tt.want {
				t.Errorf("Extract() = %q, want %q", got, tt.want)
			}
		})
	}
}
