// AngelaMos | 2026
// redis_test.go

package session

import (
	"context"
	"errors"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/adeyemi-dev/storefront/internal/config"
)

func newTestRedisIssuer(t *testing.T) (*RedisIssuer, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	issuer := NewRedisIssuer(rdb, config.AuthConfig{
		Strategy:      config.StrategySession,
		SessionTTL:    12 * time.Hour,
		SessionCookie: "sid",
	}, false)

	return issuer, mr
}

func TestRedisIssueResolve(t *testing.T) {
	issuer, _ := newTestRedisIssuer(t)
	ctx := context.Background()

	handle, err := issuer.Issue(ctx, Identity{UserID: "u-1", Role: RoleAdmin})
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	if handle.Bearer {
		t.Error("cookie handles must not be bearer")
	}
	if handle.Token() != "" {
		t.Error("cookie handle should not expose a token")
	}

	identity, err := issuer.Resolve(ctx, handle.Value)
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}

	if identity.UserID != "u-1" || identity.Role != RoleAdmin {
		t.Errorf("resolved %+v, want {u-1 admin}", identity)
	}
}

func TestRedisResolveUnknown(t *testing.T) {
	issuer, _ := newTestRedisIssuer(t)

	_, err := issuer.Resolve(context.Background(), "no-such-session")
	if !errors.Is(err, ErrExpired) {
		t.Errorf("unknown session should resolve to ErrExpired, got %v", err)
	}
}

func TestRedisResolveAfterTTL(t *testing.T) {
	issuer, mr := newTestRedisIssuer(t)
	ctx := context.Background()

	handle, err := issuer.Issue(ctx, Identity{UserID: "u-1", Role: RoleUser})
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	mr.FastForward(13 * time.Hour)

	_, err = issuer.Resolve(ctx, handle.Value)
	if !errors.Is(err, ErrExpired) {
		t.Errorf("session past TTL should resolve to ErrExpired, got %v", err)
	}
}

// Once Revoke returns, no Resolve may succeed.
func TestRedisRevoke(t *testing.T) {
	issuer, _ := newTestRedisIssuer(t)
	ctx := context.Background()

	handle, err := issuer.Issue(ctx, Identity{UserID: "u-1", Role: RoleUser})
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	if err := issuer.Revoke(ctx, handle.Value); err != nil {
		t.Fatalf("Revoke returned error: %v", err)
	}

	if _, err := issuer.Resolve(ctx, handle.Value); !errors.Is(err, ErrExpired) {
		t.Errorf("revoked session should not resolve, got %v", err)
	}
}

func TestRedisBindCart(t *testing.T) {
	issuer, _ := newTestRedisIssuer(t)
	ctx := context.Background()

	handle, err := issuer.Issue(ctx, Identity{UserID: "u-1", Role: RoleUser})
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	if err := issuer.BindCart(ctx, handle.Value, "cart-1"); err != nil {
		t.Fatalf("BindCart returned error: %v", err)
	}

	// Identity is unchanged after binding.
	identity, err := issuer.Resolve(ctx, handle.Value)
	if err != nil {
		t.Fatalf("Resolve after BindCart returned error: %v", err)
	}
	if identity.UserID != "u-1" || identity.Role != RoleUser {
		t.Errorf("resolved %+v after BindCart, want {u-1 user}", identity)
	}
}

// BindCart must never resurrect a session that was revoked in between.
func TestRedisBindCartAfterRevoke(t *testing.T) {
	issuer, _ := newTestRedisIssuer(t)
	ctx := context.Background()

	handle, err := issuer.Issue(ctx, Identity{UserID: "u-1", Role: RoleUser})
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	if err := issuer.Revoke(ctx, handle.Value); err != nil {
		t.Fatalf("Revoke returned error: %v", err)
	}

	err = issuer.BindCart(ctx, handle.Value, "cart-1")
	if !errors.Is(err, ErrExpired) {
		t.Errorf("BindCart on revoked session should fail ErrExpired, got %v", err)
	}

	if _, err := issuer.Resolve(ctx, handle.Value); !errors.Is(err, ErrExpired) {
		t.Error("revoked session must stay revoked after BindCart attempt")
	}
}

func TestRedisCookieRoundTrip(t *testing.T) {
	issuer, _ := newTestRedisIssuer(t)
	ctx := context.Background()

	handle, err := issuer.Issue(ctx, Identity{UserID: "u-1", Role: RoleUser})
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	w := httptest.NewRecorder()
	issuer.Attach(w, handle)

	cookies := w.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("expected 1 cookie, got %d", len(cookies))
	}
	if !cookies[0].HttpOnly {
		t.Error("session cookie must be HttpOnly")
	}

	r := newRequest(t)
	r.AddCookie(cookies[0])

	if got := issuer.Extract(r); got != handle.Value {
		t.Errorf("Extract() = %q, want %q", got, handle.Value)
	}
}

func TestRedisClearExpiresCookie(t *testing.T) {
	issuer, _ := newTestRedisIssuer(t)

	w := httptest.NewRecorder()
	issuer.Clear(w)

	cookies := w.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("expected 1 cookie, got %d", len(cookies))
	}
	if cookies[0].MaxAge >= 0 {
		t.Errorf("cleared cookie MaxAge = %d, want negative", cookies[0].MaxAge)
	}
}
