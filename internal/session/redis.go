// AngelaMos | 2026
// redis.go

package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/adeyemi-dev/storefront/internal/config"
	"github.com/adeyemi-dev/storefront/internal/core"
)

const sessionKeyPrefix = "session:"

// RedisIssuer is the stateful strategy: an opaque id in a cookie keys a
// server-held record with a fixed TTL. Revocation is a synchronous
// delete, linearizable against Resolve because redis executes commands
// one at a time.
type RedisIssuer struct {
	rdb    *redis.Client
	ttl    time.Duration
	cookie string
	secure bool
}

type record struct {
	UserID   string    `json:"user_id"`
	Role     Role      `json:"role"`
	CartID   string    `json:"cart_id,omitempty"`
	IssuedAt time.Time `json:"issued_at"`
}

func NewRedisIssuer(
	rdb *redis.Client,
	cfg config.AuthConfig,
	secureCookies bool,
) *RedisIssuer {
	return &RedisIssuer{
		rdb:    rdb,
		ttl:    cfg.SessionTTL,
		cookie: cfg.SessionCookie,
		secure: secureCookies,
	}
}

func (s *RedisIssuer) Issue(
	ctx context.Context,
	identity Identity,
) (Handle, error) {
	if !identity.Role.Valid() {
		return Handle{}, fmt.Errorf(
			"issue session: unknown role %q: %w",
			identity.Role,
			ErrInvalid,
		)
	}

	id, err := core.NewOpaqueID()
	if err != nil {
		return Handle{}, fmt.Errorf("issue session: %w", err)
	}

	now := time.Now()
	data, err := json.Marshal(record{
		UserID:   identity.UserID,
		Role:     identity.Role,
		IssuedAt: now,
	})
	if err != nil {
		return Handle{}, fmt.Errorf("issue session: %w", err)
	}

	if err := s.rdb.Set(ctx, sessionKeyPrefix+id, data, s.ttl).Err(); err != nil {
		return Handle{}, storageErr("issue session", err)
	}

	return Handle{
		Value:     id,
		Role:      identity.Role,
		ExpiresAt: now.Add(s.ttl),
	}, nil
}

func (s *RedisIssuer) Resolve(
	ctx context.Context,
	value string,
) (Identity, error) {
	data, err := s.rdb.Get(ctx, sessionKeyPrefix+value).Bytes()
	if errors.Is(err, redis.Nil) {
		// Absent covers both TTL expiry and prior revocation.
		return Identity{}, fmt.Errorf("resolve session: %w", ErrExpired)
	}
	if err != nil {
		return Identity{}, storageErr("resolve session", err)
	}

	var rec record
	if err := json.Unmarshal(data, &rec); err != nil {
		return Identity{}, fmt.Errorf("resolve session: %w", ErrInvalid)
	}

	if rec.UserID == "" || !rec.Role.Valid() {
		return Identity{}, fmt.Errorf("resolve session: %w", ErrInvalid)
	}

	return Identity{UserID: rec.UserID, Role: rec.Role}, nil
}

func (s *RedisIssuer) Revoke(ctx context.Context, value string) error {
	if err := s.rdb.Del(ctx, sessionKeyPrefix+value).Err(); err != nil {
		return storageErr("revoke session", err)
	}
	return nil
}

// BindCart rewrites the record with the cart id. SET XX + KEEPTTL only
// touches a still-live key, so a session revoked concurrently is never
// resurrected and its TTL never resets.
func (s *RedisIssuer) BindCart(
	ctx context.Context,
	value, cartID string,
) error {
	key := sessionKeyPrefix + value

	data, err := s.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return fmt.Errorf("bind cart: %w", ErrExpired)
	}
	if err != nil {
		return storageErr("bind cart", err)
	}

	var rec record
	if err := json.Unmarshal(data, &rec); err != nil {
		return fmt.Errorf("bind cart: %w", ErrInvalid)
	}

	rec.CartID = cartID

	updated, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("bind cart: %w", err)
	}

	set, err := s.rdb.SetArgs(ctx, key, updated, redis.SetArgs{
		Mode:    "XX",
		KeepTTL: true,
	}).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return storageErr("bind cart", err)
	}
	if set != "OK" {
		return fmt.Errorf("bind cart: %w", ErrExpired)
	}

	return nil
}

func (s *RedisIssuer) Extract(r *http.Request) string {
	c, err := r.Cookie(s.cookie)
	if err != nil {
		return ""
	}
	return c.Value
}

func (s *RedisIssuer) Attach(w http.ResponseWriter, h Handle) {
	http.SetCookie(w, &http.Cookie{
		Name:     s.cookie,
		Value:    h.Value,
		Path:     "/",
		MaxAge:   int(s.ttl / time.Second),
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (s *RedisIssuer) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     s.cookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

var _ Issuer = (*RedisIssuer)(nil)
