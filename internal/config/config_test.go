// AngelaMos | 2026
// config_test.go

package config

import (
	"strings"
	"testing"
	"time"
)

func validConfig() *Config {
	return &Config{
		App: AppConfig{Environment: "development"},
		Server: ServerConfig{
			Host:         "0.0.0.0",
			Port:         1204,
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		Database: DatabaseConfig{URL: "postgres://localhost/store"},
		Redis:    RedisConfig{URL: "redis://localhost:6379"},
		Auth: AuthConfig{
			Strategy:          StrategySession,
			SessionTTL:        12 * time.Hour,
			SessionCookie:     "sid",
			TokenExpire:       24 * time.Hour,
			ProductCreateRole: "user",
		},
		Uploads: UploadConfig{
			Dir:            "uploads",
			MaxFileSize:    3 << 20,
			MaxOtherImages: 3,
		},
	}
}

func TestValidate(t *testing.T) {
	if err := validate(validConfig()); err != nil {
		t.Fatalf("valid config rejected: %v", err)
	}
}

func TestValidateStrategy(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:    "unknown strategy",
			mutate:  func(c *Config) { c.Auth.Strategy = "basic" },
			wantErr: "auth.strategy",
		},
		{
			name: "session strategy needs a cookie name",
			mutate: func(c *Config) {
				c.Auth.SessionCookie = ""
			},
			wantErr: "session_cookie",
		},
		{
			name: "session strategy needs a positive TTL",
			mutate: func(c *Config) {
				c.Auth.SessionTTL = 0
			},
			wantErr: "session_ttl",
		},
		{
			name: "token strategy needs both secrets",
			mutate: func(c *Config) {
				c.Auth.Strategy = StrategyToken
				c.Auth.UserTokenSecret = "only-one-secret"
			},
			wantErr: "ADMIN_TOKEN_SECRET",
		},
		{
			name: "token secrets must differ",
			mutate: func(c *Config) {
				c.Auth.Strategy = StrategyToken
				c.Auth.UserTokenSecret = "same-secret"
				c.Auth.AdminTokenSecret = "same-secret"
			},
			wantErr: "must differ",
		},
		{
			name: "product create role is user or admin",
			mutate: func(c *Config) {
				c.Auth.ProductCreateRole = "manager"
			},
			wantErr: "product_create_role",
		},
		{
			name: "credentials forbid wildcard origin",
			mutate: func(c *Config) {
				c.CORS.AllowCredentials = true
				c.CORS.AllowedOrigins = []string{"*"}
			},
			wantErr: "wildcard",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validConfig()
			tt.mutate(c)

			err := validate(c)
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q should mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestValidTokenStrategy(t *testing.T) {
	c := validConfig()
	c.Auth.Strategy = StrategyToken
	c.Auth.UserTokenSecret = "user-secret"
	c.Auth.AdminTokenSecret = "admin-secret"

	if err := validate(c); err != nil {
		t.Fatalf("token strategy config rejected: %v", err)
	}
}

func TestServerAddress(t *testing.T) {
	s := ServerConfig{Host: "127.0.0.1", Port: 1204}
	if got := s.Address(); got != "127.0.0.1:1204" {
		t.Errorf("Address() = %q, want 127.0.0.1:1204", got)
	}
}
