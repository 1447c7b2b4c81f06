// AngelaMos | 2026
// config.go

package config

import (
	"fmt"
	"sync"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

type Config struct {
	App       AppConfig       `koanf:"app"`
	Server    ServerConfig    `koanf:"server"`
	Database  DatabaseConfig  `koanf:"database"`
	Redis     RedisConfig     `koanf:"redis"`
	Auth      AuthConfig      `koanf:"auth"`
	Uploads   UploadConfig    `koanf:"uploads"`
	RateLimit RateLimitConfig `koanf:"rate_limit"`
	CORS      CORSConfig      `koanf:"cors"`
	Log       LogConfig       `koanf:"log"`
	Otel      OtelConfig      `koanf:"otel"`
}

type AppConfig struct {
	Name        string `koanf:"name"`
	Version     string `koanf:"version"`
	Environment string `koanf:"environment"`
}

type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port"`
	ReadTimeout     time.Duration `koanf:"read_timeout"`
	WriteTimeout    time.Duration `koanf:"write_timeout"`
	IdleTimeout     time.Duration `koanf:"idle_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

type DatabaseConfig struct {
	URL             string        `koanf:"url"`
	MaxOpenConns    int           `koanf:"max_open_conns"`
	MaxIdleConns    int           `koanf:"max_idle_conns"`
	ConnMaxLifetime time.Duration `koanf:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `koanf:"conn_max_idle_time"`
}

type RedisConfig struct {
	URL          string `koanf:"url"`
	PoolSize     int    `koanf:"pool_size"`
	MinIdleConns int    `koanf:"min_idle_conns"`
}

// AuthConfig selects the assertion strategy for the whole deployment.
// Exactly one strategy is active at a time; request handlers never
// branch on which one.
type AuthConfig struct {
	Strategy          string        `koanf:"strategy"` // "token" or "session"
	SessionTTL        time.Duration `koanf:"session_ttl"`
	SessionCookie     string        `koanf:"session_cookie"`
	TokenExpire       time.Duration `koanf:"token_expire"`
	UserTokenSecret   string        `koanf:"user_token_secret"`
	AdminTokenSecret  string        `koanf:"admin_token_secret"`
	ProductCreateRole string        `koanf:"product_create_role"`
}

type UploadConfig struct {
	Dir            string `koanf:"dir"`
	MaxFileSize    int64  `koanf:"max_file_size"`
	MaxOtherImages int    `koanf:"max_other_images"`
}

type RateLimitConfig struct {
	Requests int           `koanf:"requests"`
	Window   time.Duration `koanf:"window"`
	Burst    int           `koanf:"burst"`
}

type CORSConfig struct {
	AllowedOrigins   []string `koanf:"allowed_origins"`
	AllowedMethods   []string `koanf:"allowed_methods"`
	AllowedHeaders   []string `koanf:"allowed_headers"`
	AllowCredentials bool     `koanf:"allow_credentials"`
	MaxAge           int      `koanf:"max_age"`
}

type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

type OtelConfig struct {
	Endpoint    string  `koanf:"endpoint"`
	ServiceName string  `koanf:"service_name"`
	Enabled     bool    `koanf:"enabled"`
	Insecure    bool    `koanf:"insecure"`
	SampleRate  float64 `koanf:"sample_rate"`
}

const (
	StrategyToken   = "token"
	StrategySession = "session"
)

var (
	cfg  *Config
	once sync.Once
)

func Load(configPath string) (*Config, error) {
	var loadErr error

	once.Do(func() {
		k := koanf.New(".")

		if err := loadDefaults(k); err != nil {
			loadErr = fmt.Errorf("load defaults: %w", err)
			return
		}

		if configPath != "" {
			if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
				loadErr = fmt.Errorf("load config file: %w", err)
				return
			}
		}

		if err := k.Load(env.Provider("", ".", envKeyReplacer), nil); err != nil {
			loadErr = fmt.Errorf("load env vars: %w", err)
			return
		}

		cfg = &Config{}
		if err := k.Unmarshal("", cfg); err != nil {
			loadErr = fmt.Errorf("unmarshal config: %w", err)
			return
		}

		if err := validate(cfg); err != nil {
			loadErr = fmt.Errorf("validate config: %w", err)
			return
		}
	})

	if loadErr != nil {
		return nil, loadErr
	}

	return cfg, nil
}

func Get() *Config {
	if cfg == nil {
		panic("config not loaded: call Load() first")
	}
	return cfg
}

func loadDefaults(k *koanf.Koanf) error {
	defaults := map[string]any{
		"app.name":        "storefront",
		"app.version":     "1.0.0",
		"app.environment": "development",

		"server.host":             "0.0.0.0",
		"server.port":             1204,
		"server.read_timeout":     "30s",
		"server.write_timeout":    "30s",
		"server.idle_timeout":     "120s",
		"server.shutdown_timeout": "15s",

		"database.max_open_conns":     25,
		"database.max_idle_conns":     5,
		"database.conn_max_lifetime":  "1h",
		"database.conn_max_idle_time": "30m",

		"redis.pool_size":      10,
		"redis.min_idle_conns": 5,

		"auth.strategy":            StrategySession,
		"auth.session_ttl":         "12h",
		"auth.session_cookie":      "sid",
		"auth.token_expire":        "24h",
		"auth.product_create_role": "user",

		"uploads.dir":              "uploads",
		"uploads.max_file_size":    3 * 1024 * 1024,
		"uploads.max_other_images": 3,

		"rate_limit.requests": 100,
		"rate_limit.window":   "1m",
		"rate_limit.burst":    20,

		"cors.allowed_origins": []string{"http://localhost:3000"},
		"cors.allowed_methods": []string{
			"GET",
			"POST",
			"PUT",
			"PATCH",
			"DELETE",
			"OPTIONS",
		},
		"cors.allowed_headers": []string{
			"Accept",
			"Content-Type",
			"X-Request-ID",
			"x-auth-token",
			"x-admin-token",
		},
		"cors.allow_credentials": true,
		"cors.max_age":           300,

		"log.level":  "info",
		"log.format": "json",

		"otel.enabled":      false,
		"otel.insecure":     true,
		"otel.sample_rate":  0.1,
		"otel.service_name": "storefront",
	}

	for key, value := range defaults {
		if err := k.Set(key, value); err != nil {
			return fmt.Errorf("set default %s: %w", key, err)
		}
	}

	return nil
}

var envKeyMap = map[string]string{
	"DATABASE_URL":         "database.url",
	"REDIS_URL":            "redis.url",
	"ENVIRONMENT":          "app.environment",
	"HOST":                 "server.host",
	"PORT":                 "server.port",
	"LOG_LEVEL":            "log.level",
	"LOG_FORMAT":           "log.format",
	"AUTH_STRATEGY":        "auth.strategy",
	"SESSION_TTL":          "auth.session_ttl",
	"SESSION_COOKIE":       "auth.session_cookie",
	"TOKEN_EXPIRE":         "auth.token_expire",
	"JWT_SECRET_KEY":       "auth.user_token_secret",
	"ADMIN_TOKEN_SECRET":   "auth.admin_token_secret",
	"PRODUCT_CREATE_ROLE":  "auth.product_create_role",
	"UPLOAD_DIR":           "uploads.dir",
	"UPLOAD_MAX_FILE_SIZE": "uploads.max_file_size",
	"RATE_LIMIT_REQUESTS":  "rate_limit.requests",
	"RATE_LIMIT_WINDOW":    "rate_limit.window",
	"RATE_LIMIT_BURST":     "rate_limit.burst",
	"OTEL_ENDPOINT":        "otel.endpoint",
	"OTEL_SERVICE_NAME":    "otel.service_name",
	"OTEL_ENABLED":         "otel.enabled",
	"OTEL_INSECURE":        "otel.insecure",
	"OTEL_SAMPLE_RATE":     "otel.sample_rate",
}

func envKeyReplacer(s string) string {
	if mapped, ok := envKeyMap[s]; ok {
		return mapped
	}
	return ""
}

func validate(c *Config) error {
	if c.Database.URL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}

	if c.Redis.URL == "" {
		return fmt.Errorf("REDIS_URL is required")
	}

	switch c.Auth.Strategy {
	case StrategySession:
		if c.Auth.SessionTTL <= 0 {
			return fmt.Errorf("auth.session_ttl must be positive")
		}
		if c.Auth.SessionCookie == "" {
			return fmt.Errorf("auth.session_cookie is required")
		}
	case StrategyToken:
		if c.Auth.UserTokenSecret == "" || c.Auth.AdminTokenSecret == "" {
			return fmt.Errorf(
				"JWT_SECRET_KEY and ADMIN_TOKEN_SECRET are required for the token strategy",
			)
		}
		if c.Auth.UserTokenSecret == c.Auth.AdminTokenSecret {
			return fmt.Errorf(
				"user and admin token secrets must differ",
			)
		}
		if c.Auth.TokenExpire <= 0 {
			return fmt.Errorf("auth.token_expire must be positive")
		}
	default:
		return fmt.Errorf(
			"auth.strategy must be %q or %q",
			StrategyToken,
			StrategySession,
		)
	}

	if c.Auth.ProductCreateRole != "user" &&
		c.Auth.ProductCreateRole != "admin" {
		return fmt.Errorf(`auth.product_create_role must be "user" or "admin"`)
	}

	if c.Uploads.MaxFileSize <= 0 {
		return fmt.Errorf("uploads.max_file_size must be positive")
	}

	if c.CORS.AllowCredentials {
		for _, origin := range c.CORS.AllowedOrigins {
			if origin == "*" {
				return fmt.Errorf(
					"CORS wildcard '*' cannot be used with AllowCredentials",
				)
			}
		}
	}

	if c.Server.ReadTimeout <= 0 {
		return fmt.Errorf("server.read_timeout must be positive")
	}

	if c.Server.WriteTimeout <= 0 {
		return fmt.Errorf("server.write_timeout must be positive")
	}

	return nil
}

func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}

func (s *ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}
