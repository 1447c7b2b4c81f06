// AngelaMos | 2026
// main.go

package main

import (
	"context"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/adeyemi-dev/storefront/internal/admin"
	"github.com/adeyemi-dev/storefront/internal/auth"
	"github.com/adeyemi-dev/storefront/internal/cart"
	"github.com/adeyemi-dev/storefront/internal/config"
	"github.com/adeyemi-dev/storefront/internal/core"
	"github.com/adeyemi-dev/storefront/internal/health"
	"github.com/adeyemi-dev/storefront/internal/middleware"
	"github.com/adeyemi-dev/storefront/internal/product"
	"github.com/adeyemi-dev/storefront/internal/server"
	"github.com/adeyemi-dev/storefront/internal/session"
	"github.com/adeyemi-dev/storefront/internal/shipping"
	"github.com/adeyemi-dev/storefront/internal/user"
)

const (
	drainDelay = 5 * time.Second
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	if err := run(*configPath); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

//nolint:funlen // bootstrap code is inherently verbose
func run(configPath string) error {
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGINT,
		syscall.SIGTERM,
	)
	defer stop()

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	logger := setupLogger(cfg.Log)
	slog.SetDefault(logger)

	logger.Info("starting application",
		"name", cfg.App.Name,
		"version", cfg.App.Version,
		"environment", cfg.App.Environment,
	)

	var telemetry *core.Telemetry
	if cfg.Otel.Enabled {
		tel, telErr := core.NewTelemetry(ctx, cfg.Otel, cfg.App)
		if telErr != nil {
			logger.Warn("failed to initialize telemetry", "error", telErr)
		} else {
			telemetry = tel
			logger.Info("OpenTelemetry tracer initialized",
				"endpoint", cfg.Otel.Endpoint,
			)
		}
	}

	db, err := core.NewDatabase(ctx, cfg.Database)
	if err != nil {
		return err
	}
	logger.Info("database connected",
		"max_open_conns", cfg.Database.MaxOpenConns,
		"max_idle_conns", cfg.Database.MaxIdleConns,
	)

	redis, err := core.NewRedis(ctx, cfg.Redis)
	if err != nil {
		return err
	}
	logger.Info("redis connected",
		"pool_size", cfg.Redis.PoolSize,
	)

	issuer, err := session.New(cfg.Auth, redis.Client, cfg.IsProduction())
	if err != nil {
		return err
	}
	logger.Info("session issuer initialized", "strategy", cfg.Auth.Strategy)

	imageStore, err := product.NewDiskImageStore(cfg.Uploads)
	if err != nil {
		return err
	}

	userRepo := user.NewRepository(db.DB)
	userSvc := user.NewService(userRepo)
	userHandler := user.NewHandler(userSvc)

	authSvc := auth.NewService(userSvc, issuer)
	authHandler := auth.NewHandler(authSvc, issuer)

	shippingRepo := shipping.NewRepository(db.DB)
	shippingHandler := shipping.NewHandler(shippingRepo)

	productRepo := product.NewRepository(db.DB)
	productSvc := product.NewService(productRepo, imageStore)
	productHandler := product.NewHandler(productSvc, cfg.Uploads)

	cartRepo := cart.NewRepository(db.DB)
	cartSvc := cart.NewService(cartRepo, productSvc)
	cartHandler := cart.NewHandler(cartSvc, issuer)

	healthHandler := health.NewHandler()
	healthHandler.AddDependency("database", db)
	healthHandler.AddDependency("redis", redis)

	adminHandler := admin.NewHandler(admin.HandlerConfig{
		DBStats:    db.Stats,
		RedisStats: redis.PoolStats,
		DBPing:     db.Ping,
		RedisPing:  redis.Ping,
		Counter: storeCounter{
			users:    userSvc,
			products: productSvc,
			carts:    cartRepo,
		},
	})

	srv := server.New(server.Config{
		ServerConfig: cfg.Server,
		Notifier:     healthHandler,
		Logger:       logger,
	})

	router := srv.Router()

	router.Use(middleware.RequestID)
	router.Use(middleware.Logger(logger))
	router.Use(
		middleware.NewRateLimiter(redis.Client, middleware.RateLimitConfig{
			Limit: middleware.PerMinute(
				cfg.RateLimit.Requests,
				cfg.RateLimit.Burst,
			),
			FailOpen: true,
		}).Handler,
	)
	router.Use(middleware.SecurityHeaders(cfg.IsProduction()))
	router.Use(middleware.CORS(cfg.CORS))

	healthHandler.RegisterRoutes(router)

	requireUser := middleware.RequireUser(issuer)
	requireAdmin := middleware.RequireAdmin(issuer)

	requireCreator := requireUser
	if cfg.Auth.ProductCreateRole == "admin" {
		requireCreator = requireAdmin
	}

	router.Route("/user", func(r chi.Router) {
		authHandler.RegisterRoutes(r, requireUser, requireAdmin)
		shippingHandler.RegisterRoutes(r, requireUser)
		adminHandler.RegisterRoutes(r, requireAdmin)
		userHandler.RegisterAdminRoutes(r, requireAdmin)
		userHandler.RegisterRoutes(r, requireUser)
	})

	router.Route("/product", func(r chi.Router) {
		productHandler.RegisterRoutes(r, requireCreator)
		cartHandler.RegisterAddRoute(r, requireUser)
	})

	router.Route("/cart", func(r chi.Router) {
		cartHandler.RegisterRoutes(r, requireUser)
	})

	router.Handle("/uploads/*", http.StripPrefix(
		"/uploads/",
		http.FileServer(http.Dir(cfg.Uploads.Dir)),
	))

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	select {
	case err := <-errChan:
		return err
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		cfg.Server.ShutdownTimeout+drainDelay+5*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx, drainDelay); err != nil {
		logger.Error("server shutdown error", "error", err)
	}

	if telemetry != nil {
		if err := telemetry.Shutdown(shutdownCtx); err != nil {
			logger.Error("telemetry shutdown error", "error", err)
		}
	}

	if err := redis.Close(); err != nil {
		logger.Error("redis close error", "error", err)
	}

	if err := db.Close(); err != nil {
		logger.Error("database close error", "error", err)
	}

	logger.Info("application stopped")
	return nil
}

// storeCounter gathers the dashboard totals from the catalog services.
type storeCounter struct {
	users    *user.Service
	products *product.Service
	carts    cart.Repository
}

func (c storeCounter) CountUsers(ctx context.Context) (int, error) {
	return c.users.CountUsers(ctx)
}

func (c storeCounter) CountProducts(ctx context.Context) (int, error) {
	return c.products.CountProducts(ctx)
}

func (c storeCounter) CountCarts(ctx context.Context) (int, error) {
	return c.carts.Count(ctx)
}

func setupLogger(cfg config.LogConfig) *slog.Logger {
	var handler slog.Handler

	level := slog.LevelInfo
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	opts := &slog.HandlerOptions{Level: level}

	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	return slog.New(handler)
}
