// Package main is the entrypoint for the Formdesk API server.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"regexp"
	"strings"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/formdesk/formdesk/internal/cache"
	"github.com/formdesk/formdesk/internal/config"
	"github.com/formdesk/formdesk/internal/handler"
	"github.com/formdesk/formdesk/internal/middleware"
	"github.com/formdesk/formdesk/internal/migrate"
	"github.com/formdesk/formdesk/internal/repository"
	"github.com/formdesk/formdesk/internal/server"
	"github.com/formdesk/formdesk/internal/service"
)

func main() {
	ctx := context.Background()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Initialize logger
	logger := initLogger(cfg)

	// Apply schema migrations
	if err := migrate.Up(ctx, cfg.DatabaseURL(), logger); err != nil {
		logger.Error(
			"failed to apply migrations",
			slog.String("error", sanitizeError(err, cfg.DatabaseURL())),
		)
		os.Exit(1)
	}

	// Initialize database
	repo, err := repository.New(ctx, cfg.DatabaseURL())
	if err != nil {
		logger.Error(
			"failed to connect to database",
			slog.String("error", sanitizeError(err, cfg.DatabaseURL())),
			slog.String("database_url", redactURL(cfg.DatabaseURL())),
		)
		os.Exit(1)
	}
	logger.Info("connected to database")

	// Initialize cache; only needed when submission rate limiting is on
	var cacheClient *cache.Cache
	if cfg.RateLimitSubmitEnabled {
		cacheClient, err = cache.New(ctx, cfg.RedisURL)
		if err != nil {
			logger.Error(
				"failed to connect to Redis",
				slog.String("error", sanitizeError(err, cfg.RedisURL)),
				slog.String("redis_url", redactURL(cfg.RedisURL)),
			)
			os.Exit(1)
		}
		logger.Info("connected to Redis")
	}

	// Initialize services
	formService := service.NewFormService(repo)

	// Initialize handlers
	h := handler.New()
	healthHandler := newHealthHandler(repo, cacheClient)
	formHandler := handler.NewFormHandler(formService, logger)
	userHandler := handler.NewUserHandler(repo, logger)
	staticHandler := handler.NewStaticHandler(cfg.StaticDir)

	// Setup router
	r := setupRouter(h, healthHandler, formHandler, userHandler, staticHandler, cacheClient, cfg, logger)

	// Create and run server
	srv := server.New(
		r,
		cfg.AppPort,
		cfg.ReadTimeout,
		cfg.WriteTimeout,
		cfg.ShutdownTimeout,
		logger,
	)

	srv.OnShutdown("database", func(context.Context) error {
		repo.Close()
		return nil
	})
	if cacheClient != nil {
		srv.OnShutdown("redis", func(context.Context) error {
			return cacheClient.Close()
		})
	}

	logger.Info("starting server",
		"port", cfg.AppPort,
		"base_url", cfg.BaseURL,
		"env", cfg.AppEnv,
		"create_only", cfg.CreateOnly,
	)

	if err := srv.Run(); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}

// initLogger initializes the slog logger based on configuration.
func initLogger(cfg *config.Config) *slog.Logger {
	var h slog.Handler

	opts := &slog.HandlerOptions{
		Level: parseLogLevel(cfg.LogLevel),
	}

	if cfg.LogFormat == "json" {
		h = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		h = slog.NewTextHandler(os.Stdout, opts)
	}

	logger := slog.New(h)
	slog.SetDefault(logger)

	return logger
}

// parseLogLevel converts string log level to slog.Level.
func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// newHealthHandler builds the health handler without passing a typed nil
// when the cache is not configured.
func newHealthHandler(repo *repository.Repository, cacheClient *cache.Cache) *handler.HealthHandler {
	if cacheClient == nil {
		return handler.NewHealthHandler(repo, nil)
	}
	return handler.NewHealthHandler(repo, cacheClient)
}

// setupRouter configures the chi router with all routes and middleware.
func setupRouter(
	h *handler.Handler,
	healthHandler *handler.HealthHandler,
	formHandler *handler.FormHandler,
	userHandler *handler.UserHandler,
	staticHandler *handler.StaticHandler,
	cacheClient *cache.Cache,
	cfg *config.Config,
	logger *slog.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recoverer(logger))
	r.Use(middleware.CORS(middleware.DefaultCORSConfig(cfg.GetCORSAllowedOrigins())))

	// Liveness string and health probes
	r.Get("/", h.Root)
	r.Get("/healthz", healthHandler.Healthz)
	r.Get("/readyz", healthHandler.Readyz)

	// Users are read-only
	r.Get("/users", userHandler.List)

	// Rate limit middleware configuration for public submissions
	rateLimitCfg := middleware.RateLimitConfig{
		Logger:           logger,
		Cache:            cacheClient,
		Enabled:          cfg.RateLimitSubmitEnabled && cacheClient != nil,
		SubmitsPerMinute: cfg.RateLimitSubmitsPerMin,
		Burst:            cfg.RateLimitSubmitBurst,
	}

	r.With(middleware.RateLimitSubmit(rateLimitCfg)).Post("/submit-form", formHandler.Create)

	// Full CRUD contract unless running in the degraded create-only mode
	if !cfg.CreateOnly {
		r.Route("/forms", func(r chi.Router) {
			r.Get("/", formHandler.List)
			r.Get("/{id}", formHandler.Get)
			r.Put("/{id}", formHandler.Update)
			r.Delete("/{id}", formHandler.Delete)
		})
	}

	// Anything else: serve the SPA for GETs, JSON errors otherwise
	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		if req.Method == http.MethodGet {
			staticHandler.Serve(w, req)
			return
		}
		h.NotFound(w, req)
	})
	r.MethodNotAllowed(h.MethodNotAllowed)

	return r
}

var passwordPattern = regexp.MustCompile(`(?i)password=[^\s]+`)

func redactURL(raw string) string {
	if raw == "" {
		return ""
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		return "[redacted]"
	}

	if parsed.User != nil {
		username := parsed.User.Username()
		if username == "" {
			parsed.User = url.User("redacted")
		} else {
			parsed.User = url.User(username)
		}
	}

	return parsed.String()
}

func sanitizeError(err error, secrets ...string) string {
	if err == nil {
		return ""
	}

	msg := err.Error()
	for _, secret := range secrets {
		if secret == "" {
			continue
		}
		redacted := redactURL(secret)
		if redacted == "" {
			redacted = "[redacted]"
		}
		msg = strings.ReplaceAll(msg, secret, redacted)
	}

	return passwordPattern.ReplaceAllString(msg, "password=redacted")
}
