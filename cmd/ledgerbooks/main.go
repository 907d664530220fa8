package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/SscSPs/ledger_books_app/internal/core/ports/repositories"
	"github.com/SscSPs/ledger_books_app/internal/core/services"
	"github.com/SscSPs/ledger_books_app/internal/handlers"
	"github.com/SscSPs/ledger_books_app/internal/middleware"
	"github.com/SscSPs/ledger_books_app/internal/platform/config"
	"github.com/SscSPs/ledger_books_app/internal/repositories/cache"
	"github.com/SscSPs/ledger_books_app/internal/repositories/database/pgsql"
	rediscache "github.com/SscSPs/ledger_books_app/pkg/cache"
	"github.com/SscSPs/ledger_books_app/pkg/database"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// @title Ledger Books API
// @version 1.0
// @description Multi-tenant double-entry journal posting service.

// @host localhost:8080
// @BasePath /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @security BearerAuth
func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	dbPool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, cfg.EnableDBCheck)
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer dbPool.Close()
	logger.Info("Database connection pool established.")

	logger.Info("Running database migrations...", slog.String("path", cfg.MigrationsPath))
	changed, err := database.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath, database.MigrateUp)
	if err != nil {
		logger.Error("Failed to apply migrations", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if changed {
		logger.Info("Database migrations applied successfully.")
	} else {
		logger.Info("No new migrations to apply.")
	}

	var redisClient *redis.Client
	var metricsCache repositories.MetricsCache
	if cfg.RedisAddr != "" {
		redisClient, err = rediscache.NewRedisClient(ctx, cfg.RedisAddr)
		if err != nil {
			logger.Error("Failed to connect to redis", slog.String("error", err.Error()))
			os.Exit(1)
		}
		defer func() {
			if cerr := redisClient.Close(); cerr != nil {
				logger.Warn("Error closing redis client", slog.String("error", cerr.Error()))
			}
		}()
		metricsCache = cache.NewRedisMetricsCache(redisClient, cfg.MetricsCacheTTL)
		logger.Info("Metrics cache enabled", slog.String("redis_addr", cfg.RedisAddr), slog.Duration("ttl", cfg.MetricsCacheTTL))
	} else {
		logger.Info("REDIS_ADDR not set; metrics are computed on every request and rate limits are per process")
	}

	rateLimiter, err := middleware.NewLimiter(cfg.RateLimit, redisClient)
	if err != nil {
		logger.Error("Failed to create rate limiter", slog.String("error", err.Error()))
		os.Exit(1)
	}

	repos := pgsql.NewRepositoryProvider(dbPool)
	serviceContainer := services.NewServiceContainer(cfg, repos, metricsCache)

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())
	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.CORSAllowedOrigins,
			AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodOptions},
			AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", middleware.RequestIDHeader},
			ExposeHeaders:    []string{middleware.RequestIDHeader},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}
	r.Use(middleware.SecurityHeaders(cfg.IsProduction), middleware.RateLimit(rateLimiter))

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	handlers.RegisterRoutes(r, cfg, serviceContainer)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		logger.Info("Server starting", slog.String("port", cfg.Port))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server failed to run", slog.String("error", err.Error()))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Graceful shutdown failed", slog.String("error", err.Error()))
	}
}
