package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const defaultJWTSecret = "a-very-secret-key-should-be-longer-and-random"

// Config holds application configuration.
type Config struct {
	DatabaseURL       string
	Port              string
	IsProduction      bool
	EnableDBCheck     bool
	JWTSecret         string
	JWTExpiryDuration time.Duration
	JWTIssuer         string
	MigrationsPath    string

	// Redis is optional; an empty address disables the metrics cache and uses in-memory rate limiting.
	RedisAddr       string
	MetricsCacheTTL time.Duration

	RateLimit          string // ulule/limiter formatted rate, e.g. "100-M"
	CORSAllowedOrigins []string
	PostingMaxRetries  int
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()
	return loadFrom(viper.New())
}

func loadFrom(v *viper.Viper) (*Config, error) {
	v.SetDefault("PGSQL_URL", "")
	v.SetDefault("PORT", "8080")
	v.SetDefault("IS_PRODUCTION", false)
	v.SetDefault("ENABLE_DB_CHECK", false)
	v.SetDefault("JWT_SECRET", defaultJWTSecret)
	v.SetDefault("JWT_EXPIRY_DURATION", "1h")
	v.SetDefault("JWT_ISSUER", "ledger-books-app")
	v.SetDefault("MIGRATIONS_PATH", "file://migrations")
	v.SetDefault("REDIS_ADDR", "")
	v.SetDefault("METRICS_CACHE_TTL", "5m")
	v.SetDefault("RATE_LIMIT", "100-M")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	v.SetDefault("POSTING_MAX_RETRIES", 3)

	v.AutomaticEnv()

	cfg := &Config{
		DatabaseURL:    v.GetString("PGSQL_URL"),
		Port:           v.GetString("PORT"),
		IsProduction:   v.GetBool("IS_PRODUCTION"),
		EnableDBCheck:  v.GetBool("ENABLE_DB_CHECK"),
		JWTSecret:      v.GetString("JWT_SECRET"),
		JWTIssuer:      v.GetString("JWT_ISSUER"),
		MigrationsPath: v.GetString("MIGRATIONS_PATH"),
		RedisAddr:      v.GetString("REDIS_ADDR"),
		RateLimit:      v.GetString("RATE_LIMIT"),
	}

	if cfg.DatabaseURL == "" {
		slog.Warn("PGSQL_URL environment variable not set")
	}
	if cfg.Port == "" {
		cfg.Port = "8080"
	}

	if cfg.JWTSecret == "" || cfg.JWTSecret == defaultJWTSecret {
		if cfg.IsProduction {
			return nil, fmt.Errorf("JWT_SECRET must be set in production")
		}
		cfg.JWTSecret = defaultJWTSecret
		slog.Warn("JWT_SECRET not set, using default insecure key")
	}

	// Load JWT Expiry Duration (e.g., "60m", "1h")
	jwtExpiryStr := v.GetString("JWT_EXPIRY_DURATION")
	jwtExpiry, err := time.ParseDuration(jwtExpiryStr)
	if err != nil {
		jwtExpiry = time.Hour
		slog.Warn("Invalid JWT_EXPIRY_DURATION, using default",
			slog.String("value", jwtExpiryStr),
			slog.String("default", jwtExpiry.String()))
	}
	cfg.JWTExpiryDuration = jwtExpiry

	ttlStr := v.GetString("METRICS_CACHE_TTL")
	ttl, err := time.ParseDuration(ttlStr)
	if err != nil || ttl <= 0 {
		ttl = 5 * time.Minute
		slog.Warn("Invalid METRICS_CACHE_TTL, using default",
			slog.String("value", ttlStr),
			slog.String("default", ttl.String()))
	}
	cfg.MetricsCacheTTL = ttl

	cfg.PostingMaxRetries = v.GetInt("POSTING_MAX_RETRIES")
	if cfg.PostingMaxRetries < 1 {
		return nil, fmt.Errorf("POSTING_MAX_RETRIES must be at least 1, got %d", cfg.PostingMaxRetries)
	}

	for _, origin := range strings.Split(v.GetString("CORS_ALLOWED_ORIGINS"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.CORSAllowedOrigins = append(cfg.CORSAllowedOrigins, origin)
		}
	}

	return cfg, nil
}
