package app

import (
	"errors"
	"os"
	"strconv"
	"time"

	"github.com/agriwatch/farmportal/pkg/jwtx"
)

type Config struct {
	Secret string // Required: HMAC signing secret for session tokens
	Issuer string // Optional: issuer claim for tokens (default: farm-portal)

	TokenTTL            time.Duration // Optional: session token lifetime (default: 24h)
	DatabaseFile        string        // Optional: path to SQLite database file (default: ./portal.db)
	SeedDemoData        bool          // Optional: insert demo fixtures into an empty database (default: true)
	Env                 string        // Environment (dev, staging, prod) (default: dev)
	LogLevel            string        // Log level (debug, info, warn, error) (default: info)
	LogFormat           string        // Log format (json, text) (default: json)
	Port                int           // HTTP server port (default: 8080)
	ShutdownGracePeriod time.Duration // Graceful shutdown timeout (default: 10s)
}

// ErrMissingSecret means PORTAL_SECRET was not set. There is no safe
// default for a signing secret.
var ErrMissingSecret = errors.New("app: PORTAL_SECRET is required")

func LoadConfig() (Config, error) {
	cfg := Config{
		Secret:              os.Getenv("PORTAL_SECRET"),
		Issuer:              getEnvOrDefault("PORTAL_ISSUER", "farm-portal"),
		TokenTTL:            getEnvDurationOrDefault("PORTAL_TOKEN_TTL", jwtx.DefaultSessionTTL),
		DatabaseFile:        getEnvOrDefault("PORTAL_DATABASE_FILE", "portal.db"),
		SeedDemoData:        getEnvBoolOrDefault("PORTAL_SEED_DEMO_DATA", true),
		Env:                 getEnvOrDefault("ENV", "dev"),
		LogLevel:            getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:           getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod: getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
	}

	if cfg.Secret == "" {
		return Config{}, ErrMissingSecret
	}

	return cfg, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if boolValue, err := strconv.ParseBool(value); err == nil {
		return boolValue
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Integer values are taken as minutes
	if minutes, err := strconv.Atoi(value); err == nil {
		return time.Duration(minutes) * time.Minute
	}

	return defaultValue
}
