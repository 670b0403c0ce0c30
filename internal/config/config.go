package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/simaogato/partsdash-backend/internal/logger"
)

const (
	defaultAPIToken         = "dev-token"
	defaultGRPCAddr         = ":8080"
	defaultHTTPAddr         = ":8081"
	defaultStage            = "local"
	defaultAdminUsername    = "admin"
	defaultStuckPackingDays = 3
)

// Config is the runtime configuration of the dashboard backend
type Config struct {
	DBConnStr        string
	APIToken         string
	GRPCAddr         string
	HTTPAddr         string
	Stage            string
	LogLevel         string
	AdminUsername    string
	AdminPassword    string
	StuckPackingDays int
	CORSOrigins      []string
}

// Load reads configuration from the environment.
// A .env file in the working directory is loaded first when present; real
// environment variables always win over it.
func Load() (*Config, error) {
	// Missing .env is the normal case outside local development
	_ = godotenv.Load()

	stuckDays, err := intEnv("STUCK_PACKING_DAYS", defaultStuckPackingDays)
	if err != nil {
		return nil, err
	}
	if stuckDays < 0 {
		return nil, fmt.Errorf("STUCK_PACKING_DAYS must not be negative, got %d", stuckDays)
	}

	cfg := &Config{
		DBConnStr:        dbConnectionString(),
		APIToken:         envOr("API_TOKEN", defaultAPIToken),
		GRPCAddr:         envOr("GRPC_ADDR", defaultGRPCAddr),
		HTTPAddr:         envOr("HTTP_ADDR", defaultHTTPAddr),
		Stage:            envOr("STAGE", defaultStage),
		LogLevel:         os.Getenv("LOG_LEVEL"),
		AdminUsername:    envOr("ADMIN_USERNAME", defaultAdminUsername),
		AdminPassword:    os.Getenv("ADMIN_PASSWORD"),
		StuckPackingDays: stuckDays,
		CORSOrigins:      splitList(envOr("CORS_ALLOWED_ORIGINS", "http://localhost:3000")),
	}

	if cfg.Stage == logger.ProdStage && cfg.APIToken == defaultAPIToken {
		return nil, fmt.Errorf("API_TOKEN must be set to a non-default value when STAGE is %s", logger.ProdStage)
	}

	return cfg, nil
}

// dbConnectionString returns DB_CONN_STR, or builds one from the individual
// DB_* variables (Docker friendly)
func dbConnectionString() string {
	if connStr := os.Getenv("DB_CONN_STR"); connStr != "" {
		return connStr
	}

	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		envOr("DB_HOST", "localhost"),
		envOr("DB_PORT", "5432"),
		envOr("DB_USER", "postgres"),
		envOr("DB_PASSWORD", "postgres"),
		envOr("DB_NAME", "partsdash"),
	)
}

func envOr(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func intEnv(key string, fallback int) (int, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, raw, err)
	}
	return n, nil
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
