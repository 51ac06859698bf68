package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

func getEnv(key string, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return fallback
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}

// parseEnv overlays Config with values from the environment. A .env file in
// the working directory is loaded first if present; absence is not an error.
func parseEnv(cfg *Config) {
	_ = godotenv.Load()

	cfg.BackendBaseURL = getEnv("POLYNOTES_BACKEND_URL", cfg.BackendBaseURL)
	cfg.IdentityBaseURL = getEnv("POLYNOTES_IDENTITY_URL", cfg.IdentityBaseURL)
	cfg.Realm = getEnv("POLYNOTES_REALM", cfg.Realm)
	cfg.ClientID = getEnv("POLYNOTES_CLIENT_ID", cfg.ClientID)
	cfg.RedirectURI = getEnv("POLYNOTES_REDIRECT_URI", cfg.RedirectURI)
	cfg.DataDir = getEnv("POLYNOTES_DATA_DIR", cfg.DataDir)
	cfg.FlushInterval = getEnvAsDuration("POLYNOTES_FLUSH_INTERVAL", cfg.FlushInterval)
	cfg.SweepInterval = getEnvAsDuration("POLYNOTES_SWEEP_INTERVAL", cfg.SweepInterval)
	cfg.RequestTimeout = getEnvAsDuration("POLYNOTES_REQUEST_TIMEOUT", cfg.RequestTimeout)
	cfg.FeedCount = getEnvAsInt("POLYNOTES_FEED_COUNT", cfg.FeedCount)
}
