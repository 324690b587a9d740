package app

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	// Upstream Zoho Analytics credentials. The refresh token is held in
	// memory only and never logged.
	ClientID     string // Required: OAuth client ID for the analytics account
	ClientSecret string // Required: OAuth client secret
	RefreshToken string // Required: long-lived refresh token
	OrgID        string // Required: analytics organisation ID

	AnalyticsURL string // Optional: analytics API base URL (default: https://analyticsapi.zoho.com)
	AccountsURL  string // Optional: accounts/token endpoint base URL (default: https://accounts.zoho.com)

	Issuer string // Optional: issuer claim for gateway tokens (default: derived from port)
	APIKey string // Optional: pre-shared key accepted in X-API-Key; empty disables key auth

	RequestTimeout     time.Duration // Optional: per-request upstream budget (default: 60s)
	TokenSafetyMargin  time.Duration // Optional: refresh this long before token expiry (default: 60s)
	DefaultExportLimit int           // Optional: view export limit when omitted (default: 100)
	MaxExportLimit     int           // Optional: view export limit ceiling (default: 1000)
	MaxSQLLength       int           // Optional: SQL text size ceiling in bytes (default: 65536)

	Env                  string        // Environment (dev, staging, prod) (default: dev)
	LogLevel             string        // Log level (debug, info, warn, error) (default: info)
	LogFormat            string        // Log format (json, text) (default: json)
	Port                 int           // HTTP server port (default: 8080)
	ShutdownGracePeriod  time.Duration // Graceful shutdown timeout (default: 10s)
	HousekeepingInterval time.Duration // Expired grant cleanup interval (default: 1h)
}

func LoadConfig() Config {
	cfg := Config{
		ClientID:     os.Getenv("ANALYTICS_CLIENT_ID"),
		ClientSecret: os.Getenv("ANALYTICS_CLIENT_SECRET"),
		RefreshToken: os.Getenv("ANALYTICS_REFRESH_TOKEN"),
		OrgID:        os.Getenv("ANALYTICS_ORG_ID"),

		AnalyticsURL: getEnvOrDefault("ANALYTICS_SERVER_URL", "https://analyticsapi.zoho.com"),
		AccountsURL:  getEnvOrDefault("ACCOUNTS_SERVER_URL", "https://accounts.zoho.com"),

		Issuer: os.Getenv("GATEWAY_ISSUER"),
		APIKey: os.Getenv("API_KEY"),

		RequestTimeout:     getEnvDurationOrDefault("REQUEST_TIMEOUT", 60*time.Second),
		TokenSafetyMargin:  getEnvDurationOrDefault("TOKEN_SAFETY_MARGIN", 60*time.Second),
		DefaultExportLimit: getEnvIntOrDefault("DEFAULT_EXPORT_LIMIT", 100),
		MaxExportLimit:     getEnvIntOrDefault("MAX_EXPORT_LIMIT", 1000),
		MaxSQLLength:       getEnvIntOrDefault("MAX_SQL_LENGTH", 65536),

		Env:                  getEnvOrDefault("ENV", "dev"),
		LogLevel:             getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:            getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                 getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod:  getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
		HousekeepingInterval: getEnvDurationOrDefault("HOUSEKEEPING_INTERVAL", 1*time.Hour),
	}

	if cfg.Issuer == "" {
		cfg.Issuer = "http://localhost:" + strconv.Itoa(cfg.Port)
	}

	return cfg
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

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	// Try parsing as duration (e.g., "1h", "30m", "90s")
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Try parsing as integer seconds
	if seconds, err := strconv.Atoi(value); err == nil {
		return time.Duration(seconds) * time.Second
	}

	return defaultValue
}
