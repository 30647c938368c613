package config

import (
	"log/slog"
	"os"
	"strconv"
	"time"
)

const (
	SESSION_STORE_MEMORY = "memory"
	SESSION_STORE_VALKEY = "valkey"
)

type WebConfig struct {
	Addr         string
	SessionStore string
	SessionTTL   time.Duration
	CookieSecure bool
}

type AnalyzerConfig struct {
	BaseURL        string
	Timeout        time.Duration
	HealthInterval time.Duration
}

type ValkeyConfig struct {
	InitAddress string
	Password    string
	UseTLS      bool
	SelectDB    int
}

func getEnv(key, defaultValue string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	raw, ok := os.LookupEnv(key)
	if !ok || raw == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		slog.Warn("[Config] Invalid duration, using default",
			slog.String("key", key),
			slog.String("value", raw),
			slog.Duration("default", defaultValue))
		return defaultValue
	}
	return d
}

func GetWebConfig() WebConfig {
	return WebConfig{
		Addr:         getEnv("WEB_ADDR", ":3000"),
		SessionStore: getEnv("SESSION_STORE", SESSION_STORE_MEMORY),
		SessionTTL:   getDuration("SESSION_TTL", 2*time.Hour),
		CookieSecure: os.Getenv("COOKIE_SECURE") == "true",
	}
}

// GetAnalyzerConfig mirrors the summarizer client policy: production gets a
// short timeout, everything else waits for slow model cold starts.
func GetAnalyzerConfig() AnalyzerConfig {
	timeout := 60 * time.Second
	if os.Getenv("APP_ENV") == "production" {
		timeout = 10 * time.Second
	}

	return AnalyzerConfig{
		BaseURL:        getEnv("ANALYZER_BASE_URL", "http://127.0.0.1:8000"),
		Timeout:        getDuration("ANALYZER_TIMEOUT", timeout),
		HealthInterval: getDuration("ANALYZER_HEALTH_INTERVAL", 15*time.Second),
	}
}

func GetValkeyConfig() ValkeyConfig {
	db, err := strconv.Atoi(os.Getenv("VALKEY_SELECT_DB"))
	if err != nil {
		db = 0
	}

	return ValkeyConfig{
		InitAddress: getEnv("VALKEY_INIT_ADDRESS", "localhost:6379"),
		Password:    os.Getenv("VALKEY_PASSWORD"),
		UseTLS:      os.Getenv("VALKEY_TLS") == "true",
		SelectDB:    db,
	}
}
