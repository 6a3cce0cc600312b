// Package config loads terminal and stub-backend settings from the
// environment, after an optional .env file.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	DefaultAPIBaseURL     = "http://localhost:5000"
	DefaultHTTPTimeout    = 10 * time.Second
	DefaultSearchDebounce = 300 * time.Millisecond
	DefaultSearchCacheTTL = 5 * time.Second
	DefaultPaymentMethod  = "cash"
	DefaultServiceName    = "pos-terminal"
	DefaultPort           = "5000"
)

type Config struct {
	APIBaseURL     string
	HTTPTimeout    time.Duration
	SearchDebounce time.Duration
	SearchCacheTTL time.Duration
	RedisAddr      string
	JournalPath    string
	PaymentMethod  string
	LogLevel       string
	OTelEnabled    bool
	ServiceName    string
	Port           string
	// Username and Password sign the terminal in when the backend uses
	// form login. Empty Username skips the login.
	Username string
	Password string
}

// Load reads .env files (missing files are ignored) and then the environment.
func Load(envFiles ...string) (*Config, error) {
	if err := godotenv.Load(envFiles...); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("config: load env file: %w", err)
	}
	return FromEnv()
}

// FromEnv builds a Config from the process environment only.
func FromEnv() (*Config, error) {
	cfg := &Config{
		APIBaseURL:    getEnv("POS_API_BASE_URL", DefaultAPIBaseURL),
		RedisAddr:     os.Getenv("REDIS_ADDR"),
		JournalPath:   os.Getenv("POS_JOURNAL_PATH"),
		PaymentMethod: getEnv("POS_PAYMENT_METHOD", DefaultPaymentMethod),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		ServiceName:   getEnv("OTEL_SERVICE_NAME", DefaultServiceName),
		Port:          getEnv("PORT", DefaultPort),
		Username:      os.Getenv("POS_USERNAME"),
		Password:      os.Getenv("POS_PASSWORD"),
	}

	var err error
	if cfg.HTTPTimeout, err = durationEnv("POS_HTTP_TIMEOUT", DefaultHTTPTimeout); err != nil {
		return nil, err
	}
	if cfg.SearchDebounce, err = durationEnv("POS_SEARCH_DEBOUNCE", DefaultSearchDebounce); err != nil {
		return nil, err
	}
	if cfg.SearchCacheTTL, err = durationEnv("POS_SEARCH_CACHE_TTL", DefaultSearchCacheTTL); err != nil {
		return nil, err
	}
	if cfg.OTelEnabled, err = boolEnv("OTEL_ENABLED", false); err != nil {
		return nil, err
	}
	if cfg.HTTPTimeout <= 0 {
		return nil, fmt.Errorf("config: POS_HTTP_TIMEOUT must be positive, got %s", cfg.HTTPTimeout)
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func durationEnv(key string, fallback time.Duration) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("config: %s: %w", key, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("config: %s must not be negative, got %s", key, raw)
	}
	return d, nil
}

func boolEnv(key string, fallback bool) (bool, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("config: %s: %w", key, err)
	}
	return b, nil
}
