package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// AppConfig aggregates runtime configuration, injected via environment
// variables so deployments never hardcode endpoints.
type AppConfig struct {
	HTTPAddr string

	// DBPath selects the SQLite file backing the auction store; empty runs
	// on the in-memory store.
	DBPath string

	// RedisAddr enables the distributed per-auction lock; empty uses the
	// in-process keyed mutex.
	RedisAddr string
	RedisDB   int

	// NATSURL enables the broker-backed outbid notifier; empty logs notices.
	NATSURL string

	// MaxCommitRetries bounds recomputation after a lost-update conflict.
	MaxCommitRetries int

	// NotifyBuffer sizes the async outbid dispatch queue.
	NotifyBuffer int
}

// Load reads and validates configuration, falling back to defaults.
func Load() (AppConfig, error) {
	cfg := AppConfig{
		HTTPAddr:         getEnv("HTTP_ADDR", ":8080"),
		DBPath:           getEnv("DB_PATH", ""),
		RedisAddr:        getEnv("REDIS_ADDR", ""),
		RedisDB:          0,
		NATSURL:          getEnv("NATS_URL", ""),
		MaxCommitRetries: 3,
		NotifyBuffer:     256,
	}

	redisDB, err := getEnvInt("REDIS_DB", cfg.RedisDB)
	if err != nil {
		return AppConfig{}, fmt.Errorf("invalid REDIS_DB: %w", err)
	}
	cfg.RedisDB = redisDB

	retries, err := getEnvInt("MAX_COMMIT_RETRIES", cfg.MaxCommitRetries)
	if err != nil {
		return AppConfig{}, fmt.Errorf("invalid MAX_COMMIT_RETRIES: %w", err)
	}
	if retries <= 0 {
		return AppConfig{}, fmt.Errorf("MAX_COMMIT_RETRIES must be > 0")
	}
	cfg.MaxCommitRetries = retries

	buffer, err := getEnvInt("NOTIFY_BUFFER", cfg.NotifyBuffer)
	if err != nil {
		return AppConfig{}, fmt.Errorf("invalid NOTIFY_BUFFER: %w", err)
	}
	if buffer <= 0 {
		return AppConfig{}, fmt.Errorf("NOTIFY_BUFFER must be > 0")
	}
	cfg.NotifyBuffer = buffer

	return cfg, nil
}

// getEnv reads a string environment variable with a fallback default.
func getEnv(key, fallback string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	return v
}

// getEnvInt reads an integer environment variable with a fallback default.
func getEnvInt(key string, fallback int) (int, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback, nil
	}
	return strconv.Atoi(v)
}
