package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("HTTP_ADDR", "")
	t.Setenv("DB_PATH", "")
	t.Setenv("REDIS_ADDR", "")
	t.Setenv("REDIS_DB", "")
	t.Setenv("NATS_URL", "")
	t.Setenv("MAX_COMMIT_RETRIES", "")
	t.Setenv("NOTIFY_BUFFER", "")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, ":8080", cfg.HTTPAddr)
	require.Empty(t, cfg.DBPath)
	require.Empty(t, cfg.RedisAddr)
	require.Empty(t, cfg.NATSURL)
	require.Equal(t, 3, cfg.MaxCommitRetries)
	require.Equal(t, 256, cfg.NotifyBuffer)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("DB_PATH", "/tmp/auction.db")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("REDIS_DB", "2")
	t.Setenv("NATS_URL", "nats://localhost:4222")
	t.Setenv("MAX_COMMIT_RETRIES", "5")
	t.Setenv("NOTIFY_BUFFER", "32")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, ":9090", cfg.HTTPAddr)
	require.Equal(t, "/tmp/auction.db", cfg.DBPath)
	require.Equal(t, "localhost:6379", cfg.RedisAddr)
	require.Equal(t, 2, cfg.RedisDB)
	require.Equal(t, "nats://localhost:4222", cfg.NATSURL)
	require.Equal(t, 5, cfg.MaxCommitRetries)
	require.Equal(t, 32, cfg.NotifyBuffer)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"non_numeric_redis_db", "REDIS_DB", "two"},
		{"non_numeric_retries", "MAX_COMMIT_RETRIES", "many"},
		{"zero_retries", "MAX_COMMIT_RETRIES", "0"},
		{"negative_buffer", "NOTIFY_BUFFER", "-1"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv(tc.key, tc.value)
			_, err := Load()
			require.Error(t, err)
		})
	}
}
