package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8000", cfg.ServerPort)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "models", cfg.ModelDir)
	assert.Equal(t, int64(250*1024*1024), cfg.ModelMaxBytes)
	assert.Equal(t, 120, cfg.RateLimitPerMinute)
	assert.Empty(t, cfg.DatabaseURL)
	assert.Empty(t, cfg.RedisAddr)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("RATE_LIMIT_PER_MINUTE", "30")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.ServerPort)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 30, cfg.RateLimitPerMinute)
}
