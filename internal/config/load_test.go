package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Load reads the process environment, so these tests use t.Setenv and
// cannot run in parallel.

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("SCRIBE_DATABASE_URL", "postgres://localhost:5432/scribe_test")
	t.Setenv("SCRIBE_AUTH_JWT_SECRET", "test-secret-that-is-at-least-32-chars-long")
}

func TestLoad(t *testing.T) {
	t.Run("defaults apply when only required values are set", func(t *testing.T) {
		setRequiredEnv(t)

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, defaultPort, cfg.Server.Port)
		assert.Equal(t, defaultLogLevel, cfg.Server.LogLevel)
		assert.False(t, cfg.Server.RateLimitEnabled)
		assert.Equal(t, defaultTokenLifetimeMinutes, cfg.Auth.TokenLifetimeMinutes)
		assert.Equal(t, 0, cfg.Auth.BcryptCost)
	})

	t.Run("environment variables override defaults", func(t *testing.T) {
		setRequiredEnv(t)
		t.Setenv("SCRIBE_SERVER_PORT", "9090")
		t.Setenv("SCRIBE_SERVER_LOG_LEVEL", "debug")
		t.Setenv("SCRIBE_AUTH_TOKEN_LIFETIME_MINUTES", "60")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, 9090, cfg.Server.Port)
		assert.Equal(t, "debug", cfg.Server.LogLevel)
		assert.Equal(t, 60, cfg.Auth.TokenLifetimeMinutes)
	})

	t.Run("missing database URL fails validation", func(t *testing.T) {
		t.Setenv("SCRIBE_AUTH_JWT_SECRET", "test-secret-that-is-at-least-32-chars-long")

		cfg, err := Load()
		assert.Nil(t, cfg)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid configuration")
	})

	t.Run("short JWT secret fails validation", func(t *testing.T) {
		t.Setenv("SCRIBE_DATABASE_URL", "postgres://localhost:5432/scribe_test")
		t.Setenv("SCRIBE_AUTH_JWT_SECRET", "too-short")

		cfg, err := Load()
		assert.Nil(t, cfg)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid configuration")
	})

	t.Run("invalid log level fails validation", func(t *testing.T) {
		setRequiredEnv(t)
		t.Setenv("SCRIBE_SERVER_LOG_LEVEL", "verbose")

		cfg, err := Load()
		assert.Nil(t, cfg)
		require.Error(t, err)
	})
}
