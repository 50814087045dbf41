package internal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfig(t *testing.T) {
	t.Run("applies defaults", func(t *testing.T) {
		t.Setenv("ENV", "")
		t.Setenv("PORT", "")
		t.Setenv("STORAGE_PROVIDER", "")

		cfg, err := NewConfig()
		require.NoError(t, err)

		assert.Equal(t, "dev", cfg.Env)
		assert.Equal(t, uint16(3000), cfg.Port)
		assert.Equal(t, "local", cfg.Storage.Provider)
		assert.Equal(t, uint16(15), cfg.Auth.AccessTokenTTL)
	})

	t.Run("parses the allowed origins list", func(t *testing.T) {
		t.Setenv("CORS_ALLOWED_ORIGINS", "https://localplate.com, https://admin.localplate.com,")

		cfg, err := NewConfig()
		require.NoError(t, err)
		assert.Equal(t, []string{"https://localplate.com", "https://admin.localplate.com"}, cfg.CORSAllowedOrigins)
	})

	t.Run("falls back on an unknown log level", func(t *testing.T) {
		t.Setenv("LOG_LEVEL", "verbose")

		cfg, err := NewConfig()
		require.NoError(t, err)
		assert.Equal(t, "info", cfg.LogLevel)
	})

	t.Run("disables tax when the rate is out of range", func(t *testing.T) {
		t.Setenv("TAX_RATE", "1.5")

		cfg, err := NewConfig()
		require.NoError(t, err)
		assert.Zero(t, cfg.Orders.TaxRate)
	})

	t.Run("rejects an out of range sentry sample rate", func(t *testing.T) {
		t.Setenv("SENTRY_SAMPLE_RATE", "3.5")

		_, err := NewConfig()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid configuration")
	})

	t.Run("rejects an unknown storage provider", func(t *testing.T) {
		t.Setenv("STORAGE_PROVIDER", "gcs")

		_, err := NewConfig()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid configuration")
	})

	t.Run("requires a real jwt secret in production", func(t *testing.T) {
		t.Setenv("ENV", "prod")
		t.Setenv("JWT_SECRET", "")

		_, err := NewConfig()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "JWT_SECRET")
	})
}
