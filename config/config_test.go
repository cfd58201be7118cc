package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("ENV", "test")
	t.Setenv("DB_DRIVER", "")
	t.Setenv("JWT_SECRET", "")
	t.Setenv("REDIS_ADDR", "")
	t.Setenv("REDIS_URL", "")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.Equal(t, "nutrilog.db", cfg.DBPath)
	assert.Equal(t, "8080", cfg.ServerPort)
	assert.NotEmpty(t, cfg.JWTSecret) // dev fallback outside production
	assert.False(t, cfg.RelayEnabled())
}

func TestLoadConfigPostgresRequiresUser(t *testing.T) {
	t.Setenv("ENV", "test")
	t.Setenv("DB_DRIVER", "postgres")
	t.Setenv("DB_USER", "")

	_, err := LoadConfig()
	assert.Error(t, err)
}

func TestLoadConfigUnsupportedDriver(t *testing.T) {
	t.Setenv("ENV", "test")
	t.Setenv("DB_DRIVER", "mysql")

	_, err := LoadConfig()
	assert.Error(t, err)
}

func TestRelayEnabled(t *testing.T) {
	t.Setenv("ENV", "test")
	t.Setenv("REDIS_ADDR", "localhost:6379")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.True(t, cfg.RelayEnabled())
}

func TestAllowedOriginsParsing(t *testing.T) {
	t.Setenv("ENV", "test")
	t.Setenv("ALLOWED_ORIGINS", "https://app.example.com, https://staging.example.com")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, []string{"https://app.example.com", "https://staging.example.com"}, cfg.AllowedOrigins)
}
