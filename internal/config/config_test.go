package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("BACKEND_BASE_URL", "")
	t.Setenv("VIEWSTATE_BACKEND", "")
	t.Setenv("APP_PORT", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8000", cfg.Backend.BaseURL)
	assert.Equal(t, ViewStateRedis, cfg.ViewState.Backend)
	assert.Equal(t, "0.0.0.0:8080", cfg.App.Addr())
	assert.Equal(t, "console_session", cfg.Session.CookieName)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("BACKEND_BASE_URL", "https://tickets.example.com/")
	t.Setenv("BACKEND_TIMEOUT_SECONDS", "0")
	t.Setenv("VIEWSTATE_BACKEND", "Postgres")
	t.Setenv("SESSION_TTL_MINUTES", "5")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "https://tickets.example.com", cfg.Backend.BaseURL)
	assert.Zero(t, cfg.Backend.Timeout())
	assert.Equal(t, ViewStatePostgres, cfg.ViewState.Backend)
	assert.Equal(t, 5*time.Minute, cfg.Session.TTL())
}

func TestLoadRejectsUnknownViewStateBackend(t *testing.T) {
	t.Setenv("VIEWSTATE_BACKEND", "localstorage")

	_, err := Load()
	require.Error(t, err)
}

func TestLoadRejectsBadRedisDB(t *testing.T) {
	t.Setenv("VIEWSTATE_BACKEND", "")
	t.Setenv("REDIS_DB", "zero")

	_, err := Load()
	require.Error(t, err)
}
