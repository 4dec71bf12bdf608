package config

import (
	"io"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestLoadAppConfig_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET_KEY", "secret")

	cfg, err := LoadAppConfig(discardLogger(), "does-not-exist.env")
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, "localhost", cfg.Host)
	assert.Equal(t, 3000, cfg.Port)
	assert.Equal(t, "secret", cfg.Jwt.Secret)
	assert.Equal(t, 24*time.Hour, cfg.Jwt.Expiry)
	assert.Equal(t, 100, cfg.RateLimit.MaxRequests)
	assert.Equal(t, time.Minute, cfg.RateLimit.Window)
	assert.Equal(t, int64(10), cfg.Rewards.Follow)
	assert.Equal(t, int64(5), cfg.Rewards.Like)
	assert.Equal(t, int64(3), cfg.Rewards.Comment)
}

func TestLoadAppConfig_Overrides(t *testing.T) {
	t.Setenv("JWT_SECRET_KEY", "secret")
	t.Setenv("APP_ENV", "production")
	t.Setenv("APP_PORT", "8080")
	t.Setenv("REWARDS_FOLLOW", "25")
	t.Setenv("RATE_LIMIT_MAX_REQUESTS", "50")

	cfg, err := LoadAppConfig(discardLogger(), "does-not-exist.env")
	require.NoError(t, err)

	assert.Equal(t, "production", cfg.Env)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, int64(25), cfg.Rewards.Follow)
	assert.Equal(t, 50, cfg.RateLimit.MaxRequests)
}

func TestLoadAppConfig_RequiresJwtSecret(t *testing.T) {
	// t.Setenv registers the restore; the variable must be absent for
	// the required check to trip.
	t.Setenv("JWT_SECRET_KEY", "x")
	require.NoError(t, os.Unsetenv("JWT_SECRET_KEY"))

	_, err := LoadAppConfig(discardLogger(), "does-not-exist.env")
	assert.Error(t, err)
}
