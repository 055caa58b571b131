package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadRequiresDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("JWT_SECRET", "secret")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DATABASE_URL")
}

func TestLoadRequiresJWTSecret(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/crm")
	t.Setenv("JWT_SECRET", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET")
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/crm")
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("STATS_BACKFILL_DAYS", "")
	t.Setenv("STATS_WORKERS", "")
	t.Setenv("STATS_RUN_HOUR", "")
	t.Setenv("STATS_SCHEDULE", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.HTTPPort)
	assert.Equal(t, 0, cfg.DBMaxConns)
	assert.Equal(t, 1, cfg.StatsBackfillDays)
	assert.Equal(t, 4, cfg.StatsWorkers)
	assert.Equal(t, 2, cfg.StatsRunHour)
	assert.True(t, cfg.StatsSchedule)
	assert.Equal(t, 24*time.Hour, cfg.AccessTokenTTL)
}

func TestLoadClampsStatsValues(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/crm")
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("STATS_BACKFILL_DAYS", "-2")
	t.Setenv("STATS_WORKERS", "0")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 1, cfg.StatsBackfillDays)
	assert.Equal(t, 1, cfg.StatsWorkers)
}

func TestGetDurationAcceptsBareSeconds(t *testing.T) {
	t.Setenv("HTTP_READ_TIMEOUT", "30")
	assert.Equal(t, 30*time.Second, getDuration("HTTP_READ_TIMEOUT", 15*time.Second))

	t.Setenv("HTTP_READ_TIMEOUT", "45s")
	assert.Equal(t, 45*time.Second, getDuration("HTTP_READ_TIMEOUT", 15*time.Second))

	t.Setenv("HTTP_READ_TIMEOUT", "bogus")
	assert.Equal(t, 15*time.Second, getDuration("HTTP_READ_TIMEOUT", 15*time.Second))
}
