package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"PORT", "STORE_BACKEND", "SNAPSHOT_TTL_HOURS", "JWT_EXPIRES_DAYS", "NODE_ENV", "SKIP_WORD_VALIDATION"} {
		t.Setenv(k, "")
	}
	c := Load()
	assert.Equal(t, "5175", c.Port)
	assert.Equal(t, "sqlite", c.StoreBackend)
	assert.Equal(t, 72*time.Hour, c.SnapshotTTL)
	assert.Equal(t, 14, c.JWTExpiresDays)
	assert.Equal(t, "hardle_token", c.CookieName)
	assert.False(t, c.Production)
	assert.False(t, c.SkipValidation)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("STORE_BACKEND", "redis")
	t.Setenv("REDIS_DB", "2")
	t.Setenv("SNAPSHOT_TTL_HOURS", "1")
	t.Setenv("NODE_ENV", "production")
	t.Setenv("SKIP_WORD_VALIDATION", "true")

	c := Load()
	assert.Equal(t, "9000", c.Port)
	assert.Equal(t, "redis", c.StoreBackend)
	assert.Equal(t, 2, c.RedisDB)
	assert.Equal(t, time.Hour, c.SnapshotTTL)
	assert.True(t, c.Production)
	assert.True(t, c.SkipValidation)
}

func TestGetEnvHelpers(t *testing.T) {
	t.Setenv("HARDLE_X_INT", "nope")
	t.Setenv("HARDLE_X_BOOL", "maybe")
	t.Setenv("HARDLE_X_STR", "")

	assert.Equal(t, 7, GetEnvAsInt("HARDLE_X_INT", 7))
	assert.True(t, GetEnvAsBool("HARDLE_X_BOOL", true))
	assert.Equal(t, "def", GetEnv("HARDLE_X_STR", "def"))
}
