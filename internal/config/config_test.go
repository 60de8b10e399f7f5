package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadRateLimitConfigDefaults(t *testing.T) {
	cfg := LoadRateLimitConfig()
	assert.True(t, cfg.Enabled)
	assert.Equal(t, 60, cfg.Capacity)
	assert.Equal(t, 1, cfg.RefillTokens)
	assert.Equal(t, time.Second, cfg.RefillInterval)
	assert.Equal(t, "ip_user_route", cfg.KeyStrategy)
	assert.Equal(t, "rl", cfg.Prefix)
}

func TestLoadRateLimitConfigOverrides(t *testing.T) {
	t.Setenv("RATE_LIMIT_ENABLED", "false")
	t.Setenv("RATE_LIMIT_CAPACITY", "10")
	t.Setenv("RATE_LIMIT_REFILL_INTERVAL", "500ms")

	cfg := LoadRateLimitConfig()
	assert.False(t, cfg.Enabled)
	assert.Equal(t, 10, cfg.Capacity)
	assert.Equal(t, 500*time.Millisecond, cfg.RefillInterval)
	// TTL is clamped to at least five refill intervals.
	assert.GreaterOrEqual(t, cfg.TTL, 5*cfg.RefillInterval)
}

func TestLoadRateLimitConfigSanitizesBadValues(t *testing.T) {
	t.Setenv("RATE_LIMIT_CAPACITY", "-5")
	t.Setenv("RATE_LIMIT_REFILL_TOKENS", "0")

	cfg := LoadRateLimitConfig()
	assert.Equal(t, 1, cfg.Capacity)
	assert.Equal(t, 1, cfg.RefillTokens)
}

func TestLoadCacheConfigDefaults(t *testing.T) {
	cfg := LoadCacheConfig()
	assert.True(t, cfg.Enabled)
	assert.True(t, cfg.Methods["GET"])
	assert.False(t, cfg.Methods["POST"])
	assert.Equal(t, 30*time.Second, cfg.TTL)
	assert.Equal(t, 1048576, cfg.MaxBodyBytes)
}

func TestParseMethodsNormalizes(t *testing.T) {
	m := parseMethods("get, head ,")
	assert.True(t, m["GET"])
	assert.True(t, m["HEAD"])
	assert.Len(t, m, 2)
}

func TestEnvHelpers(t *testing.T) {
	t.Setenv("SOME_BOOL", "yes")
	t.Setenv("SOME_INT", "42")
	t.Setenv("SOME_DUR", "2m")

	assert.True(t, envBool("SOME_BOOL", false))
	assert.Equal(t, 42, envInt("SOME_INT", 0))
	assert.Equal(t, 2*time.Minute, envDur("SOME_DUR", 0))

	assert.False(t, envBool("UNSET_BOOL", false))
	assert.Equal(t, 7, envInt("UNSET_INT", 7))
	assert.Equal(t, time.Second, envDur("UNSET_DUR", time.Second))
}
