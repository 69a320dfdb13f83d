package config

import (
	"net/netip"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnv_Defaults(t *testing.T) {
	for _, key := range []string{
		"HOST", "PORT", "SCALER_PATH", "MODEL_PATH", "REDIS_ADDR",
		"CACHE_TTL", "RATE_LIMIT_REQUESTS", "RATE_LIMIT_WINDOW",
		"LOG_LEVEL", "LOG_FORMAT", "MAX_STORED_PREDICTIONS", "REDIS_DB",
		"TRUSTED_PROXIES", "CACHE_MAX_ENTRIES",
	} {
		t.Setenv(key, "")
	}

	cfg := fromEnv()

	assert.Equal(t, "5000", cfg.Port)
	assert.Equal(t, "0.0.0.0:5000", cfg.Addr())
	assert.Equal(t, "scaler.json", cfg.ScalerPath)
	assert.Equal(t, "loan_model.json", cfg.ModelPath)
	assert.Empty(t, cfg.RedisCfg.Addr)
	assert.Equal(t, 10*time.Minute, cfg.RedisCfg.CacheTTL)
	assert.Equal(t, 60, cfg.RateLimitCfg.Requests)
	assert.Equal(t, time.Minute, cfg.RateLimitCfg.Window)
	assert.Equal(t, 1000, cfg.MaxStoredPredictions)
	assert.Equal(t, 10000, cfg.RedisCfg.MaxLocalEntries)
	assert.Empty(t, cfg.RateLimitCfg.TrustedProxies)
	assert.Empty(t, cfg.Warnings)
}

func TestFromEnv_Overrides(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("REDIS_ADDR", "redis:6379")
	t.Setenv("REDIS_DB", "2")
	t.Setenv("CACHE_TTL", "30s")
	t.Setenv("RATE_LIMIT_REQUESTS", "5")

	cfg := fromEnv()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "redis:6379", cfg.RedisCfg.Addr)
	assert.Equal(t, 2, cfg.RedisCfg.DB)
	assert.Equal(t, 30*time.Second, cfg.RedisCfg.CacheTTL)
	assert.Equal(t, 5, cfg.RateLimitCfg.Requests)
}

func TestFromEnv_MalformedFallsBack(t *testing.T) {
	t.Setenv("RATE_LIMIT_REQUESTS", "many")
	t.Setenv("CACHE_TTL", "forever")

	cfg := fromEnv()

	assert.Equal(t, 60, cfg.RateLimitCfg.Requests)
	assert.Equal(t, 10*time.Minute, cfg.RedisCfg.CacheTTL)
	require.Len(t, cfg.Warnings, 2)
	assert.Contains(t, cfg.Warnings[0], "CACHE_TTL")
	assert.Contains(t, cfg.Warnings[1], "RATE_LIMIT_REQUESTS")
}

func TestFromEnv_TrustedProxies(t *testing.T) {
	t.Setenv("TRUSTED_PROXIES", "10.0.0.0/8, 192.0.2.7 ,not-an-ip, 2001:db8::/32")

	cfg := fromEnv()

	assert.Equal(t, []netip.Prefix{
		netip.MustParsePrefix("10.0.0.0/8"),
		netip.MustParsePrefix("192.0.2.7/32"),
		netip.MustParsePrefix("2001:db8::/32"),
	}, cfg.RateLimitCfg.TrustedProxies)
	require.Len(t, cfg.Warnings, 1)
	assert.Contains(t, cfg.Warnings[0], "not-an-ip")
}
