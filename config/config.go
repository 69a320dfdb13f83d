package config

import (
	"fmt"
	"net/netip"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Host                 string
	Port                 string
	ScalerPath           string
	ModelPath            string
	MaxStoredPredictions int
	LogLevel             string
	LogFormat            string
	RedisCfg             RedisConfig
	RateLimitCfg         RateLimitConfig

	// Warnings collects values that were rejected in favour of a default.
	// They are logged once the logger is configured.
	Warnings []string
}

type RedisConfig struct {
	Addr            string // empty disables Redis, an in-memory cache is used
	Password        string
	DB              int
	CacheTTL        time.Duration
	MaxLocalEntries int
}

type RateLimitConfig struct {
	Requests int
	Window   time.Duration
	// TrustedProxies are the peers whose X-Forwarded-For header is believed.
	TrustedProxies []netip.Prefix
}

// Load reads an optional .env file and then the process environment.
// A missing .env is not an error; variables already set in the
// environment win over the file.
func Load() *Config {
	_ = godotenv.Load()
	return fromEnv()
}

func fromEnv() *Config {
	cfg := &Config{
		Host:       getEnvOrDefault("HOST", "0.0.0.0"),
		Port:       getEnvOrDefault("PORT", "5000"),
		ScalerPath: getEnvOrDefault("SCALER_PATH", "scaler.json"),
		ModelPath:  getEnvOrDefault("MODEL_PATH", "loan_model.json"),
		LogLevel:   getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:  getEnvOrDefault("LOG_FORMAT", "text"),
	}

	cfg.MaxStoredPredictions = cfg.intOrDefault("MAX_STORED_PREDICTIONS", 1000)
	cfg.RedisCfg = RedisConfig{
		Addr:            getEnvOrDefault("REDIS_ADDR", ""),
		Password:        getEnvOrDefault("REDIS_PASSWORD", ""),
		DB:              cfg.intOrDefault("REDIS_DB", 0),
		CacheTTL:        cfg.durationOrDefault("CACHE_TTL", 10*time.Minute),
		MaxLocalEntries: cfg.intOrDefault("CACHE_MAX_ENTRIES", 10000),
	}
	cfg.RateLimitCfg = RateLimitConfig{
		Requests:       cfg.intOrDefault("RATE_LIMIT_REQUESTS", 60),
		Window:         cfg.durationOrDefault("RATE_LIMIT_WINDOW", time.Minute),
		TrustedProxies: cfg.prefixList("TRUSTED_PROXIES"),
	}
	return cfg
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return c.Host + ":" + c.Port
}

func getEnvOrDefault(key, defaultValue string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return defaultValue
}

func (c *Config) intOrDefault(key string, defaultValue int) int {
	raw := getEnvOrDefault(key, "")
	if raw == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		c.warnf("%s=%q is not an integer, using %d", key, raw, defaultValue)
		return defaultValue
	}
	return n
}

func (c *Config) durationOrDefault(key string, defaultValue time.Duration) time.Duration {
	raw := getEnvOrDefault(key, "")
	if raw == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		c.warnf("%s=%q is not a duration, using %s", key, raw, defaultValue)
		return defaultValue
	}
	return d
}

// prefixList parses a comma separated list of IPs or CIDRs. Bad entries are
// skipped with a warning.
func (c *Config) prefixList(key string) []netip.Prefix {
	var out []netip.Prefix
	for _, item := range strings.Split(getEnvOrDefault(key, ""), ",") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}

		if strings.Contains(item, "/") {
			prefix, err := netip.ParsePrefix(item)
			if err != nil {
				c.warnf("%s: ignoring invalid CIDR %q", key, item)
				continue
			}
			out = append(out, prefix.Masked())
			continue
		}

		addr, err := netip.ParseAddr(item)
		if err != nil {
			c.warnf("%s: ignoring invalid address %q", key, item)
			continue
		}
		addr = addr.Unmap()
		out = append(out, netip.PrefixFrom(addr, addr.BitLen()))
	}
	return out
}

func (c *Config) warnf(format string, args ...any) {
	c.Warnings = append(c.Warnings, fmt.Sprintf(format, args...))
}
