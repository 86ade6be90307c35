package mcpserver

import (
	"log/slog"
	"os"
	"strconv"
	"time"
)

// serverConfig holds all configurable MCP server defaults.
// Loaded once at startup from environment variables via loadConfig().
type serverConfig struct {
	// Input limits.
	MaxInputSize int64

	// URL fetching.
	AllowPrivateIPs bool
	FetchTimeout    time.Duration
	FetchRate       float64
	FetchBurst      int

	// URL cache settings.
	CacheEnabled bool
	CacheMaxSize int
	CacheURLTTL  time.Duration

	// Issue and fix list pagination.
	DefaultLimit int
	MaxLimit     int
}

// cfg is the active server configuration, initialized at package load time.
var cfg = loadConfig()

// loadConfig reads configuration from SPECLINT_* environment variables.
// Invalid values log a warning and fall back to the hardcoded default.
func loadConfig() *serverConfig {
	return &serverConfig{
		MaxInputSize:    envInt64("SPECLINT_MCP_MAX_INPUT_SIZE", 10*1024*1024),
		AllowPrivateIPs: envBool("SPECLINT_MCP_ALLOW_PRIVATE_IPS", false),
		FetchTimeout:    envDuration("SPECLINT_MCP_FETCH_TIMEOUT", 30*time.Second),
		FetchRate:       envFloat("SPECLINT_MCP_FETCH_RATE", 2),
		FetchBurst:      envInt("SPECLINT_MCP_FETCH_BURST", 4),
		CacheEnabled:    envBool("SPECLINT_MCP_CACHE_ENABLED", true),
		CacheMaxSize:    envInt("SPECLINT_MCP_CACHE_MAX_SIZE", 10),
		CacheURLTTL:     envDuration("SPECLINT_MCP_CACHE_URL_TTL", 5*time.Minute),
		DefaultLimit:    envInt("SPECLINT_MCP_LIMIT", 100),
		MaxLimit:        envInt("SPECLINT_MCP_MAX_LIMIT", 1000),
	}
}

func envBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		slog.Warn("invalid bool env var, using default", "key", key, "value", v, "default", fallback) //nolint:gosec // G706: values are structured log fields, not format strings
		return fallback
	}
	return b
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		slog.Warn("invalid int env var, using default", "key", key, "value", v, "default", fallback) //nolint:gosec // G706: values are structured log fields, not format strings
		return fallback
	}
	return n
}

func envInt64(key string, fallback int64) int64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil || n <= 0 {
		slog.Warn("invalid int env var, using default", "key", key, "value", v, "default", fallback) //nolint:gosec // G706: values are structured log fields, not format strings
		return fallback
	}
	return n
}

func envFloat(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || f <= 0 {
		slog.Warn("invalid number env var, using default", "key", key, "value", v, "default", fallback) //nolint:gosec // G706: values are structured log fields, not format strings
		return fallback
	}
	return f
}

func envDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		slog.Warn("invalid duration env var, using default", "key", key, "value", v, "default", fallback) //nolint:gosec // G706: values are structured log fields, not format strings
		return fallback
	}
	return d
}
