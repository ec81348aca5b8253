package ratelimit

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// EndpointConfig is a per-route rate limit. Path matching is exact, or
// prefix when the path ends in "/".
type EndpointConfig struct {
	Path   string
	Method string
	Limit  int
	Window time.Duration
	Burst  int // defaults to Limit when 0
}

// LoadConfig builds the limiter configuration from RATE_LIMIT_*
// environment variables, falling back to defaults.
func LoadConfig() *Config {
	if !envBool("RATE_LIMIT_ENABLED", true) {
		return &Config{Enabled: false}
	}

	return &Config{
		Enabled:         true,
		DefaultLimit:    envInt("RATE_LIMIT_DEFAULT_LIMIT", 1000),
		DefaultWindow:   envDuration("RATE_LIMIT_DEFAULT_WINDOW", time.Minute),
		CleanupInterval: envDuration("RATE_LIMIT_CLEANUP_INTERVAL", 5*time.Minute),
		Whitelist:       parseIPList(os.Getenv("RATE_LIMIT_WHITELIST")),
		Blacklist:       parseIPList(os.Getenv("RATE_LIMIT_BLACKLIST")),
		EndpointConfigs: DefaultEndpointConfigs(),
	}
}

// DefaultEndpointConfigs returns the per-route limits. Document upload
// and validation drive LLM calls, so they sit far below the auth and
// read routes. Reads ride the default limit; health checks are
// unmetered by the matcher.
func DefaultEndpointConfigs() []EndpointConfig {
	return []EndpointConfig{
		{Path: "/documents", Method: "POST", Limit: 10, Window: time.Hour, Burst: 2},
		{Path: "/validate", Method: "POST", Limit: 10, Window: time.Hour, Burst: 2},

		{Path: "/auth/register", Method: "POST", Limit: 100, Window: time.Minute, Burst: 10},
		{Path: "/auth/login", Method: "POST", Limit: 100, Window: time.Minute, Burst: 10},
		{Path: "/auth/password", Method: "PUT", Limit: 100, Window: time.Minute, Burst: 10},
		{Path: "/documents/", Method: "DELETE", Limit: 100, Window: time.Minute, Burst: 10},
		{Path: "/checklist", Method: "POST", Limit: 100, Window: time.Minute, Burst: 10},
	}
}

func envInt(key string, fallback int) int {
	if raw := os.Getenv(key); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			return parsed
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if raw := os.Getenv(key); raw != "" {
		if parsed, err := strconv.ParseBool(raw); err == nil {
			return parsed
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if raw := os.Getenv(key); raw != "" {
		if parsed, err := time.ParseDuration(raw); err == nil {
			return parsed
		}
	}
	return fallback
}

// parseIPList turns a comma-separated IP list into a set.
func parseIPList(list string) map[string]bool {
	result := make(map[string]bool)
	for _, ip := range strings.Split(list, ",") {
		if ip = strings.TrimSpace(ip); ip != "" {
			result[ip] = true
		}
	}
	return result
}
