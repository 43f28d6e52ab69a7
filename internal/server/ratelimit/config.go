package ratelimit

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// EndpointConfig is one tier: a path pattern plus its limit. Path supports
// exact, prefix ("/sessions/"), and suffix ("*/generate") matching, see
// MatchEndpoint.
type EndpointConfig struct {
	Path   string
	Method string
	Limit  int           // requests per window
	Window time.Duration
	Burst  int           // bucket capacity, defaults to Limit when 0
}

// LoadConfig assembles the limiter configuration from RATE_LIMIT_*
// environment variables plus the built-in endpoint tiers.
func LoadConfig() *Config {
	if !envBool("RATE_LIMIT_ENABLED", true) {
		return &Config{Enabled: false}
	}

	return &Config{
		Enabled:         true,
		DefaultLimit:    envInt("RATE_LIMIT_DEFAULT_LIMIT", 1000),
		DefaultWindow:   envDuration("RATE_LIMIT_DEFAULT_WINDOW", time.Minute),
		CleanupInterval: envDuration("RATE_LIMIT_CLEANUP_INTERVAL", 5*time.Minute),
		Whitelist:       clientSet(os.Getenv("RATE_LIMIT_WHITELIST")),
		Blacklist:       clientSet(os.Getenv("RATE_LIMIT_BLACKLIST")),
		EndpointConfigs: DefaultEndpointConfigs(),
	}
}

// DefaultEndpointConfigs returns the built-in endpoint tiers.
func DefaultEndpointConfigs() []EndpointConfig {
	return []EndpointConfig{
		// Tier 1: AI drafting and rendering (strictest limits, these hit
		// the model or spawn a browser)
		{Path: "*/generate", Method: "POST", Limit: 30, Window: time.Hour, Burst: 5},
		{Path: "*/analyze", Method: "POST", Limit: 30, Window: time.Hour, Burst: 5},
		{Path: "*/enhance", Method: "POST", Limit: 30, Window: time.Hour, Burst: 5},
		{Path: "*/refine", Method: "POST", Limit: 30, Window: time.Hour, Burst: 5},
		{Path: "*/compose", Method: "POST", Limit: 30, Window: time.Hour, Burst: 5},
		{Path: "*/export", Method: "GET", Limit: 60, Window: time.Hour, Burst: 10},
		{Path: "/import/linkedin", Method: "POST", Limit: 20, Window: time.Hour, Burst: 3},

		// Tier 2: Account operations (hardens brute-force and signup abuse)
		{Path: "/auth/register", Method: "POST", Limit: 20, Window: time.Hour, Burst: 5},
		{Path: "/auth/login", Method: "POST", Limit: 10, Window: time.Minute, Burst: 5},
		{Path: "/auth/password", Method: "PUT", Limit: 10, Window: time.Minute, Burst: 5},

		// Tier 3: External search proxy
		{Path: "/jobs", Method: "GET", Limit: 60, Window: time.Minute, Burst: 20},

		// Form edits and reads ride the default limit; the health check is
		// special-cased as unlimited in the matcher.
	}
}

func envInt(key string, fallback int) int {
	if raw := os.Getenv(key); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil {
			return v
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if raw := os.Getenv(key); raw != "" {
		if v, err := strconv.ParseBool(raw); err == nil {
			return v
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if raw := os.Getenv(key); raw != "" {
		if v, err := time.ParseDuration(raw); err == nil {
			return v
		}
	}
	return fallback
}

// clientSet parses a comma-separated list of client ids into a lookup set.
func clientSet(list string) map[string]bool {
	set := make(map[string]bool)
	for _, id := range strings.Split(list, ",") {
		if id = strings.TrimSpace(id); id != "" {
			set[id] = true
		}
	}
	return set
}
