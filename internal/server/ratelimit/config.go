package ratelimit

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// EndpointConfig represents rate limiting configuration for a specific endpoint.
type EndpointConfig struct {
	Path   string        // Endpoint path; a trailing "/" makes it a prefix rule
	Method string        // HTTP method (GET, POST, etc.)
	Limit  int           // Maximum requests per window
	Window time.Duration // Time window
	Burst  int           // Burst capacity (defaults to Limit if 0)
}

// DefaultConfig returns the limits used when nothing is configured.
func DefaultConfig() *Config {
	return &Config{
		Enabled:         true,
		DefaultLimit:    1000,
		DefaultWindow:   time.Minute,
		CleanupInterval: 5 * time.Minute,
		IdleTimeout:     time.Hour,
		Whitelist:       map[string]bool{},
		Blacklist:       map[string]bool{},
		EndpointConfigs: DefaultEndpointConfigs(),
	}
}

// LoadConfig loads rate limiting configuration from environment variables.
//
//	RATE_LIMIT_ENABLED            (default true)
//	RATE_LIMIT_DEFAULT_LIMIT      (default 1000)
//	RATE_LIMIT_DEFAULT_WINDOW     (default 1m)
//	RATE_LIMIT_RENDER_LIMIT       (default 30 per RATE_LIMIT_RENDER_WINDOW, 1m)
//	RATE_LIMIT_CLEANUP_INTERVAL   (default 5m)
//	RATE_LIMIT_WHITELIST, RATE_LIMIT_BLACKLIST (comma separated IPs)
func LoadConfig() *Config {
	if !getEnvBool("RATE_LIMIT_ENABLED", true) {
		return &Config{Enabled: false}
	}

	cfg := DefaultConfig()
	cfg.DefaultLimit = getEnvInt("RATE_LIMIT_DEFAULT_LIMIT", cfg.DefaultLimit)
	cfg.DefaultWindow = getEnvDuration("RATE_LIMIT_DEFAULT_WINDOW", cfg.DefaultWindow)
	cfg.CleanupInterval = getEnvDuration("RATE_LIMIT_CLEANUP_INTERVAL", cfg.CleanupInterval)
	cfg.Whitelist = parseIPList(os.Getenv("RATE_LIMIT_WHITELIST"))
	cfg.Blacklist = parseIPList(os.Getenv("RATE_LIMIT_BLACKLIST"))

	renderLimit := getEnvInt("RATE_LIMIT_RENDER_LIMIT", 30)
	renderWindow := getEnvDuration("RATE_LIMIT_RENDER_WINDOW", time.Minute)
	for i := range cfg.EndpointConfigs {
		if cfg.EndpointConfigs[i].Path == "/resumes" {
			cfg.EndpointConfigs[i].Limit = renderLimit
			cfg.EndpointConfigs[i].Window = renderWindow
			cfg.EndpointConfigs[i].Burst = min(cfg.EndpointConfigs[i].Burst, renderLimit)
		}
	}

	return cfg
}

// DefaultEndpointConfigs returns the default endpoint-specific configurations.
func DefaultEndpointConfigs() []EndpointConfig {
	return []EndpointConfig{
		// Rendering writes a file per request
		{Path: "/resumes", Method: "POST", Limit: 30, Window: time.Minute, Burst: 5},
		// Highlighting is pure computation
		{Path: "/highlight", Method: "POST", Limit: 300, Window: time.Minute, Burst: 50},
		// Reads and the health check fall through to the default or unlimited rule
	}
}

func getEnvInt(key string, defaultValue int) int {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// parseIPList parses a comma-separated list of IP addresses into a set.
func parseIPList(list string) map[string]bool {
	result := make(map[string]bool)
	for _, ip := range strings.Split(list, ",") {
		if ip = strings.TrimSpace(ip); ip != "" {
			result[ip] = true
		}
	}
	return result
}
