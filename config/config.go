package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration. It is built once at startup
// and never mutated afterwards; components receive it explicitly instead
// of reading the environment mid-request.
type Config struct {
	Server    ServerConfig
	Browser   BrowserConfig
	Scraper   ScraperConfig
	Auth      AuthConfig
	RateLimit RateLimitConfig
	Log       LogConfig
}

// ServerConfig controls the HTTP server.
type ServerConfig struct {
	Host string // default: "0.0.0.0"
	Port int    // default: 8080
	Mode string // "debug", "release", "test"; default: "release"
}

// BrowserConfig controls the Rod browser instance.
type BrowserConfig struct {
	// Headless controls whether the browser runs headless.
	Headless bool // default: true

	// NoSandbox disables Chrome's sandbox (needed in Docker).
	NoSandbox bool // default: false

	// BrowserBin overrides the Chromium binary path.
	BrowserBin string

	// Proxy is an optional proxy URL for all sessions.
	Proxy string
}

// Credentials is the marketplace login pair. Absence is a configuration
// error surfaced at scrape time, not a startup crash.
type Credentials struct {
	Email    string
	Password string
}

// ScraperConfig controls the scrape flow against the marketplace.
type ScraperConfig struct {
	// LoginURL is the marketplace login page.
	LoginURL string

	// ListingURL is the freight-order listing page reached after login.
	ListingURL string

	// Credentials used by the login flow.
	Credentials Credentials

	// NavTimeout bounds each navigation's quiescent-network wait.
	NavTimeout time.Duration // default: 45s

	// SelectorTimeout bounds the login-form selector fallback chain.
	SelectorTimeout time.Duration // default: 10s

	// PostSubmitWait bounds the wait for a post-login navigation.
	// Exhausting it is not fatal; some sites log in via an in-page
	// transition without a full navigation.
	PostSubmitWait time.Duration // default: 20s

	// ListingTimeout bounds the wait for the order table to appear.
	ListingTimeout time.Duration // default: 15s
}

// AuthConfig controls API key authentication on the gateway.
type AuthConfig struct {
	// APIKeys is the list of valid API keys. Empty disables auth.
	APIKeys []string
}

// RateLimitConfig controls per-key rate limiting. Each scrape holds a
// whole browsing context, so this is also the practical bound on
// concurrent sessions.
type RateLimitConfig struct {
	RequestsPerSecond float64 // default: 1
	Burst             int     // default: 2
}

// LogConfig controls structured logging.
type LogConfig struct {
	Level  string // default: "info"
	Format string // "json" or "text"; default: "json"
}

// Load reads configuration from environment variables with sane defaults.
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Host: envOr("ORDERSNAP_HOST", "0.0.0.0"),
			Port: envIntOr("ORDERSNAP_PORT", 8080),
			Mode: envOr("ORDERSNAP_MODE", "release"),
		},
		Browser: BrowserConfig{
			Headless:   envBoolOr("ORDERSNAP_HEADLESS", true),
			NoSandbox:  envBoolOr("ORDERSNAP_NO_SANDBOX", false),
			BrowserBin: os.Getenv("ORDERSNAP_BROWSER_BIN"),
			Proxy:      os.Getenv("ORDERSNAP_PROXY"),
		},
		Scraper: ScraperConfig{
			LoginURL:   os.Getenv("ORDERSNAP_LOGIN_URL"),
			ListingURL: os.Getenv("ORDERSNAP_LISTING_URL"),
			Credentials: Credentials{
				Email:    os.Getenv("ORDERSNAP_EMAIL"),
				Password: os.Getenv("ORDERSNAP_PASSWORD"),
			},
			NavTimeout:      envDurationOr("ORDERSNAP_NAV_TIMEOUT", 45*time.Second),
			SelectorTimeout: envDurationOr("ORDERSNAP_SELECTOR_TIMEOUT", 10*time.Second),
			PostSubmitWait:  envDurationOr("ORDERSNAP_POST_SUBMIT_WAIT", 20*time.Second),
			ListingTimeout:  envDurationOr("ORDERSNAP_LISTING_TIMEOUT", 15*time.Second),
		},
		Auth: AuthConfig{
			APIKeys: envSliceOr("ORDERSNAP_API_KEYS", nil),
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: envFloatOr("ORDERSNAP_RATE_RPS", 1.0),
			Burst:             envIntOr("ORDERSNAP_RATE_BURST", 2),
		},
		Log: LogConfig{
			Level:  envOr("ORDERSNAP_LOG_LEVEL", "info"),
			Format: envOr("ORDERSNAP_LOG_FORMAT", "json"),
		},
	}
}

// --- helper functions ---

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envIntOr(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func envBoolOr(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envFloatOr(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func envDurationOr(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func envSliceOr(key string, fallback []string) []string {
	if v := os.Getenv(key); v != "" {
		parts := strings.Split(v, ",")
		result := make([]string, 0, len(parts))
		for _, p := range parts {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				result = append(result, trimmed)
			}
		}
		return result
	}
	return fallback
}
