package ratelimit

import (
	"time"

	"github.com/jonathan/resume-ranker/internal/config"
)

// Route identifies an endpoint by method and path. A path ending in "/"
// matches every path under it.
type Route struct {
	Method string
	Path   string
}

// DefaultExempt are the routes never throttled: probes and scrapes.
func DefaultExempt() []Route {
	return []Route{
		{Method: "GET", Path: "/health"},
		{Method: "GET", Path: "/metrics"},
	}
}

// Config holds rate limiting configuration.
type Config struct {
	Enabled         bool
	PerMinute       int
	Burst           int
	CleanupInterval time.Duration
	// IdleTimeout is how long a client may be silent before its bucket is dropped
	IdleTimeout time.Duration
	Whitelist   map[string]bool
	Exempt      []Route
}

// FromConfig builds a Config from the environment-derived settings.
func FromConfig(c *config.RateLimitConfig) Config {
	whitelist := make(map[string]bool, len(c.Whitelist))
	for _, ip := range c.Whitelist {
		whitelist[ip] = true
	}
	return Config{
		Enabled:         c.Enabled,
		PerMinute:       c.RequestsPerMinute,
		Burst:           c.Burst,
		CleanupInterval: 5 * time.Minute,
		IdleTimeout:     time.Hour,
		Whitelist:       whitelist,
		Exempt:          DefaultExempt(),
	}
}

func (c Config) normalize() Config {
	if c.PerMinute <= 0 {
		c.PerMinute = 30
	}
	if c.Burst <= 0 {
		c.Burst = 1
	}
	if c.IdleTimeout <= 0 {
		c.IdleTimeout = time.Hour
	}
	if c.Whitelist == nil {
		c.Whitelist = map[string]bool{}
	}
	return c
}

func exempt(path, method string, routes []Route) bool {
	for _, r := range routes {
		if r.Method != method {
			continue
		}
		if r.Path == path {
			return true
		}
		if len(r.Path) > 1 && r.Path[len(r.Path)-1] == '/' && len(path) >= len(r.Path) && path[:len(r.Path)] == r.Path {
			return true
		}
	}
	return false
}
