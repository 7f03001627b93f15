package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// RateLimitConfig controls per-client request throttling for the HTTP API.
type RateLimitConfig struct {
	Enabled           bool
	RequestsPerMinute int
	Burst             int
	// Whitelist holds client IPs that are never throttled
	Whitelist []string
}

// NewRateLimitConfig reads RATE_LIMIT_ENABLED (default true),
// RATE_LIMIT_PER_MINUTE (default 30), RATE_LIMIT_BURST (default 5) and the
// comma-separated RATE_LIMIT_WHITELIST from the environment.
func NewRateLimitConfig() (*RateLimitConfig, error) {
	enabled := true
	if raw := os.Getenv("RATE_LIMIT_ENABLED"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid RATE_LIMIT_ENABLED: %v", err)
		}
		enabled = v
	}
	perMinute, err := envInt("RATE_LIMIT_PER_MINUTE", 30)
	if err != nil {
		return nil, err
	}
	burst, err := envInt("RATE_LIMIT_BURST", 5)
	if err != nil {
		return nil, err
	}

	cfg := &RateLimitConfig{
		Enabled:           enabled,
		RequestsPerMinute: perMinute,
		Burst:             burst,
		Whitelist:         splitList(os.Getenv("RATE_LIMIT_WHITELIST")),
	}
	if cfg.RequestsPerMinute < 1 {
		return nil, fmt.Errorf("RATE_LIMIT_PER_MINUTE must be at least 1, got: %d", cfg.RequestsPerMinute)
	}
	if cfg.Burst < 1 {
		return nil, fmt.Errorf("RATE_LIMIT_BURST must be at least 1, got: %d", cfg.Burst)
	}
	return cfg, nil
}

func splitList(raw string) []string {
	var out []string
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
