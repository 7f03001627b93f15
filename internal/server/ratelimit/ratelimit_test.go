package ratelimit

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-ranker/internal/config"
)

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

func newTestLimiter(cfg Config) (*Limiter, *fakeClock) {
	clock := &fakeClock{t: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}
	l := NewLimiter(cfg).WithClock(clock.Now)
	return l, clock
}

func TestLimiter_Burst(t *testing.T) {
	l, _ := newTestLimiter(Config{Enabled: true, PerMinute: 60, Burst: 3})
	defer l.Stop()

	for i := 0; i < 3; i++ {
		info := l.Allow("10.0.0.1", "/v1/rank", "POST")
		require.True(t, info.Allowed, "request %d", i+1)
		assert.Equal(t, 60, info.Limit)
		assert.Equal(t, 2-i, info.Remaining)
	}

	info := l.Allow("10.0.0.1", "/v1/rank", "POST")
	assert.False(t, info.Allowed)
	assert.Equal(t, 0, info.Remaining)
	assert.Equal(t, time.Second, info.RetryAfter)
	assert.True(t, info.ResetTime.After(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)))
}

func TestLimiter_Refill(t *testing.T) {
	l, clock := newTestLimiter(Config{Enabled: true, PerMinute: 60, Burst: 1})
	defer l.Stop()

	require.True(t, l.Allow("c", "/v1/rank", "POST").Allowed)
	require.False(t, l.Allow("c", "/v1/rank", "POST").Allowed)

	clock.Advance(time.Second)
	assert.True(t, l.Allow("c", "/v1/rank", "POST").Allowed)
	assert.False(t, l.Allow("c", "/v1/rank", "POST").Allowed)
}

func TestLimiter_ClientsAreIndependent(t *testing.T) {
	l, _ := newTestLimiter(Config{Enabled: true, PerMinute: 60, Burst: 1})
	defer l.Stop()

	assert.True(t, l.Allow("a", "/v1/rank", "POST").Allowed)
	assert.False(t, l.Allow("a", "/v1/rank", "POST").Allowed)
	assert.True(t, l.Allow("b", "/v1/rank", "POST").Allowed)
	assert.Equal(t, 2, l.Clients())
}

func TestLimiter_Bypass(t *testing.T) {
	tests := []struct {
		name   string
		cfg    Config
		client string
		method string
		path   string
	}{
		{"disabled", Config{Enabled: false, Burst: 1}, "a", "POST", "/v1/rank"},
		{"whitelisted", Config{Enabled: true, Burst: 1, Whitelist: map[string]bool{"a": true}}, "a", "POST", "/v1/rank"},
		{"health exempt", Config{Enabled: true, Burst: 1, Exempt: DefaultExempt()}, "a", "GET", "/health"},
		{"metrics exempt", Config{Enabled: true, Burst: 1, Exempt: DefaultExempt()}, "a", "GET", "/metrics"},
		{"prefix exempt", Config{Enabled: true, Burst: 1, Exempt: []Route{{Method: "GET", Path: "/debug/"}}}, "a", "GET", "/debug/vars"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, _ := newTestLimiter(tt.cfg)
			defer l.Stop()
			for i := 0; i < 5; i++ {
				info := l.Allow(tt.client, tt.path, tt.method)
				assert.True(t, info.Allowed)
				assert.Zero(t, info.Limit)
			}
			assert.Zero(t, l.Clients())
		})
	}
}

func TestLimiter_ExemptMethodMismatch(t *testing.T) {
	l, _ := newTestLimiter(Config{Enabled: true, PerMinute: 60, Burst: 1, Exempt: DefaultExempt()})
	defer l.Stop()

	assert.True(t, l.Allow("a", "/health", "POST").Allowed)
	assert.False(t, l.Allow("a", "/health", "POST").Allowed)
}

func TestLimiter_Cleanup(t *testing.T) {
	l, clock := newTestLimiter(Config{Enabled: true, PerMinute: 60, Burst: 1, IdleTimeout: time.Minute})
	defer l.Stop()

	l.Allow("old", "/v1/rank", "POST")
	clock.Advance(2 * time.Minute)
	l.Allow("new", "/v1/rank", "POST")

	l.Cleanup()
	assert.Equal(t, 1, l.Clients())
}

func TestLimiter_Concurrent(t *testing.T) {
	l, _ := newTestLimiter(Config{Enabled: true, PerMinute: 60, Burst: 10})
	defer l.Stop()

	var wg sync.WaitGroup
	var mu sync.Mutex
	allowed := 0
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if l.Allow("shared", "/v1/rank", "POST").Allowed {
				mu.Lock()
				allowed++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 10, allowed)
}

func TestLimiter_StopTwice(t *testing.T) {
	l := NewLimiter(Config{Enabled: true, PerMinute: 60, Burst: 1, CleanupInterval: time.Millisecond})
	l.Stop()
	assert.NotPanics(t, l.Stop)
}

func TestFromConfig(t *testing.T) {
	cfg := FromConfig(&config.RateLimitConfig{
		Enabled:           true,
		RequestsPerMinute: 12,
		Burst:             4,
		Whitelist:         []string{"127.0.0.1"},
	})

	assert.True(t, cfg.Enabled)
	assert.Equal(t, 12, cfg.PerMinute)
	assert.Equal(t, 4, cfg.Burst)
	assert.True(t, cfg.Whitelist["127.0.0.1"])
	assert.Equal(t, DefaultExempt(), cfg.Exempt)
	assert.Equal(t, time.Hour, cfg.IdleTimeout)
}
