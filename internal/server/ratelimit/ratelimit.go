// Package ratelimit throttles API clients with one token bucket per client.
package ratelimit

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Info contains information about rate limit status.
type Info struct {
	Allowed    bool
	Limit      int
	Remaining  int
	ResetTime  time.Time
	RetryAfter time.Duration
}

type client struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// Limiter manages one token bucket per client identifier.
type Limiter struct {
	mu      sync.Mutex
	clients map[string]*client
	config  Config
	now     func() time.Time

	stop     chan struct{}
	stopOnce sync.Once
}

// NewLimiter creates a limiter and, when enabled with a cleanup interval,
// starts a goroutine that drops idle clients. Call Stop to end it.
func NewLimiter(cfg Config) *Limiter {
	l := &Limiter{
		clients: make(map[string]*client),
		config:  cfg.normalize(),
		now:     time.Now,
		stop:    make(chan struct{}),
	}
	if l.config.Enabled && l.config.CleanupInterval > 0 {
		go l.cleanupLoop(l.config.CleanupInterval)
	}
	return l
}

// WithClock replaces the time source.
func (l *Limiter) WithClock(now func() time.Time) *Limiter {
	l.now = now
	return l
}

// Allow consumes one token for clientID unless the client or route is exempt.
func (l *Limiter) Allow(clientID, path, method string) Info {
	if !l.config.Enabled || l.config.Whitelist[clientID] || exempt(path, method, l.config.Exempt) {
		return Info{Allowed: true}
	}

	now := l.now()
	l.mu.Lock()
	c, ok := l.clients[clientID]
	if !ok {
		c = &client{limiter: rate.NewLimiter(rate.Limit(float64(l.config.PerMinute)/60), l.config.Burst)}
		l.clients[clientID] = c
	}
	c.lastSeen = now
	l.mu.Unlock()

	allowed := c.limiter.AllowN(now, 1)
	tokens := c.limiter.TokensAt(now)
	perSecond := float64(c.limiter.Limit())

	info := Info{
		Allowed:   allowed,
		Limit:     l.config.PerMinute,
		Remaining: max(int(tokens), 0),
	}
	// time until the bucket is full again
	info.ResetTime = now.Add(secondsToDuration((float64(l.config.Burst) - tokens) / perSecond))
	if !allowed {
		info.RetryAfter = secondsToDuration((1 - tokens) / perSecond)
	}
	return info
}

// Clients returns the number of tracked clients.
func (l *Limiter) Clients() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.clients)
}

// Cleanup drops clients idle for longer than the configured timeout.
func (l *Limiter) Cleanup() {
	cutoff := l.now().Add(-l.config.IdleTimeout)
	l.mu.Lock()
	defer l.mu.Unlock()
	for id, c := range l.clients {
		if c.lastSeen.Before(cutoff) {
			delete(l.clients, id)
		}
	}
}

func (l *Limiter) cleanupLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			l.Cleanup()
		case <-l.stop:
			return
		}
	}
}

// Stop ends the cleanup goroutine. It is safe to call more than once.
func (l *Limiter) Stop() {
	l.stopOnce.Do(func() { close(l.stop) })
}

func secondsToDuration(s float64) time.Duration {
	if s <= 0 {
		return 0
	}
	return time.Duration(s * float64(time.Second))
}
