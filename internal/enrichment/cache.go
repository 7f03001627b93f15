package enrichment

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"
)

const cacheKeyPrefix = "enrichment:"

// DefaultCacheTTL keeps activity for a day.
const DefaultCacheTTL = 24 * time.Hour

// ErrCacheMiss is returned by a Store when the key is absent.
var ErrCacheMiss = errors.New("cache miss")

// Store is the minimal key/value surface the cache needs.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
}

// RedisStore is a Store backed by go-redis.
type RedisStore struct {
	rdb *redis.Client
}

// NewRedisStore connects to addr and verifies the connection with a PING.
func NewRedisStore(addr, password string, db int) (*RedisStore, error) {
	rdb := redis.NewClient(&redis.Options{Addr: addr, Password: password, DB: db})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}
	return &RedisStore{rdb: rdb}, nil
}

// Get implements Store.
func (s *RedisStore) Get(ctx context.Context, key string) (string, error) {
	val, err := s.rdb.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrCacheMiss
	}
	return val, err
}

// Set implements Store.
func (s *RedisStore) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	return s.rdb.Set(ctx, key, value, ttl).Err()
}

// Close closes the underlying connection.
func (s *RedisStore) Close() error {
	return s.rdb.Close()
}

// CachedProvider memoizes successful lookups of an inner Provider. Cache
// failures are logged and bypassed; lookup errors are never cached.
type CachedProvider struct {
	inner  Provider
	store  Store
	ttl    time.Duration
	group  singleflight.Group
	logger *slog.Logger
}

// NewCachedProvider wraps inner with store.
func NewCachedProvider(inner Provider, store Store, ttl time.Duration) *CachedProvider {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &CachedProvider{
		inner:  inner,
		store:  store,
		ttl:    ttl,
		logger: slog.Default().With("component", "enrichment-cache"),
	}
}

// Lookup implements Provider.
func (c *CachedProvider) Lookup(ctx context.Context, handle string) (*Activity, error) {
	key := cacheKeyPrefix + handle
	if a, ok := c.get(ctx, key); ok {
		return a, nil
	}

	val, err, _ := c.group.Do(key, func() (interface{}, error) {
		a, err := c.inner.Lookup(ctx, handle)
		if err != nil {
			return nil, err
		}
		c.set(ctx, key, a)
		return a, nil
	})
	if err != nil {
		return nil, err
	}
	return val.(*Activity), nil
}

func (c *CachedProvider) get(ctx context.Context, key string) (*Activity, bool) {
	data, err := c.store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, ErrCacheMiss) {
			c.logger.Error("cache get failed", "key", key, "error", err)
		}
		return nil, false
	}
	var a Activity
	if err := json.Unmarshal([]byte(data), &a); err != nil {
		c.logger.Error("cache unmarshal failed", "key", key, "error", err)
		return nil, false
	}
	c.logger.Debug("cache hit", "key", key)
	return &a, true
}

func (c *CachedProvider) set(ctx context.Context, key string, a *Activity) {
	data, err := json.Marshal(a)
	if err != nil {
		c.logger.Error("cache marshal failed", "key", key, "error", err)
		return
	}
	if err := c.store.Set(ctx, key, string(data), c.ttl); err != nil {
		c.logger.Error("cache set failed", "key", key, "error", err)
	}
}
