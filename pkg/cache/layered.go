package cache

import (
	"context"
	"time"
)

// LayeredCache implements two-level cache (L1: Memory, L2: Redis).
type LayeredCache struct {
	memCache   *MemoryCache
	redisCache *RedisCache
	maxL1TTL   time.Duration
}

// NewLayeredCache creates a layered cache with memory and Redis.
func NewLayeredCache(redisCache *RedisCache, opts ...LayeredOption) *LayeredCache {
	cfg := &LayeredConfig{
		MemoryMaxSize: 1000,
		MaxL1TTL:      time.Minute,
	}

	for _, opt := range opts {
		opt(cfg)
	}

	return &LayeredCache{
		memCache:   NewMemoryCache(WithMemoryMaxSize(cfg.MemoryMaxSize)),
		redisCache: redisCache,
		maxL1TTL:   cfg.MaxL1TTL,
	}
}

func (lc *LayeredCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	// Write-through: Redis first, then memory
	if err := lc.redisCache.Set(ctx, key, value, ttl); err != nil {
		return err
	}
	return lc.memCache.Set(ctx, key, value, ttl)
}

func (lc *LayeredCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if b, ok, _ := lc.memCache.Get(ctx, key); ok {
		return b, true, nil
	}

	b, ok, err := lc.redisCache.Get(ctx, key)
	if err != nil || !ok {
		return nil, false, err
	}

	// Promote with the remaining Redis lifetime so L1 never outlives L2.
	ttl := lc.maxL1TTL
	if remaining, err := lc.redisCache.TTL(ctx, key); err == nil && remaining > 0 && remaining < ttl {
		ttl = remaining
	}
	_ = lc.memCache.Set(ctx, key, b, ttl)
	return b, true, nil
}

func (lc *LayeredCache) Delete(ctx context.Context, keys ...string) error {
	_ = lc.memCache.Delete(ctx, keys...)
	return lc.redisCache.Delete(ctx, keys...)
}

// Close closes both cache layers.
func (lc *LayeredCache) Close() error {
	_ = lc.memCache.Close()
	return lc.redisCache.Close()
}
