package cache

import (
	"context"
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// MemoryCache implements Cache in process with go-cache. When the item
// count reaches MaxSize the entry closest to expiry is evicted first.
type MemoryCache struct {
	store   *gocache.Cache
	maxSize int
	mu      sync.Mutex
}

// NewMemoryCache creates an in-memory cache.
func NewMemoryCache(opts ...MemoryOption) *MemoryCache {
	cfg := &MemoryConfig{
		MaxSize:         1000,
		CleanupInterval: time.Minute,
	}

	for _, opt := range opts {
		opt(cfg)
	}

	return &MemoryCache{
		store:   gocache.New(gocache.NoExpiration, cfg.CleanupInterval),
		maxSize: cfg.MaxSize,
	}
}

func (mc *MemoryCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	v, ok := mc.store.Get(key)
	if !ok {
		return nil, false, nil
	}
	b, ok := v.([]byte)
	if !ok {
		return nil, false, nil
	}
	return b, true, nil
}

// Set stores value for ttl. A non-positive ttl keeps the entry until evicted.
func (mc *MemoryCache) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	mc.mu.Lock()
	defer mc.mu.Unlock()

	if _, exists := mc.store.Get(key); !exists && mc.maxSize > 0 && mc.store.ItemCount() >= mc.maxSize {
		mc.store.DeleteExpired()
		if mc.store.ItemCount() >= mc.maxSize {
			mc.evictSoonest()
		}
	}

	if ttl <= 0 {
		ttl = gocache.NoExpiration
	}
	mc.store.Set(key, value, ttl)
	return nil
}

func (mc *MemoryCache) Delete(_ context.Context, keys ...string) error {
	for _, key := range keys {
		mc.store.Delete(key)
	}
	return nil
}

// Len reports the number of stored items, including not yet swept expired ones.
func (mc *MemoryCache) Len() int {
	return mc.store.ItemCount()
}

func (mc *MemoryCache) Close() error {
	mc.store.Flush()
	return nil
}

func (mc *MemoryCache) evictSoonest() {
	var (
		victim  string
		soonest int64
	)
	for key, item := range mc.store.Items() {
		exp := item.Expiration
		if exp == 0 {
			// never expires: only a candidate when nothing else is
			exp = 1<<63 - 1
		}
		if victim == "" || exp < soonest {
			victim = key
			soonest = exp
		}
	}
	if victim != "" {
		mc.store.Delete(victim)
	}
}
