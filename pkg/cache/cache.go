package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/vmihailenco/msgpack/v5"
)

// Cache stores immutable byte payloads with a time-to-live. Entries are
// never updated in place: a write replaces the value and its expiry.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	Close() error
}

// GetDecoded reads key and decodes the msgpack payload into T.
// A miss returns ok=false with a nil error.
func GetDecoded[T any](ctx context.Context, c Cache, key string) (T, bool, error) {
	var out T
	b, ok, err := c.Get(ctx, key)
	if err != nil || !ok {
		return out, false, err
	}
	if err := msgpack.Unmarshal(b, &out); err != nil {
		return out, false, fmt.Errorf("decode %s: %w", key, err)
	}
	return out, true, nil
}

// SetEncoded msgpack-encodes v and stores it under key.
func SetEncoded(ctx context.Context, c Cache, key string, v interface{}, ttl time.Duration) error {
	b, err := msgpack.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	return c.Set(ctx, key, b, ttl)
}
