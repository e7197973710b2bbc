package cache

import (
	"context"
	"time"
)

// NullCache never stores anything. It backs `--cache none`; the engine
// then fetches every icon on every pass.
type NullCache struct{}

func NewNullCache() *NullCache {
	return &NullCache{}
}

// Get always returns a cache miss.
func (c *NullCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return nil, false, nil
}

// Set does nothing.
func (c *NullCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	return nil
}

// Delete does nothing.
func (c *NullCache) Delete(ctx context.Context, key string) error { return nil }

// Clear does nothing.
func (c *NullCache) Clear(ctx context.Context) error { return nil }

// Len is always zero.
func (c *NullCache) Len(ctx context.Context) (int, error) { return 0, nil }

// Close does nothing.
func (c *NullCache) Close() error { return nil }

var _ Cache = (*NullCache)(nil)
