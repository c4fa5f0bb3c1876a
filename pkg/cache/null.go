package cache

import (
	"context"
	"time"
)

// NullCache stands in for a store when reports are not cached: with
// --no-cache, when no cache directory can be found, or for a server built
// without one. Lookups always miss and writes are dropped.
type NullCache struct {
	// Reason says why caching is off.
	Reason string
}

// NewNullCache returns a cache that stores nothing, noting why.
func NewNullCache(reason string) *NullCache {
	return &NullCache{Reason: reason}
}

// Disabled reports whether c stores nothing, and why.
func Disabled(c Cache) (string, bool) {
	nc, ok := c.(*NullCache)
	if !ok {
		return "", false
	}
	return nc.Reason, true
}

func (c *NullCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return nil, false, nil
}

func (c *NullCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	return nil
}

func (c *NullCache) Delete(ctx context.Context, key string) error {
	return nil
}

func (c *NullCache) Close() error {
	return nil
}

var _ Cache = (*NullCache)(nil)
