// Package cache stores computed results keyed by the content of the graph
// they were computed from.
//
// Statistics over a multi-million link graph take seconds; the graph file
// rarely changes. Reports are cached under a key derived from the SHA-256
// of the graph file, so an edited file never hits a stale entry.
//
// Three backends implement [Cache]:
//   - [FileCache]: one JSON file per entry, for the CLI
//   - [RedisCache]: shared cache for the HTTP service
//   - [NullCache]: caching disabled
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/matzehuels/wikigraph/pkg/observability"
)

// schemaVersion is mixed into every key; bump it when a cached type changes.
const schemaVersion = 1

// Cache is a byte-oriented key/value store with expiry.
type Cache interface {
	// Get returns the value and true on a hit, or false on a miss.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data. A ttl of zero means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases resources held by the cache.
	Close() error
}

// StatsKey returns the key for the statistics report of a graph whose
// file content hashes to graphHash.
func StatsKey(graphHash string) string {
	return hashKey("stats", graphHash, schemaVersion)
}

// GetJSON looks up key and decodes the value into v. keyType labels the
// observability events. An undecodable entry is treated as a miss.
func GetJSON(ctx context.Context, c Cache, keyType, key string, v any) (bool, error) {
	data, ok, err := c.Get(ctx, key)
	if err != nil {
		return false, err
	}
	if !ok {
		observability.Cache().OnCacheMiss(ctx, keyType)
		return false, nil
	}
	if err := json.Unmarshal(data, v); err != nil {
		_ = c.Delete(ctx, key)
		observability.Cache().OnCacheMiss(ctx, keyType)
		return false, nil
	}
	observability.Cache().OnCacheHit(ctx, keyType)
	return true, nil
}

// SetJSON encodes v and stores it under key.
func SetJSON(ctx context.Context, c Cache, keyType, key string, v any, ttl time.Duration) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", keyType, err)
	}
	if err := c.Set(ctx, key, data, ttl); err != nil {
		return err
	}
	observability.Cache().OnCacheSet(ctx, keyType, len(data))
	return nil
}
