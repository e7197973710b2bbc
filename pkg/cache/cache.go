// Package cache stores icon payloads keyed by a composite of icon identity
// and load parameters.
//
// The engine treats the cache as monotonically growing until it is cleared;
// expiry and eviction are backend concerns:
//   - [MemoryCache]: in-process, optionally bounded with LRU eviction
//   - [FileCache]: one JSON file per entry under a directory (CLI default)
//   - [RedisCache]: shared between processes and hosts
//   - [MongoCache]: persistent document store
//   - [NullCache]: never stores anything
//
// Keys come from a [Keyer] so that every backend sees the same key space:
//
//	keyer := cache.NewDefaultKeyer()
//	key := keyer.IconKey("aws/lambda", cache.IconKeyOpts{Format: "svg", Source: "cdn"})
//	// "icon:cdn:svg:aws/lambda"
package cache

import (
	"context"
	"time"
)

// TTLIcon is the TTL used for icon payloads. Zero means no expiry.
const TTLIcon time.Duration = 0

// Cache is a byte-oriented key-value store.
//
// Implementations must be safe for concurrent use.
type Cache interface {
	// Get returns the value for key and whether it was found. Expired
	// entries are reported as misses.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Clear removes every entry owned by this cache.
	Clear(ctx context.Context) error

	// Len returns the number of stored entries.
	Len(ctx context.Context) (int, error)

	// Close releases backend resources.
	Close() error
}
