// Package cache stores computed artifacts, chiefly the O(n²) edge list of a
// word graph, so that repeated runs over the same word file skip edge
// construction.
//
// Three backends implement [Cache]:
//   - [FileCache] keeps entries as JSON files under a directory (CLI default)
//   - [RedisCache] keeps entries in Redis with native expiry (shared servers)
//   - [NullCache] stores nothing (caching disabled)
//
// Keys come from a [Keyer] so that every producer derives the same key for
// the same input. [ScopedKeyer] namespaces keys when several deployments
// share one backend.
package cache

import (
	"context"
	"time"
)

// TTLs for cached artifacts.
const (
	// TTLEdges is how long a computed edge list stays valid. The edge list
	// is a pure function of the word file, so this only bounds disk use.
	TTLEdges = 30 * 24 * time.Hour
)

// Cache is a byte-oriented key/value store with optional expiry.
type Cache interface {
	// Get returns the value for key. A missing or expired key is a miss
	// (ok == false) and not an error.
	Get(ctx context.Context, key string) (data []byte, ok bool, err error)

	// Set stores data under key. A ttl of zero means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// Clearer is implemented by backends that can drop all of their entries.
type Clearer interface {
	Clear(ctx context.Context) (int, error)
}
