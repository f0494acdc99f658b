// Package cache stores resized images between runs.
//
// Resizing is the slow part of generating a directory, and the same
// portraits are usually processed again and again. Results are keyed by the
// content of the source file and the resize settings, so a changed photo or
// a different width never returns a stale image.
//
// Two implementations are provided:
//   - [FileCache]: entries as files under a directory (the CLI uses
//     $XDG_CACHE_HOME/photodirectory)
//   - [NullCache]: never stores anything, used with --no-cache
package cache

import (
	"context"
	"time"
)

// DefaultTTL is how long a cached image stays valid.
const DefaultTTL = 30 * 24 * time.Hour

// Cache is a byte store with optional expiry.
type Cache interface {
	// Get returns the data stored under key and whether it was found.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. A zero ttl never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases resources held by the cache.
	Close() error
}
