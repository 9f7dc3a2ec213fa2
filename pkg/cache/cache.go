// Package cache stores pipeline results in memory.
//
// # Overview
//
// The pipeline caches two kinds of entries, both as opaque bytes:
//
//   - layout documents (graph + layout JSON), keyed by source hash,
//     language and layout geometry
//   - rendered artifacts (SVG, DOT, PNG, ...), keyed by the layout key plus
//     format and style
//
// Keys come from a [Keyer] so callers never build key strings by hand.
//
// # Implementations
//
//   - [MemoryCache]: bounded LRU with per-entry expiry
//   - [NullCache]: stores nothing, for disabling the cache
//
// Nothing is written to disk; entries live as long as the process.
package cache

import (
	"context"
	"time"
)

// Cache is a byte store with per-entry expiry. Implementations must be safe
// for concurrent use.
type Cache interface {
	// Get returns the stored value and whether it was found and unexpired.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero or less never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases resources.
	Close() error
}

// Default TTLs used by the pipeline.
const (
	LayoutTTL   = 24 * time.Hour
	ArtifactTTL = 24 * time.Hour
)
