// Package cache provides content-addressed storage for rasterized SVGs.
//
// Rasterizing a logo is the only expensive step of asset generation, and its
// output is a pure function of the SVG bytes and the target size. Entries are
// therefore keyed by a hash of both and never need invalidation; TTLs only
// bound disk or memory usage.
//
// Three backends are provided:
//   - FileCache: one JSON file per entry under a directory (CLI default)
//   - RedisCache: a shared Redis instance (preview server deployments)
//   - NullCache: stores nothing (--no-cache, tests)
package cache

import (
	"context"
	"time"
)

// DefaultTTL bounds how long a raster stays cached.
const DefaultTTL = 30 * 24 * time.Hour

// Cache is a byte-oriented key/value store with optional expiration.
// Implementations must be safe for concurrent use.
type Cache interface {
	// Get returns the stored value and whether it was found.
	// A miss is not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// Keyer builds cache keys.
type Keyer interface {
	// RasterKey identifies a rasterization of the SVG whose content hash is
	// svgHash.
	RasterKey(svgHash string, opts RasterKeyOpts) string
}

// RasterKeyOpts are the rasterization parameters that affect the result.
// Strict is part of the key because a strict rasterizer must not be served
// an entry that a lenient one produced from an unsupported document.
type RasterKeyOpts struct {
	Width  int  `json:"w"`
	Height int  `json:"h"`
	Strict bool `json:"strict,omitempty"`
}

// DefaultKeyer produces unprefixed keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default key builder.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// RasterKey returns "raster:<sha256(svgHash, opts)>".
func (DefaultKeyer) RasterKey(svgHash string, opts RasterKeyOpts) string {
	return hashKey("raster", svgHash, opts)
}
