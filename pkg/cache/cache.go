// Package cache provides pluggable caching for computed layouts and render
// artifacts.
//
// Backends:
//   - MemoryCache: in-process map, the server default
//   - FileCache: directory of TTL-stamped files, the CLI default
//   - RedisCache: shared cache for multi-instance deployments
//   - NopCache: disables caching
//
// Keys are derived through a [Keyer] so CLI, server, and tests agree on the
// cache layout. All keys hash their inputs with SHA-256.
package cache

import (
	"context"
	"time"
)

// Default TTLs per artifact class. Content changes rarely; layouts and
// render artifacts are pure functions of it and can live long.
const (
	TTLContent  = 15 * time.Minute
	TTLLayout   = 24 * time.Hour
	TTLArtifact = 24 * time.Hour
)

// Cache is the interface all backends implement.
type Cache interface {
	// Get retrieves a value. The second return distinguishes a miss from
	// an empty value.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with a TTL. A non-positive TTL stores forever.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// Keyer generates cache keys for the pipeline's stages.
type Keyer interface {
	// ContentKey keys a content source's record list.
	ContentKey(sourceID string) string

	// LayoutKey keys a computed layout by content hash and viewport width.
	LayoutKey(contentHash string, viewportWidth float64) string

	// ArtifactKey keys a rendered artifact by layout hash and format.
	ArtifactKey(layoutHash, format string) string
}

// DefaultKeyer is the standard key scheme.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// ContentKey generates a key for cached content records.
func (k *DefaultKeyer) ContentKey(sourceID string) string {
	return hashKey("content", sourceID)
}

// LayoutKey generates a key for a cached layout. Both the content hash and
// the viewport width participate: identical content at different widths
// must never collide.
func (k *DefaultKeyer) LayoutKey(contentHash string, viewportWidth float64) string {
	return hashKey("layout", contentHash, viewportWidth)
}

// ArtifactKey generates a key for a cached render artifact.
func (k *DefaultKeyer) ArtifactKey(layoutHash, format string) string {
	return hashKey("artifact", layoutHash, format)
}
