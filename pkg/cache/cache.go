// Package cache provides artifact caching for the rendering pipeline.
//
// Rendered diagrams are content-addressed: the key derives from the SHA-256
// hash of the machine definition plus the pipeline options, so an unchanged
// input never re-renders. Two implementations are provided: [FileCache] for
// CLI usage and [NullCache] to disable caching.
package cache

import (
	"context"
	"time"
)

// TTLArtifact bounds how long rendered artifacts stay valid. Rendering is
// deterministic, so the bound mostly caps disk usage for abandoned machines.
const TTLArtifact = 30 * 24 * time.Hour

// Cache is the storage interface used by the pipeline to memoize rendered
// artifacts. Implementations must be safe for concurrent use.
type Cache interface {
	// Get retrieves a value. The second result reports whether the key was
	// present; absence is not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A ttl of zero means the entry never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the cache.
	Close() error
}
