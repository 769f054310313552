// Package cache provides artifact caching for rendered decks.
//
// Rendering is deterministic up to the artifact ID, so a deck rendered
// from the same template, payload, and generator version can be served
// from cache instead of re-rendered. Backends: file (default for CLI
// usage), redis (shared between machines), and null (caching disabled).
package cache

import (
	"context"
	"time"
)

// Cache is the backend interface. Implementations must be safe for
// concurrent use.
type Cache interface {
	// Get retrieves a value. The second return is false on a miss;
	// misses are not errors.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A zero ttl means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}
