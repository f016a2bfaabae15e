package port

import "context"

// Cache defines the interface for caching upstream payloads (Port).
// The source layer uses it to avoid hammering public endpoints when runs
// are closely spaced (daemon mode); a cache outage only costs a refetch.
type Cache interface {
	// Get retrieves a value from cache into dest
	Get(ctx context.Context, key string, dest interface{}) error

	// Set stores a value in cache
	Set(ctx context.Context, key string, value interface{}) error

	// Delete removes a value from cache
	Delete(ctx context.Context, key string) error

	// Close closes the cache connection
	Close() error
}
