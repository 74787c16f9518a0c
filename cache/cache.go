// Package cache provides result-cache implementations for the rule
// pipeline. The engine is deterministic, so its output can be cached by
// content hash and locale and shared across runs and across concurrently
// processed locales.
package cache

// Cache is the interface for rule-result caching.
type Cache interface {
	// Get retrieves a cached result. Returns empty string and false if
	// not found or expired.
	Get(key string) (string, bool)

	// Set stores a result in the cache.
	Set(key string, value string) error
}
