package cache

import (
	"context"
	"time"
)

// DefaultTTL matches the five minute window the list endpoints cache for.
const DefaultTTL = 5 * time.Minute

// Store is a small read-through cache for JSON-serializable values.
// Backends: Memory for single-instance deployments, Redis when the API
// runs behind more than one replica. Every mutating handler deletes the
// keys it invalidates, so a stale entry never outlives the next write.
type Store interface {
	// Get unmarshals the cached value for key into dest. The bool reports
	// whether the key was present and unexpired.
	Get(ctx context.Context, key string, dest any) (bool, error)
	// Set stores value under key for the given TTL.
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	// Delete removes the given keys. Missing keys are not an error.
	Delete(ctx context.Context, keys ...string) error
}
