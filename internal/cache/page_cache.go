// Package cache implements the cache-aside read path for paginated
// listings. Values are JSON-serialized pages of records keyed by resource
// kind and page number, e.g. "users-page-1". Entries expire by TTL only;
// writes to the underlying store never purge them, so a page can be stale
// for at most one TTL window after a mutation.
package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Key builds the cache key for one page of a resource kind. The key ignores
// the request limit on purpose: a cached page reflects whatever limit was in
// effect when it was filled.
func Key(kind string, page int64) string {
	return fmt.Sprintf("%s-page-%d", kind, page)
}

// Redis is the production page cache.
type Redis struct {
	client *redis.Client
}

// New returns a Redis-backed page cache, or a no-op cache when the client
// is nil so the read path degrades to querying the store on every request.
func New(client *redis.Client) *Redis {
	if client == nil {
		return nil
	}
	return &Redis{client: client}
}

// Get returns the cached payload for key and whether it was present.
func (r *Redis) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if r == nil {
		return nil, false, nil
	}
	b, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("cache get %s: %w", key, err)
	}
	return b, true, nil
}

// Set stores payload under key with the given TTL.
func (r *Redis) Set(ctx context.Context, key string, payload []byte, ttl time.Duration) error {
	if r == nil {
		return nil
	}
	if err := r.client.Set(ctx, key, payload, ttl).Err(); err != nil {
		return fmt.Errorf("cache set %s: %w", key, err)
	}
	return nil
}
