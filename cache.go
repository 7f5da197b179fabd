package activerecord

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"
)

// Cache is the interface for caching query results. Implement it with
// your preferred store (Redis, Memcached, in-memory); MemoryCache is a
// ready process-local implementation.
type Cache interface {
	// Get retrieves a value from the cache.
	// Returns nil, nil if the key doesn't exist.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores a value in the cache with an optional TTL.
	// If ttl is 0, the value should not expire.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes a value from the cache.
	Delete(ctx context.Context, key string) error

	// DeletePrefix removes all values with the given prefix.
	DeletePrefix(ctx context.Context, prefix string) error

	// Clear removes all values from the cache.
	Clear(ctx context.Context) error
}

// CacheKey identifies a cached query result.
type CacheKey struct {
	Table string
	Query string
	Args  []any
}

// String returns the string representation of the cache key.
func (k CacheKey) String() string {
	return k.Table + ":" + k.Query + ":" + fmt.Sprint(k.Args...)
}

// encodeRows encodes hydrated row maps for cache storage.
func encodeRows(rows []map[string]any) ([]byte, error) {
	return msgpack.Marshal(rows)
}

// decodeRows decodes cache-stored row maps.
func decodeRows(data []byte) ([]map[string]any, error) {
	var rows []map[string]any
	if err := msgpack.Unmarshal(data, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

type memEntry struct {
	value     []byte
	expiresAt time.Time
}

// MemoryCache is a process-local Cache implementation.
type MemoryCache struct {
	mu      sync.Mutex
	entries map[string]memEntry
}

// NewMemoryCache returns an empty in-memory cache.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{entries: make(map[string]memEntry)}
}

// Get retrieves a value, expiring it lazily.
func (c *MemoryCache) Get(_ context.Context, key string) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok {
		return nil, nil
	}
	if !e.expiresAt.IsZero() && time.Now().After(e.expiresAt) {
		delete(c.entries, key)
		return nil, nil
	}
	return e.value, nil
}

// Set stores a value with the given TTL. A zero TTL never expires.
func (c *MemoryCache) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	e := memEntry{value: value}
	if ttl > 0 {
		e.expiresAt = time.Now().Add(ttl)
	}
	c.entries[key] = e
	return nil
}

// Delete removes a single key.
func (c *MemoryCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
	return nil
}

// DeletePrefix removes all keys with the given prefix.
func (c *MemoryCache) DeletePrefix(_ context.Context, prefix string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for k := range c.entries {
		if len(k) >= len(prefix) && k[:len(prefix)] == prefix {
			delete(c.entries, k)
		}
	}
	return nil
}

// Clear removes all keys.
func (c *MemoryCache) Clear(_ context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]memEntry)
	return nil
}

var _ Cache = (*MemoryCache)(nil)
