// Package cache is a string-keyed in-process cache with a fixed TTL.
// The clock is injected so expiry is testable without sleeping.
package cache

import (
	"sync"
	"time"
)

type Clock func() time.Time

type entry[T any] struct {
	value    T
	storedAt time.Time
}

type Cache[T any] struct {
	ttl time.Duration
	now Clock

	mu      sync.Mutex
	entries map[string]entry[T]
}

func New[T any](ttl time.Duration, now Clock) *Cache[T] {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	if now == nil {
		now = time.Now
	}
	return &Cache[T]{
		ttl:     ttl,
		now:     now,
		entries: make(map[string]entry[T]),
	}
}

// Get returns the cached value for key, or ok=false if the key is
// absent or its entry is older than the TTL. Expired entries are
// evicted on read.
func (c *Cache[T]) Get(key string) (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		var zero T
		return zero, false
	}
	if c.now().Sub(e.storedAt) > c.ttl {
		delete(c.entries, key)
		var zero T
		return zero, false
	}
	return e.value, true
}

func (c *Cache[T]) Set(key string, value T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = entry[T]{value: value, storedAt: c.now()}
}

func (c *Cache[T]) Invalidate(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
}
