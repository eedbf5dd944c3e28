// Package cache provides a small process-wide key/value store whose entries
// expire a fixed time after they were written.
package cache

import (
	"sync"
	"time"
)

// DefaultTTL is how long an entry stays readable after Set.
const DefaultTTL = 10 * time.Minute

// Well-known keys shared by the services and handlers.
const (
	KeyAccounts          = "accounts"
	KeyTransactions      = "transactions"
	KeyTagsAndCategories = "tags_and_categories"
)

type entry struct {
	value    any
	storedAt time.Time
}

// Cache is a TTL cache with lazy expiry: an entry is dropped on the first read
// after it has expired. There is no background sweep and no size bound.
type Cache struct {
	mu    sync.Mutex
	items map[string]entry
	ttl   time.Duration
	now   func() time.Time
}

type Option func(*Cache)

// WithClock replaces time.Now, mostly for tests.
func WithClock(now func() time.Time) Option {
	return func(c *Cache) {
		c.now = now
	}
}

// New creates a cache. A non-positive ttl falls back to DefaultTTL.
func New(ttl time.Duration, opts ...Option) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	c := &Cache{
		items: make(map[string]entry),
		ttl:   ttl,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get returns the value stored under key, or false when it is missing or
// older than the TTL.
func (c *Cache) Get(key string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.items[key]
	if !ok {
		return nil, false
	}
	if c.now().Sub(e.storedAt) > c.ttl {
		delete(c.items, key)
		return nil, false
	}
	return e.value, true
}

// Set stores value under key, replacing any previous entry.
func (c *Cache) Set(key string, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items[key] = entry{value: value, storedAt: c.now()}
}

// Delete drops key if present.
func (c *Cache) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.items, key)
}

// Len reports the number of stored entries, expired ones included.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.items)
}

// GetAs is a typed Get. A stored value of a different type reads as a miss.
func GetAs[T any](c *Cache, key string) (T, bool) {
	var zero T
	v, ok := c.Get(key)
	if !ok {
		return zero, false
	}
	typed, ok := v.(T)
	if !ok {
		return zero, false
	}
	return typed, true
}
