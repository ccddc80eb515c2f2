// Package cache keeps recently built roster views in memory.
//
// Entries are tagged with the cachekey.Key values they were built from and
// dropped when a mutation reports one of those keys as affected.
package cache

import (
	"context"
	"sync"
	"time"

	"github.com/louisbranch/realmkeep/internal/services/roster/domain/cachekey"
	"golang.org/x/sync/singleflight"
)

type entry[V any] struct {
	value     V
	tags      []cachekey.Key
	expiresAt time.Time
}

// Cache is a TTL cache with tag invalidation. Concurrent misses for the same
// key share one load. A zero TTL disables caching but keeps load sharing.
type Cache[V any] struct {
	ttl time.Duration
	now func() time.Time

	mu         sync.Mutex
	entries    map[string]entry[V]
	generation uint64

	group singleflight.Group
}

// New returns a cache whose entries live for ttl.
func New[V any](ttl time.Duration) *Cache[V] {
	return &Cache[V]{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]entry[V]),
	}
}

// Get returns the cached value for key or calls load. The loaded value is
// stored under tags unless an invalidation happened while it was loading.
func (c *Cache[V]) Get(ctx context.Context, key string, tags []cachekey.Key, load func(ctx context.Context) (V, error)) (V, error) {
	if value, ok := c.lookup(key); ok {
		return value, nil
	}

	result, err, _ := c.group.Do(key, func() (any, error) {
		if value, ok := c.lookup(key); ok {
			return value, nil
		}
		c.mu.Lock()
		generation := c.generation
		c.mu.Unlock()

		value, err := load(ctx)
		if err != nil {
			return value, err
		}
		c.store(key, tags, value, generation)
		return value, nil
	})
	if err != nil {
		var zero V
		return zero, err
	}
	return result.(V), nil
}

// Invalidate drops every entry tagged with one of keys.
func (c *Cache[V]) Invalidate(keys ...cachekey.Key) {
	if len(keys) == 0 {
		return
	}
	affected := make(map[cachekey.Key]struct{}, len(keys))
	for _, k := range keys {
		affected[k] = struct{}{}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.generation++
	for key, e := range c.entries {
		for _, tag := range e.tags {
			if _, ok := affected[tag]; ok {
				delete(c.entries, key)
				break
			}
		}
	}
}

// Len returns the number of live entries.
func (c *Cache[V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.now()
	n := 0
	for _, e := range c.entries {
		if now.Before(e.expiresAt) {
			n++
		}
	}
	return n
}

func (c *Cache[V]) lookup(key string) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok {
		var zero V
		return zero, false
	}
	if !c.now().Before(e.expiresAt) {
		delete(c.entries, key)
		var zero V
		return zero, false
	}
	return e.value, true
}

func (c *Cache[V]) store(key string, tags []cachekey.Key, value V, generation uint64) {
	if c.ttl <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if generation != c.generation {
		return
	}
	c.entries[key] = entry[V]{
		value:     value,
		tags:      append([]cachekey.Key(nil), tags...),
		expiresAt: c.now().Add(c.ttl),
	}
}
