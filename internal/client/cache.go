package client

import (
	"encoding/json"
	"sync"
	"time"
)

// defaultCacheTTL is how long a cached GET response stays fresh.
const defaultCacheTTL = 5 * time.Minute

// cacheEntry is one cached response body.
type cacheEntry struct {
	data      json.RawMessage
	fetchedAt time.Time
}

// queryCache caches GET responses keyed by entity and full request
// path. Mutations invalidate every key under the affected entity, so a
// stale list can never outlive a write the client itself made.
type queryCache struct {
	ttl time.Duration

	mu      sync.Mutex
	entries map[string]map[string]cacheEntry // entity -> path -> entry
	nowFunc func() time.Time
}

func newQueryCache(ttl time.Duration) *queryCache {
	return &queryCache{
		ttl:     ttl,
		entries: make(map[string]map[string]cacheEntry),
		nowFunc: time.Now,
	}
}

// get returns the cached body for entity+path when present and fresh.
func (q *queryCache) get(entity, path string) (json.RawMessage, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	byPath, ok := q.entries[entity]
	if !ok {
		return nil, false
	}
	entry, ok := byPath[path]
	if !ok {
		return nil, false
	}
	if q.nowFunc().Sub(entry.fetchedAt) > q.ttl {
		delete(byPath, path)
		return nil, false
	}
	return entry.data, true
}

// put stores a response body under entity+path.
func (q *queryCache) put(entity, path string, data json.RawMessage) {
	q.mu.Lock()
	defer q.mu.Unlock()

	byPath, ok := q.entries[entity]
	if !ok {
		byPath = make(map[string]cacheEntry)
		q.entries[entity] = byPath
	}
	byPath[path] = cacheEntry{data: data, fetchedAt: q.nowFunc()}
}

// invalidate drops every cached query for the entity.
func (q *queryCache) invalidate(entity string) {
	q.mu.Lock()
	defer q.mu.Unlock()
	delete(q.entries, entity)
}
