package client

import (
	"strings"
	"sync"
	"time"
)

type cacheEntry struct {
	payload   []byte
	fetchedAt time.Time
}

// cache holds rendered API payloads keyed by "entity|path|tuple".
type cache struct {
	mu      sync.RWMutex
	entries map[string]cacheEntry
	ttl     time.Duration
}

func newCache(ttl time.Duration) *cache {
	return &cache{entries: make(map[string]cacheEntry), ttl: ttl}
}

func cacheKey(entity, path string, params Params) string {
	return entity + "|" + path + "|" + params.canonical()
}

// get returns the entry and whether it is still within its TTL. A stale
// entry is still returned so the caller can serve it while a background
// refetch runs.
func (c *cache) get(key string) (cacheEntry, bool, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	entry, ok := c.entries[key]
	if !ok {
		return cacheEntry{}, false, false
	}
	fresh := time.Since(entry.fetchedAt) < c.ttl
	return entry, true, fresh
}

func (c *cache) put(key string, payload []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = cacheEntry{payload: payload, fetchedAt: time.Now()}
}

func (c *cache) invalidate(entity string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for key := range c.entries {
		if strings.HasPrefix(key, entity+"|") {
			delete(c.entries, key)
		}
	}
}
