package server

import (
	"sync"
	"time"

	"github.com/mj1618/uisoup/internal/element"
	"github.com/mj1618/uisoup/internal/target"
)

// cacheKey identifies a unique root resolution scope.
type cacheKey struct {
	App    string
	Window string
	PID    int
}

// cacheEntry holds a resolved root element with its timestamp.
type cacheEntry struct {
	root      *element.Element
	timestamp time.Time
}

// RootCache keeps resolved root elements for a short TTL so consecutive tool
// calls reuse their attribute snapshots and visited memos.
type RootCache struct {
	mu      sync.Mutex
	entries map[cacheKey]cacheEntry
	ttl     time.Duration
	now     func() time.Time
}

// NewRootCache creates a new cache. A ttl of 0 disables caching.
func NewRootCache(ttl time.Duration) *RootCache {
	return &RootCache{
		entries: make(map[cacheKey]cacheEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

// Root returns the cached root for o if within TTL, otherwise resolves it.
// The caller must hold the provider mutex.
func (c *RootCache) Root(b *element.Backend, o target.Options) (*element.Element, error) {
	if c.ttl == 0 {
		return target.Root(b, o)
	}

	key := cacheKey{App: o.App, Window: o.Window, PID: o.PID}

	c.mu.Lock()
	if entry, ok := c.entries[key]; ok && c.now().Sub(entry.timestamp) < c.ttl {
		root := entry.root
		c.mu.Unlock()
		return root, nil
	}
	c.mu.Unlock()

	root, err := target.Root(b, o)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.entries[key] = cacheEntry{root: root, timestamp: c.now()}
	c.mu.Unlock()

	return root, nil
}

// InvalidateApp removes all cache entries resolved for the given app name or
// pid.
func (c *RootCache) InvalidateApp(app string, pid int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for k, e := range c.entries {
		if (app != "" && k.App == app) || (pid != 0 && (k.PID == pid || e.root.PID() == pid)) {
			delete(c.entries, k)
		}
	}
}

// InvalidateAll clears the entire cache.
func (c *RootCache) InvalidateAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[cacheKey]cacheEntry)
}

// Len returns the number of cached roots.
func (c *RootCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
