package idcache

import (
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	assetID   string
	expiresAt time.Time
}

// memoryCache is a process-local Cache backed by a map. Entries expire
// lazily on read.
type memoryCache struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	ttl     time.Duration
	now     func() time.Time
}

var _ Cache = (*memoryCache)(nil)

func newMemoryCache(ttl time.Duration) *memoryCache {
	return &memoryCache{
		entries: make(map[string]memoryEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

func (c *memoryCache) Get(ctx context.Context, fingerprint string) (string, bool, error) {
	c.mu.RLock()
	entry, ok := c.entries[fingerprint]
	c.mu.RUnlock()
	if !ok {
		return "", false, nil
	}
	if !entry.expiresAt.IsZero() && c.now().After(entry.expiresAt) {
		c.mu.Lock()
		delete(c.entries, fingerprint)
		c.mu.Unlock()
		return "", false, nil
	}
	return entry.assetID, true, nil
}

func (c *memoryCache) Set(ctx context.Context, fingerprint, assetID string) error {
	entry := memoryEntry{assetID: assetID}
	if c.ttl > 0 {
		entry.expiresAt = c.now().Add(c.ttl)
	}
	c.mu.Lock()
	c.entries[fingerprint] = entry
	c.mu.Unlock()
	return nil
}

func (c *memoryCache) Len(ctx context.Context) (int64, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	var count int64
	for _, entry := range c.entries {
		if !entry.expiresAt.IsZero() && c.now().After(entry.expiresAt) {
			continue
		}
		count++
	}
	return count, nil
}

func (c *memoryCache) Flush(ctx context.Context) error {
	c.mu.Lock()
	c.entries = make(map[string]memoryEntry)
	c.mu.Unlock()
	return nil
}

func (c *memoryCache) Close() error {
	return nil
}
