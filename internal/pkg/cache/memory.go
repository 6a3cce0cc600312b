package cache

import (
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	value     string
	expiresAt time.Time
}

func (e memoryEntry) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && now.After(e.expiresAt)
}

// memoryCache is the process-local Cache used when REDIS_ADDR is unset.
// A zero ttl keeps the entry until Close.
type memoryCache struct {
	mu          sync.RWMutex
	items       map[string]memoryEntry
	serviceName string
	now         func() time.Time
}

var _ Cache = (*memoryCache)(nil)

func NewMemoryCache(serviceName string) Cache {
	return &memoryCache{
		items:       make(map[string]memoryEntry),
		serviceName: serviceName,
		now:         time.Now,
	}
}

func (c *memoryCache) Set(_ context.Context, key string, value string, ttl time.Duration) error {
	var expiresAt time.Time
	if ttl > 0 {
		expiresAt = c.now().Add(ttl)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[key] = memoryEntry{value: value, expiresAt: expiresAt}
	return nil
}

func (c *memoryCache) Get(_ context.Context, key string) (string, error) {
	c.mu.RLock()
	entry, ok := c.items[key]
	c.mu.RUnlock()
	if !ok {
		return "", nil
	}
	now := c.now()
	if !entry.expired(now) {
		return entry.value, nil
	}

	// The key may have been set again since the read lock was released.
	c.mu.Lock()
	defer c.mu.Unlock()
	entry, ok = c.items[key]
	if !ok {
		return "", nil
	}
	if !entry.expired(now) {
		return entry.value, nil
	}
	delete(c.items, key)
	return "", nil
}

func (c *memoryCache) GenerateKey(operation, key string) string {
	return generateKey(c.serviceName, operation, key)
}

func (c *memoryCache) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	clear(c.items)
	return nil
}
