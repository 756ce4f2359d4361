package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/rafaelleal24/stockledger/internal/core/port"
)

type cacheItem struct {
	data      []byte
	expiresAt time.Time
}

func (i cacheItem) expired(now time.Time) bool {
	return !i.expiresAt.IsZero() && !now.Before(i.expiresAt)
}

// Cache is the process-local stand-in for the redis cache. Values are stored
// JSON-encoded so callers never share memory with the cache.
type Cache[T any] struct {
	mu     sync.Mutex
	prefix string
	items  map[string]cacheItem
	now    func() time.Time
}

func NewCache[T any](prefix string) port.CachePort[T] {
	return newCache[T](prefix)
}

func newCache[T any](prefix string) *Cache[T] {
	return &Cache[T]{
		prefix: prefix,
		items:  make(map[string]cacheItem),
		now:    time.Now,
	}
}

func (c *Cache[T]) key(id string) string {
	return fmt.Sprintf("%s:%s", c.prefix, id)
}

func (c *Cache[T]) expiry(ttl time.Duration) time.Time {
	if ttl <= 0 {
		return time.Time{}
	}
	return c.now().Add(ttl)
}

func (c *Cache[T]) Get(_ context.Context, id string) (*T, error) {
	c.mu.Lock()
	item, ok := c.items[c.key(id)]
	if ok && item.expired(c.now()) {
		delete(c.items, c.key(id))
		ok = false
	}
	c.mu.Unlock()

	if !ok {
		return nil, nil
	}

	var value T
	if err := json.Unmarshal(item.data, &value); err != nil {
		return nil, err
	}
	return &value, nil
}

func (c *Cache[T]) Set(_ context.Context, id string, value *T, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[c.key(id)] = cacheItem{data: data, expiresAt: c.expiry(ttl)}
	return nil
}

func (c *Cache[T]) SetNX(_ context.Context, id string, value *T, ttl time.Duration) (bool, error) {
	data, err := json.Marshal(value)
	if err != nil {
		return false, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if item, ok := c.items[c.key(id)]; ok && !item.expired(c.now()) {
		return false, nil
	}
	c.items[c.key(id)] = cacheItem{data: data, expiresAt: c.expiry(ttl)}
	return true, nil
}

func (c *Cache[T]) Del(_ context.Context, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.items, c.key(id))
	return nil
}
