package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rafaelleal24/stockledger/internal/core/logger"
	"github.com/rafaelleal24/stockledger/internal/core/port"
)

// Cache stores JSON encoded values under "<prefix>:<id>".
type Cache[T any] struct {
	client *Client
	prefix string
}

func NewCache[T any](client *Client, prefix string) port.CachePort[T] {
	return &Cache[T]{client: client, prefix: prefix}
}

func (c *Cache[T]) key(id string) string {
	return fmt.Sprintf("%s:%s", c.prefix, id)
}

// Get treats an undecodable entry as a miss and removes it.
func (c *Cache[T]) Get(ctx context.Context, id string) (*T, error) {
	data, err := c.client.get(ctx, c.key(id))
	if err != nil || data == nil {
		return nil, err
	}

	var value T
	if err := json.Unmarshal(data, &value); err != nil {
		logger.Warn(ctx, "cache: dropping undecodable entry", map[string]any{
			"key":   c.key(id),
			"error": err.Error(),
		})
		return nil, c.client.del(ctx, c.key(id))
	}
	return &value, nil
}

func (c *Cache[T]) Set(ctx context.Context, id string, value *T, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("cache: marshal %s: %w", c.key(id), err)
	}
	return c.client.set(ctx, c.key(id), data, ttl)
}

func (c *Cache[T]) SetNX(ctx context.Context, id string, value *T, ttl time.Duration) (bool, error) {
	data, err := json.Marshal(value)
	if err != nil {
		return false, fmt.Errorf("cache: marshal %s: %w", c.key(id), err)
	}
	return c.client.setNX(ctx, c.key(id), data, ttl)
}

func (c *Cache[T]) Del(ctx context.Context, id string) error {
	return c.client.del(ctx, c.key(id))
}
