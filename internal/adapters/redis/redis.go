package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/rafaelleal24/stockledger/internal/adapters/config"
	"github.com/redis/go-redis/v9"
)

// namespace keeps ledger keys apart from anything else sharing the database.
const namespace = "stockledger"

type Client struct {
	rdb *redis.Client
}

func NewConnection(cfg config.RedisConfig) (*Client, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}
	if cfg.Password != "" {
		opts.Password = cfg.Password
	}
	opts.DB = cfg.DB

	rdb := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	return &Client{rdb: rdb}, nil
}

func namespaced(key string) string {
	return namespace + ":" + key
}

func (c *Client) get(ctx context.Context, key string) ([]byte, error) {
	data, err := c.rdb.Get(ctx, namespaced(key)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	return data, err
}

func (c *Client) set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return c.rdb.Set(ctx, namespaced(key), value, ttl).Err()
}

func (c *Client) setNX(ctx context.Context, key string, value []byte, ttl time.Duration) (bool, error) {
	return c.rdb.SetNX(ctx, namespaced(key), value, ttl).Result()
}

func (c *Client) del(ctx context.Context, key string) error {
	return c.rdb.Del(ctx, namespaced(key)).Err()
}

// HealthCheck is reported by the /health endpoint.
func (c *Client) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return c.rdb.Ping(ctx).Err()
}

func (c *Client) Close() error {
	return c.rdb.Close()
}
