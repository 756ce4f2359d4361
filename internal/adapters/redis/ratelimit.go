package redis

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/rafaelleal24/stockledger/internal/core/port"
)

// Each window gets its own counter key, so a counter that lost its expiry
// still stops counting once the window has passed.
var rateLimitScript = goredis.NewScript(`
local count = redis.call('INCR', KEYS[1])
if count == 1 then
	redis.call('PEXPIRE', KEYS[1], ARGV[1])
end
return count
`)

type RateLimiter struct {
	client *Client
	now    func() time.Time
}

func NewRateLimiter(client *Client) port.RateLimiter {
	return &RateLimiter{client: client, now: time.Now}
}

func (r *RateLimiter) Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	if window < time.Millisecond {
		return false, fmt.Errorf("ratelimit: window must be positive, got %s", window)
	}
	slot := r.now().UnixMilli() / window.Milliseconds()
	redisKey := namespaced(fmt.Sprintf("ratelimit:%s:%d", key, slot))

	count, err := rateLimitScript.Run(ctx, r.client.rdb, []string{redisKey}, window.Milliseconds()).Int()
	if err != nil {
		return false, fmt.Errorf("ratelimit: %w", err)
	}
	return count <= limit, nil
}
