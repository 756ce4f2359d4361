package memory

import (
	"context"
	"sync"
	"time"

	"github.com/rafaelleal24/stockledger/internal/core/port"
)

type window struct {
	count   int
	resetAt time.Time
}

// RateLimiter is a fixed-window counter with the same semantics as the redis INCR/EXPIRE script.
type RateLimiter struct {
	mu      sync.Mutex
	windows map[string]*window
	now     func() time.Time
}

func NewRateLimiter() port.RateLimiter {
	return newRateLimiter()
}

func newRateLimiter() *RateLimiter {
	return &RateLimiter{
		windows: make(map[string]*window),
		now:     time.Now,
	}
}

func (r *RateLimiter) Allow(_ context.Context, key string, limit int, period time.Duration) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	w, ok := r.windows[key]
	if !ok || !now.Before(w.resetAt) {
		w = &window{resetAt: now.Add(period)}
		r.windows[key] = w
	}
	w.count++
	return w.count <= limit, nil
}
