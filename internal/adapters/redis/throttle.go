package redisad

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"travel_agency/internal/adapters/observability"
)

// Throttle is a fixed-window counter: at most Limit calls per key per Window.
type Throttle struct {
	c      *redis.Client
	limit  int64
	window time.Duration
	prefix string
}

func New(addr, pass string, db int, limit int, window time.Duration) *Throttle {
	return NewWithClient(redis.NewClient(&redis.Options{Addr: addr, Password: pass, DB: db}), limit, window)
}

func NewWithClient(c *redis.Client, limit int, window time.Duration) *Throttle {
	return &Throttle{c: c, limit: int64(limit), window: window, prefix: "throttle:contact:"}
}

// Allow counts this call against key. The window starts at the first call
// and later calls do not extend it.
func (t *Throttle) Allow(ctx context.Context, key string) (bool, error) {
	if t.limit <= 0 {
		return true, nil
	}
	k := t.prefix + key

	// the counter is created with its expiry in the same MULTI as the INCR,
	// so a key can never outlive its window
	var incr *redis.IntCmd
	if _, err := t.c.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.SetNX(ctx, k, 0, t.window)
		incr = p.Incr(ctx, k)
		return nil
	}); err != nil {
		observability.ObserveThrottle("error")
		return false, err
	}
	n := incr.Val()
	if n > t.limit {
		observability.ObserveThrottle("deny")
		return false, nil
	}
	observability.ObserveThrottle("allow")
	return true, nil
}

func (t *Throttle) Ping(ctx context.Context) error { return t.c.Ping(ctx).Err() }

func (t *Throttle) Close() error { return t.c.Close() }
