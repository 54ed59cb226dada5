package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/srgjo27/railway_reservation/internal/core/ports"
)

// RateLimiter is a fixed-window counter: INCR the window key and let it
// expire with the window.
type RateLimiter struct {
	client      *redis.Client
	window      time.Duration
	maxRequests int64
	now         func() time.Time
}

func NewRateLimiter(client *redis.Client, window time.Duration, maxRequests int) *RateLimiter {
	return &RateLimiter{
		client:      client,
		window:      window,
		maxRequests: int64(maxRequests),
		now:         time.Now,
	}
}

func (l *RateLimiter) key(subject string) string {
	return fmt.Sprintf("rate_limit:%s:%d", subject, l.now().Unix()/int64(l.window.Seconds()))
}

func (l *RateLimiter) Allow(ctx context.Context, subject string) error {
	key := l.key(subject)

	pipe := l.client.Pipeline()
	incr := pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, l.window)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("rate limiter: %w", err)
	}

	if count := incr.Val(); count > l.maxRequests {
		return fmt.Errorf("%w: %d requests in %v", ports.ErrRateLimited, count, l.window)
	}
	return nil
}
