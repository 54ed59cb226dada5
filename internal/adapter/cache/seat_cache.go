package cache

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const seatsKeyPrefix = "seats:"

// SeatCache keeps the confirmed booking count per train in Redis.
type SeatCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewSeatCache(client *redis.Client, ttl time.Duration) *SeatCache {
	return &SeatCache{client: client, ttl: ttl}
}

func seatsKey(trainID uuid.UUID) string {
	return seatsKeyPrefix + trainID.String()
}

func (c *SeatCache) Confirmed(ctx context.Context, trainID uuid.UUID) (int, bool, error) {
	n, err := c.client.Get(ctx, seatsKey(trainID)).Int()
	if errors.Is(err, redis.Nil) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return n, true, nil
}

func (c *SeatCache) StoreConfirmed(ctx context.Context, trainID uuid.UUID, count int) error {
	return c.client.Set(ctx, seatsKey(trainID), count, c.ttl).Err()
}

func (c *SeatCache) Invalidate(ctx context.Context, trainIDs ...uuid.UUID) error {
	if len(trainIDs) == 0 {
		return nil
	}

	keys := make([]string, 0, len(trainIDs))
	for _, id := range trainIDs {
		keys = append(keys, seatsKey(id))
	}
	return c.client.Del(ctx, keys...).Err()
}
