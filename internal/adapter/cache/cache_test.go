package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/srgjo27/railway_reservation/internal/core/ports"
)

func TestSeatCache_ConfirmedHit(t *testing.T) {
	db, mock := redismock.NewClientMock()
	cache := NewSeatCache(db, time.Minute)
	trainID := uuid.New()

	mock.ExpectGet("seats:" + trainID.String()).SetVal("42")

	n, ok, err := cache.Confirmed(context.Background(), trainID)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 42, n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSeatCache_ConfirmedMiss(t *testing.T) {
	db, mock := redismock.NewClientMock()
	cache := NewSeatCache(db, time.Minute)
	trainID := uuid.New()

	mock.ExpectGet("seats:" + trainID.String()).RedisNil()

	_, ok, err := cache.Confirmed(context.Background(), trainID)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSeatCache_ConfirmedError(t *testing.T) {
	db, mock := redismock.NewClientMock()
	cache := NewSeatCache(db, time.Minute)
	trainID := uuid.New()

	mock.ExpectGet("seats:" + trainID.String()).SetErr(errors.New("connection refused"))

	_, ok, err := cache.Confirmed(context.Background(), trainID)
	assert.Error(t, err)
	assert.False(t, ok)
}

func TestSeatCache_StoreConfirmed(t *testing.T) {
	db, mock := redismock.NewClientMock()
	cache := NewSeatCache(db, 30*time.Second)
	trainID := uuid.New()

	mock.ExpectSet("seats:"+trainID.String(), 17, 30*time.Second).SetVal("OK")

	require.NoError(t, cache.StoreConfirmed(context.Background(), trainID, 17))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSeatCache_InvalidateMany(t *testing.T) {
	db, mock := redismock.NewClientMock()
	cache := NewSeatCache(db, time.Minute)
	a, b := uuid.New(), uuid.New()

	mock.ExpectDel("seats:"+a.String(), "seats:"+b.String()).SetVal(2)

	require.NoError(t, cache.Invalidate(context.Background(), a, b))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSeatCache_InvalidateNothing(t *testing.T) {
	db, mock := redismock.NewClientMock()

	require.NoError(t, NewSeatCache(db, time.Minute).Invalidate(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func fixedLimiter(t *testing.T, max int) (*RateLimiter, redismock.ClientMock, string) {
	t.Helper()

	db, mock := redismock.NewClientMock()
	limiter := NewRateLimiter(db, time.Minute, max)
	limiter.now = func() time.Time { return time.Unix(1_700_000_000, 0) }

	return limiter, mock, "rate_limit:booking:user-1:28333333"
}

func TestRateLimiter_AllowsWithinQuota(t *testing.T) {
	limiter, mock, key := fixedLimiter(t, 5)

	mock.ExpectIncr(key).SetVal(5)
	mock.ExpectExpire(key, time.Minute).SetVal(true)

	assert.NoError(t, limiter.Allow(context.Background(), "booking:user-1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRateLimiter_RejectsOverQuota(t *testing.T) {
	limiter, mock, key := fixedLimiter(t, 5)

	mock.ExpectIncr(key).SetVal(6)
	mock.ExpectExpire(key, time.Minute).SetVal(true)

	err := limiter.Allow(context.Background(), "booking:user-1")
	assert.ErrorIs(t, err, ports.ErrRateLimited)
}

func TestRateLimiter_RedisFailureIsNotRateLimited(t *testing.T) {
	limiter, mock, key := fixedLimiter(t, 5)

	mock.ExpectIncr(key).SetErr(errors.New("connection refused"))

	err := limiter.Allow(context.Background(), "booking:user-1")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ports.ErrRateLimited)
}
