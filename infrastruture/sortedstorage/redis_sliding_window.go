package sortedstorage

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/go-redsync/redsync/v4"
	"github.com/go-redsync/redsync/v4/redis/goredis/v9"
	"github.com/maeln/r-astar/service/i"
	"github.com/redis/go-redis/v9"
)

const (
	lockSuffix = ":window_lock"
	lockExpiry = 2 * time.Second
)

// RedisSlidingWindow keeps one sorted set per key, scored by event time in microseconds.
// Scores must stay below 2^53 to be exact as float64; nanoseconds do not.
// Admission is serialized per key with a redsync mutex so concurrent API replicas agree on the count.
type RedisSlidingWindow struct {
	client *redis.Client
	locker *redsync.Redsync
}

// NewRedisSlidingWindow initializes a RedisSlidingWindow with the provided Redis client.
func NewRedisSlidingWindow(client *redis.Client) (i.SlidingWindow, error) {
	window := &RedisSlidingWindow{client: client}
	pool := goredis.NewPool(client)
	window.locker = redsync.New(pool)
	return window, nil
}

// Admit implements i.SlidingWindow.
func (rsw *RedisSlidingWindow) Admit(ctx context.Context, key, member string, at time.Time, window time.Duration, limit int64) (bool, error) {
	mutex := rsw.locker.NewMutex(key+lockSuffix, redsync.WithExpiry(lockExpiry))
	if err := mutex.LockContext(ctx); err != nil {
		return false, err
	}
	defer func() {
		_, _ = mutex.UnlockContext(ctx)
	}()

	cutoff := strconv.FormatInt(score(at.Add(-window)), 10)
	if err := rsw.client.ZRemRangeByScore(ctx, key, "-inf", cutoff).Err(); err != nil {
		return false, err
	}

	count, err := rsw.client.ZCard(ctx, key).Result()
	if err != nil {
		return false, err
	}
	if count >= limit {
		return false, nil
	}

	_, err = rsw.client.ZAdd(ctx, key, redis.Z{Score: float64(score(at)), Member: member}).Result()
	if err != nil {
		return false, err
	}

	// The whole set is stale once the newest event leaves the window.
	if err := rsw.client.Expire(ctx, key, window).Err(); err != nil {
		return false, fmt.Errorf("setting ttl on %s: %w", key, err)
	}
	return true, nil
}

func score(t time.Time) int64 {
	return t.UnixMicro()
}

// Count implements i.SlidingWindow.
func (rsw *RedisSlidingWindow) Count(ctx context.Context, key string) (int64, error) {
	return rsw.client.ZCard(ctx, key).Result()
}
