package ratelimit

import (
	"context"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RedisLimiter implements the fixed window on a shared Redis counter so the
// budget holds across instances. Unlike MemoryLimiter, INCR consumes a slot
// even on the request that gets denied; with a 60s window the difference is
// not observable to callers.
type RedisLimiter struct {
	client *redis.Client
	logger *zap.Logger
}

// NewRedisLimiter creates a Redis-backed limiter
func NewRedisLimiter(client *redis.Client, logger *zap.Logger) *RedisLimiter {
	return &RedisLimiter{client: client, logger: logger}
}

// Allow increments the user's window counter, starting the window expiry on
// the first request. Redis being unreachable fails open: availability over
// strict limiting, with the failure logged.
func (l *RedisLimiter) Allow(ctx context.Context, userID string) (bool, error) {
	key := "ratelimit:" + userID

	count, err := l.client.Incr(ctx, key).Result()
	if err != nil {
		l.logger.Warn("rate limiter unavailable, failing open",
			zap.String("userID", userID),
			zap.Error(err),
		)
		return true, nil
	}
	if count == 1 {
		if err := l.client.Expire(ctx, key, Window).Err(); err != nil {
			l.logger.Warn("failed to set rate limit window expiry",
				zap.String("userID", userID),
				zap.Error(err),
			)
		}
	}
	return count <= int64(MaxRequests), nil
}
