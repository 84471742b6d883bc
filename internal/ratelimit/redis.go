package ratelimit

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/go-redis/redis_rate/v9"
)

// RedisLimiter tracks limits in Redis so multiple instances share one
// budget per identifier.
type RedisLimiter struct {
	limiter   *redis_rate.Limiter
	perMinute int
}

// NewRedisLimiter creates a Redis-backed limiter allowing perMinute requests
// per identifier per minute.
func NewRedisLimiter(client *redis.Client, perMinute int) *RedisLimiter {
	return &RedisLimiter{
		limiter:   redis_rate.NewLimiter(client),
		perMinute: perMinute,
	}
}

func (l *RedisLimiter) Check(ctx context.Context, identifier string) (Result, error) {
	res, err := l.limiter.Allow(ctx, identifier, redis_rate.PerMinute(l.perMinute))
	if err != nil {
		return Result{}, err
	}
	return Result{
		Allowed:   res.Allowed > 0,
		Remaining: res.Remaining,
		ResetAt:   time.Now().Add(res.ResetAfter),
	}, nil
}
