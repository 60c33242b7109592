package inflight

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

type RedisClient interface {
	SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.BoolCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// RedisGuard shares keys between frontend replicas. The expiry frees a key
// whose holder died before releasing it.
type RedisGuard struct {
	redis RedisClient
}

func NewRedisGuard(redis RedisClient) *RedisGuard {
	return &RedisGuard{
		redis: redis,
	}
}

func (g *RedisGuard) Acquire(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	acquired, err := g.redis.SetNX(ctx, key, "1", ttl).Result()
	if err != nil {
		return false, fmt.Errorf("failed to acquire %s: %w", key, err)
	}

	return acquired, nil
}

func (g *RedisGuard) Release(ctx context.Context, key string) error {
	if err := g.redis.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("failed to release %s: %w", key, err)
	}

	return nil
}
