package scheduler

import (
	"context"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

type setNXer interface {
	SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.BoolCmd
}

// RedisLocker is never released explicitly. The key expires after ttl, which
// keeps instances whose tick lands later in the same window from running the job.
type RedisLocker struct {
	client setNXer
	owner  string
}

func NewRedisLocker(client setNXer) *RedisLocker {
	owner, _ := os.Hostname()
	return &RedisLocker{client: client, owner: owner}
}

func (l *RedisLocker) Acquire(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	return l.client.SetNX(ctx, key, l.owner, ttl).Result()
}
