package redis

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
)

const lastActiveKey = "studymanager:idle:last_active"

// ActivityRepository persists the idle monitor's last-active mark
type ActivityRepository struct {
	redis *redis.Client
}

// NewActivityRepository creates activity repository
func NewActivityRepository(redisClient *RedisClient) *ActivityRepository {
	return &ActivityRepository{
		redis: redisClient.GetClient(),
	}
}

// SaveLastActive stores t as unix nanoseconds
func (r *ActivityRepository) SaveLastActive(ctx context.Context, t time.Time) error {
	if err := r.redis.Set(ctx, lastActiveKey, strconv.FormatInt(t.UnixNano(), 10), 0).Err(); err != nil {
		return fmt.Errorf("failed to save last active: %w", err)
	}
	return nil
}

// LoadLastActive returns the stored mark. ok is false when nothing was stored.
func (r *ActivityRepository) LoadLastActive(ctx context.Context) (t time.Time, ok bool, err error) {
	val, err := r.redis.Get(ctx, lastActiveKey).Result()
	if err == redis.Nil {
		return time.Time{}, false, nil
	}
	if err != nil {
		return time.Time{}, false, fmt.Errorf("failed to load last active: %w", err)
	}

	nanos, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("invalid last active value %q: %w", val, err)
	}
	return time.Unix(0, nanos), true, nil
}
