package persistence

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const unreadCacheTTL = 2 * time.Minute

// AlertCache caches per-user unread alert counts in Redis.
type AlertCache struct {
	client *redis.Client
}

// NewAlertCache builds a cache backed by the shared Redis client.
func NewAlertCache(r *Redis) *AlertCache {
	if r == nil {
		return &AlertCache{}
	}
	return &AlertCache{client: r.Client}
}

// GetUnread returns the cached count and whether a value was present.
func (c *AlertCache) GetUnread(ctx context.Context, userID string) (int64, bool, error) {
	if c == nil || c.client == nil {
		return 0, false, nil
	}
	val, err := c.client.Get(ctx, unreadKey(userID)).Int64()
	if err == redis.Nil {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return val, true, nil
}

// SetUnread stores the count with a short TTL.
func (c *AlertCache) SetUnread(ctx context.Context, userID string, count int64) error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Set(ctx, unreadKey(userID), count, unreadCacheTTL).Err()
}

// Invalidate drops the cached count after a write touching the user's alerts.
func (c *AlertCache) Invalidate(ctx context.Context, userID string) error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Del(ctx, unreadKey(userID)).Err()
}

func unreadKey(userID string) string {
	return "alerts:unread:" + userID
}
