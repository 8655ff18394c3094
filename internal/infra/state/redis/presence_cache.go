package redisstate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/shubhashmahato/kurakani/internal/repository"
)

// RedisPresenceCache is the Redis-backed PresenceCacheRepository. The
// background presence worker writes here alongside the user row; REST
// presence reads hit this before falling back to the database.
type RedisPresenceCache struct {
	client    *redis.Client
	keyPrefix string
}

// NewRedisPresenceCache creates the cache.
func NewRedisPresenceCache(client *redis.Client, keyPrefix string) *RedisPresenceCache {
	if client == nil {
		panic("redis client cannot be nil for RedisPresenceCache")
	}
	if keyPrefix == "" {
		keyPrefix = "kk:"
	}
	return &RedisPresenceCache{client: client, keyPrefix: keyPrefix}
}

var _ repository.PresenceCacheRepository = (*RedisPresenceCache)(nil)

func (c *RedisPresenceCache) presenceKey(userID string) string {
	return fmt.Sprintf("%spresence:%s", c.keyPrefix, userID)
}

func (c *RedisPresenceCache) Set(ctx context.Context, userID string, snap repository.PresenceSnapshot, ttl time.Duration) error {
	payload, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("redis: marshal presence snapshot for user %s: %w", userID, err)
	}
	key := c.presenceKey(userID)
	if err := c.client.Set(ctx, key, payload, ttl).Err(); err != nil {
		return fmt.Errorf("redis: set presence for user %s on key %s: %w", userID, key, err)
	}
	return nil
}

func (c *RedisPresenceCache) Get(ctx context.Context, userID string) (*repository.PresenceSnapshot, error) {
	key := c.presenceKey(userID)
	payload, err := c.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("redis: get presence for user %s from key %s: %w", userID, key, err)
	}
	var snap repository.PresenceSnapshot
	if err := json.Unmarshal([]byte(payload), &snap); err != nil {
		return nil, fmt.Errorf("redis: unmarshal presence for user %s: %w", userID, err)
	}
	return &snap, nil
}
