package setup

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// InitRedis connects the Redis client and verifies the connection.
func InitRedis(addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           db,
		PoolSize:     20,
		MinIdleConns: 5,
		MaxConnAge:   30 * time.Minute,
	})
	if _, err := client.Ping(context.Background()).Result(); err != nil {
		return nil, fmt.Errorf("setup: connect to Redis at %s: %w", addr, err)
	}
	return client, nil
}
