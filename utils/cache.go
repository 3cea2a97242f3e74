// File: utils/cache.go
package utils

import (
	"context"
	"fmt"
	"time"

	"subwatch/config"

	"github.com/go-redis/redis/v8"
)

// NewDispatchCacheClient initializes the Redis client used for dispatch
// deduplication markers and verifies the connection.
func NewDispatchCacheClient() (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisDispatchDB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := client.Ping(ctx).Result(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis (dispatch cache): %w", err)
	}
	return client, nil
}
