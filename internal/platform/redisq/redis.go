package redisq

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// Connect builds a Redis client and verifies the connection. Redis is only
// used for the cross-instance sweep lock; the API itself never touches it.
func Connect(addr, password string, db int) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("connecting to redis: %w", err)
	}
	return rdb, nil
}
