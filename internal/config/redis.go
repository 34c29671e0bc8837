package config

import (
	"context"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// NewRedisClient connects to the shared revocation store. Returns nil when
// REDIS_ADDR is unset or unreachable; callers fall back to the in-process
// registry.
func NewRedisClient(cfg *Config) *redis.Client {
	if cfg.REDIS_ADDR == "" {
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.REDIS_ADDR,
		Password: cfg.REDIS_PASSWORD,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		log.Printf("redis unavailable at %s: %v", cfg.REDIS_ADDR, err)
		return nil
	}
	return client
}
