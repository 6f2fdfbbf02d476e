package cache

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/BruksfildServices01/mobile-barber/internal/config"
)

// NewRedisClient connects to Redis. It returns nil when no address is
// configured or the server does not answer, and callers run without Redis.
func NewRedisClient(cfg *config.Config) *redis.Client {
	if cfg.RedisAddr == "" {
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil
	}
	return client
}
