package cache

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/BruksfildServices01/mobile-barber/internal/domain/booking"
)

const slotKeyPrefix = "slots:booked:"

func SlotKey(date string) string {
	return slotKeyPrefix + date
}

// RedisSlotCache stores booked times per date as a JSON array. Every Redis
// failure is logged and treated as a miss.
type RedisSlotCache struct {
	client *redis.Client
	ttl    time.Duration
	log    *slog.Logger
}

var _ booking.SlotCache = (*RedisSlotCache)(nil)

func NewRedisSlotCache(client *redis.Client, ttl time.Duration, log *slog.Logger) *RedisSlotCache {
	return &RedisSlotCache{client: client, ttl: ttl, log: log}
}

// NewSlotCache returns a Redis-backed cache, or a no-op one when client is nil.
func NewSlotCache(client *redis.Client, ttl time.Duration, log *slog.Logger) booking.SlotCache {
	if client == nil {
		return booking.NoopSlotCache{}
	}
	return NewRedisSlotCache(client, ttl, log)
}

func (c *RedisSlotCache) BookedTimes(ctx context.Context, date string) ([]string, bool) {
	raw, err := c.client.Get(ctx, SlotKey(date)).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		c.log.Warn("slot cache get failed", "date", date, "error", err)
		return nil, false
	}

	var times []string
	if err := json.Unmarshal(raw, &times); err != nil {
		return nil, false
	}
	return times, true
}

func (c *RedisSlotCache) StoreBookedTimes(ctx context.Context, date string, times []string) {
	if times == nil {
		times = []string{}
	}
	raw, err := json.Marshal(times)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, SlotKey(date), raw, c.ttl).Err(); err != nil {
		c.log.Warn("slot cache set failed", "date", date, "error", err)
	}
}

func (c *RedisSlotCache) Invalidate(ctx context.Context, date string) {
	if err := c.client.Del(ctx, SlotKey(date)).Err(); err != nil {
		c.log.Warn("slot cache invalidate failed", "date", date, "error", err)
	}
}
