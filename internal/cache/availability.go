package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"github.com/northlight-studio/studio-scheduler/internal/config"
	domain "github.com/northlight-studio/studio-scheduler/internal/domain/booking"
)

// NewRedisClient connects the cache client or returns nil when redis is
// unreachable; the availability flow degrades to uncached computation.
func NewRedisClient(cfg *config.Config, log *zap.Logger) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if _, err := client.Ping(ctx).Result(); err != nil {
		log.Warn("redis unavailable, availability cache disabled", zap.Error(err))
		return nil
	}

	return client
}

// AvailabilityCache holds computed slot lists for a short TTL. Any booking
// write for the day invalidates the key, so staleness is bounded by TTL
// only for writes that bypass this process.
type AvailabilityCache struct {
	client *redis.Client
	log    *zap.Logger
	ttl    time.Duration
}

func NewAvailabilityCache(client *redis.Client, log *zap.Logger) *AvailabilityCache {
	if client == nil {
		return nil
	}
	return &AvailabilityCache{
		client: client,
		log:    log,
		ttl:    60 * time.Second,
	}
}

func key(studioID, serviceID uint, date string) string {
	return fmt.Sprintf("avail:%d:%d:%s", studioID, serviceID, date)
}

func (c *AvailabilityCache) GetSlots(
	ctx context.Context,
	studioID uint,
	serviceID uint,
	date string,
) ([]domain.TimeSlot, bool) {

	raw, err := c.client.Get(ctx, key(studioID, serviceID, date)).Result()
	if err != nil {
		return nil, false
	}

	var slots []domain.TimeSlot
	if err := json.Unmarshal([]byte(raw), &slots); err != nil {
		return nil, false
	}

	return slots, true
}

func (c *AvailabilityCache) SetSlots(
	ctx context.Context,
	studioID uint,
	serviceID uint,
	date string,
	slots []domain.TimeSlot,
) {

	raw, err := json.Marshal(slots)
	if err != nil {
		return
	}

	if err := c.client.Set(ctx, key(studioID, serviceID, date), raw, c.ttl).Err(); err != nil {
		c.log.Debug("availability cache set failed", zap.Error(err))
	}
}

func (c *AvailabilityCache) InvalidateDay(
	ctx context.Context,
	studioID uint,
	serviceID uint,
	date string,
) {

	if err := c.client.Del(ctx, key(studioID, serviceID, date)).Err(); err != nil {
		c.log.Debug("availability cache invalidate failed", zap.Error(err))
	}
}
