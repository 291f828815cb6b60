package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	domain "github.com/bookwellhq/booking-scheduler/internal/domain/appointment"
)

const slotTTL = 60 * time.Second

// SlotRedisCache caches computed slot lists per (staff, date) day.
// Invalidation bumps a per-day version counter instead of scanning
// keys, so a booking instantly hides its slot from the next read.
// Every redis failure degrades to a cache miss.
type SlotRedisCache struct {
	rdb *redis.Client
}

func NewSlotRedisCache(redisURL string) (*SlotRedisCache, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}

	return &SlotRedisCache{rdb: redis.NewClient(opts)}, nil
}

func (c *SlotRedisCache) versionKey(staffID uint, date string) string {
	return fmt.Sprintf("slots:ver:%d:%s", staffID, date)
}

func (c *SlotRedisCache) slotKey(ctx context.Context, in domain.AvailabilityInput) string {
	ver, err := c.rdb.Get(ctx, c.versionKey(in.StaffID, in.Date)).Int64()
	if err != nil {
		ver = 0
	}

	return fmt.Sprintf(
		"slots:%d:%d:%s:v%d:d%d:b%d:x%d",
		in.BusinessID, in.StaffID, in.Date, ver,
		in.DurationMin, in.BufferMin, in.ExcludeAppointmentID,
	)
}

func (c *SlotRedisCache) Get(ctx context.Context, in domain.AvailabilityInput) ([]string, bool) {
	raw, err := c.rdb.Get(ctx, c.slotKey(ctx, in)).Bytes()
	if err != nil {
		return nil, false
	}

	var slots []string
	if err := json.Unmarshal(raw, &slots); err != nil {
		return nil, false
	}

	return slots, true
}

func (c *SlotRedisCache) Set(ctx context.Context, in domain.AvailabilityInput, slots []string) {
	raw, err := json.Marshal(slots)
	if err != nil {
		return
	}

	c.rdb.Set(ctx, c.slotKey(ctx, in), raw, slotTTL)
}

func (c *SlotRedisCache) InvalidateDay(ctx context.Context, staffID uint, date string) {
	key := c.versionKey(staffID, date)
	if err := c.rdb.Incr(ctx, key).Err(); err != nil {
		return
	}
	c.rdb.Expire(ctx, key, 24*time.Hour)
}
