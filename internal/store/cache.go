package store

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"medigrid/internal/model"
	"medigrid/internal/schedule"
)

const fetchAllKey = "appointments:all"

// CachedStore wraps a persistence collaborator with an optional Redis
// read-through cache for FetchAll. Every write invalidates the cache; the
// store stays authoritative.
type CachedStore struct {
	inner schedule.Store
	redis *redis.Client
	ttl   time.Duration
}

// NewCachedStore wraps inner with a Redis cache.
func NewCachedStore(inner schedule.Store, redisClient *redis.Client, ttl time.Duration) *CachedStore {
	return &CachedStore{inner: inner, redis: redisClient, ttl: ttl}
}

func (c *CachedStore) Create(ctx context.Context, a model.Appointment) (model.Appointment, error) {
	persisted, err := c.inner.Create(ctx, a)
	if err != nil {
		return model.Appointment{}, err
	}
	c.invalidate(ctx)
	return persisted, nil
}

func (c *CachedStore) Update(ctx context.Context, a model.Appointment) error {
	if err := c.inner.Update(ctx, a); err != nil {
		return err
	}
	c.invalidate(ctx)
	return nil
}

func (c *CachedStore) Delete(ctx context.Context, id string) error {
	if err := c.inner.Delete(ctx, id); err != nil {
		return err
	}
	c.invalidate(ctx)
	return nil
}

func (c *CachedStore) FetchAll(ctx context.Context) ([]model.Appointment, error) {
	var cached []model.Appointment
	if c.readCache(ctx, fetchAllKey, &cached) {
		return cached, nil
	}

	all, err := c.inner.FetchAll(ctx)
	if err != nil {
		return nil, err
	}
	c.writeCache(ctx, fetchAllKey, all)
	return all, nil
}

func (c *CachedStore) readCache(ctx context.Context, key string, out any) bool {
	if c.redis == nil || c.ttl <= 0 {
		return false
	}
	val, err := c.redis.Get(ctx, key).Result()
	if err != nil {
		return false
	}
	return json.Unmarshal([]byte(val), out) == nil
}

func (c *CachedStore) writeCache(ctx context.Context, key string, val any) {
	if c.redis == nil || c.ttl <= 0 {
		return
	}
	data, err := json.Marshal(val)
	if err != nil {
		return
	}
	// Cache failures are ignored; the store remains authoritative.
	_ = c.redis.Set(ctx, key, data, c.ttl).Err()
}

func (c *CachedStore) invalidate(ctx context.Context) {
	if c.redis == nil {
		return
	}
	_ = c.redis.Del(ctx, fetchAllKey).Err()
}
