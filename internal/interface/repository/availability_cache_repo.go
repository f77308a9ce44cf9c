package repository

import (
	"context"
	"encoding/json"
	"time"

	"liveaboard-service/internal/domain/entity"
	"liveaboard-service/internal/domain/repository"

	"github.com/redis/go-redis/v9"
)

const browseSnapshotKey = "availability:browse:snapshot"

// RedisAvailabilityCache caches the browse-mode availability snapshot so
// the sampled call budget is shared across sessions.
type RedisAvailabilityCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisAvailabilityCache creates a new availability cache
func NewRedisAvailabilityCache(client *redis.Client, ttl time.Duration) repository.AvailabilityCache {
	return &RedisAvailabilityCache{
		client: client,
		ttl:    ttl,
	}
}

// GetBrowseSnapshot returns the cached snapshot, or (nil, nil) on a miss
func (c *RedisAvailabilityCache) GetBrowseSnapshot(ctx context.Context) (*entity.AvailabilitySnapshot, error) {
	raw, err := c.client.Get(ctx, browseSnapshotKey).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var snap entity.AvailabilitySnapshot
	if err := json.Unmarshal([]byte(raw), &snap); err != nil {
		return nil, err
	}
	if snap.Operators == nil {
		snap.Operators = make(map[string]*entity.OperatorAvailability)
	}
	if snap.BrowsePool == nil {
		snap.BrowsePool = []string{}
	}
	return &snap, nil
}

// SetBrowseSnapshot stores the snapshot under a TTL
func (c *RedisAvailabilityCache) SetBrowseSnapshot(ctx context.Context, snap *entity.AvailabilitySnapshot) error {
	raw, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, browseSnapshotKey, raw, c.ttl).Err()
}
