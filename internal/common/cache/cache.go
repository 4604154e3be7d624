package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"raffle-tool-backend/internal/common/logger"
)

// keyPrefix namespaces every cache entry. The cache shares a client and DB
// with the repositories, so cached reads must never collide with the store's
// own keys (raffle:<id>, purchases:*, ...).
const keyPrefix = "cache:"

// CacheService provides JSON read-through caching on top of Redis. A nil
// *CacheService is valid and disables caching, which is how the memory store
// mode runs.
type CacheService struct {
	client redis.Cmdable
}

func NewCacheService(client redis.Cmdable) *CacheService {
	return &CacheService{client: client}
}

func (c *CacheService) Get(ctx context.Context, key string, dest interface{}) error {
	data, err := c.client.Get(ctx, keyPrefix+key).Result()
	if err != nil {
		return err
	}
	return json.Unmarshal([]byte(data), dest)
}

func (c *CacheService) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal value: %w", err)
	}
	return c.client.Set(ctx, keyPrefix+key, string(data), ttl).Err()
}

func (c *CacheService) Delete(ctx context.Context, keys ...string) error {
	if c == nil || len(keys) == 0 {
		return nil
	}
	prefixed := make([]string, len(keys))
	for i, key := range keys {
		prefixed[i] = keyPrefix + key
	}
	return c.client.Del(ctx, prefixed...).Err()
}

// GetOrSet returns the cached value under key, or computes it with setter and
// caches it for ttl. A nil service or non-positive ttl bypasses the cache.
// Cache failures degrade to the loader, they never fail the read.
func (c *CacheService) GetOrSet(ctx context.Context, key string, dest interface{}, ttl time.Duration, setter func() (interface{}, error)) error {
	if c == nil || ttl <= 0 {
		value, err := setter()
		if err != nil {
			return err
		}
		return copyValue(value, dest)
	}

	if err := c.Get(ctx, key, dest); err == nil {
		return nil
	}

	value, err := setter()
	if err != nil {
		return err
	}

	if err := c.Set(ctx, key, value, ttl); err != nil {
		logger.Warn().Err(err).Str("key", key).Msg("cache set failed")
	}

	return copyValue(value, dest)
}

// InvalidateRaffle drops cached reads that include raffle state.
func (c *CacheService) InvalidateRaffle(ctx context.Context, raffleID string) error {
	return c.Delete(ctx,
		fmt.Sprintf("raffle:%s", raffleID),
		"raffles:list",
		"raffles:list:active",
		"stats",
	)
}

// InvalidateLeaderboard drops cached rankings after a new paid purchase.
func (c *CacheService) InvalidateLeaderboard(ctx context.Context) error {
	return c.Delete(ctx, "leaderboard:all_time", "leaderboard:today", "stats")
}

func copyValue(value, dest interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, dest)
}
