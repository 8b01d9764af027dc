package structure

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"mercury/internal/edi/models"
)

// RedisCache is a read-through definition cache shared across instances.
// Definition sets are immutable per key, so the TTL exists only to pick up
// out-of-band schema data fixes.
type RedisCache struct {
	client redis.Cmdable
	ttl    time.Duration
}

// NewRedisCache wraps a redis client as a definition Cache.
func NewRedisCache(client redis.Cmdable, ttl time.Duration) *RedisCache {
	return &RedisCache{client: client, ttl: ttl}
}

func (c *RedisCache) redisKey(key string) string {
	return "mercury:structure:" + key
}

func (c *RedisCache) Get(ctx context.Context, key string) ([]models.ElementDefinition, bool, error) {
	raw, err := c.client.Get(ctx, c.redisKey(key)).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("cache get %s: %w", key, err)
	}
	var defs []models.ElementDefinition
	if err := json.Unmarshal(raw, &defs); err != nil {
		// Treat undecodable entries as misses; the source is authoritative.
		return nil, false, nil
	}
	return defs, true, nil
}

func (c *RedisCache) Set(ctx context.Context, key string, defs []models.ElementDefinition) error {
	raw, err := json.Marshal(defs)
	if err != nil {
		return fmt.Errorf("cache encode %s: %w", key, err)
	}
	if err := c.client.Set(ctx, c.redisKey(key), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache set %s: %w", key, err)
	}
	return nil
}
