package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"gridquote/pkg/models"
)

// RedisCache is a quote.Cache implementation for sharing memoized
// quotes across engine replicas. Like every cache here it is derived
// data only: a miss, an eviction, or a flush just means recomputing.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisCache wraps an existing client. A zero ttl means entries
// never expire (eviction is left to Redis policy).
func NewRedisCache(client *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{client: client, ttl: ttl}
}

func cacheKey(fingerprint string) string {
	return "gridquote:memo:" + fingerprint
}

// Get fetches and decodes a memoized quote. Any Redis or decode error
// degrades to a miss; the engine recomputes identically.
func (c *RedisCache) Get(ctx context.Context, key string) (*models.AuthenticatedQuote, bool) {
	raw, err := c.client.Get(ctx, cacheKey(key)).Bytes()
	if err != nil {
		return nil, false
	}
	var q models.AuthenticatedQuote
	if err := json.Unmarshal(raw, &q); err != nil {
		fmt.Printf("[WARNING] Corrupt memo cache entry %s: %v\n", key[:12], err)
		return nil, false
	}
	return &q, true
}

// Set stores a finished quote; failures are logged and ignored since
// the cache is never a source of truth.
func (c *RedisCache) Set(ctx context.Context, key string, q *models.AuthenticatedQuote) {
	raw, err := json.Marshal(q)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, cacheKey(key), raw, c.ttl).Err(); err != nil {
		fmt.Printf("[WARNING] Memo cache write failed for %s: %v\n", key[:12], err)
	}
}
