package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/fanzone/fanzone-backend/pkg/logger"
	"github.com/redis/go-redis/v9"
)

const (
	listKeyPrefix = "products:list:"
	opTimeout     = 2 * time.Second
)

// ProductPageCache is a read-through cache for catalog list pages. Every
// operation fails open: a redis problem is logged and the caller falls back
// to the database. A nil client disables the cache entirely.
type ProductPageCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewProductPageCache(client *redis.Client, ttl time.Duration) *ProductPageCache {
	return &ProductPageCache{client: client, ttl: ttl}
}

// Get loads a cached page into dest. Returns false on miss or any error.
func (c *ProductPageCache) Get(key string, dest interface{}) bool {
	if c == nil || c.client == nil {
		return false
	}

	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	data, err := c.client.Get(ctx, listKeyPrefix+key).Bytes()
	if err != nil {
		if err != redis.Nil {
			logger.Warn("Product cache read failed", map[string]interface{}{
				"key":   key,
				"error": err.Error(),
			})
		}
		return false
	}

	if err := json.Unmarshal(data, dest); err != nil {
		logger.Warn("Product cache entry corrupt, ignoring", map[string]interface{}{
			"key":   key,
			"error": err.Error(),
		})
		return false
	}
	return true
}

// Set stores a page under the filter key.
func (c *ProductPageCache) Set(key string, value interface{}) {
	if c == nil || c.client == nil {
		return
	}

	data, err := json.Marshal(value)
	if err != nil {
		logger.Warn("Failed to marshal product page for cache", map[string]interface{}{
			"key":   key,
			"error": err.Error(),
		})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	if err := c.client.Set(ctx, listKeyPrefix+key, data, c.ttl).Err(); err != nil {
		logger.Warn("Product cache write failed", map[string]interface{}{
			"key":   key,
			"error": err.Error(),
		})
	}
}

// Flush drops every cached list page. Called after any admin catalog write
// because a single product edit can move rows across arbitrary filter sets.
func (c *ProductPageCache) Flush() {
	if c == nil || c.client == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	iter := c.client.Scan(ctx, 0, listKeyPrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			logger.Warn("Product cache delete failed", map[string]interface{}{
				"key":   iter.Val(),
				"error": err.Error(),
			})
		}
	}
	if err := iter.Err(); err != nil {
		logger.Warn("Product cache flush scan failed", map[string]interface{}{
			"error": err.Error(),
		})
	}
}
