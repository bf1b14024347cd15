package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/agrisolutions-hub/agrisolutions-api/internal/config"
	"github.com/agrisolutions-hub/agrisolutions-api/internal/logging"
	"github.com/agrisolutions-hub/agrisolutions-api/internal/models"
)

const (
	marketPricesKey = "market:latest"
	defaultCacheTTL = 5 * time.Minute
)

// RedisMarketCache caches the latest market price listing. A miss or any
// Redis failure falls through to the database; the cache is never
// authoritative.
type RedisMarketCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *logging.Logger
}

// NewRedisMarketCache creates a Redis-backed market price cache.
func NewRedisMarketCache(cfg config.RedisConfig) *RedisMarketCache {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ttl := cfg.TTL
	if ttl == 0 {
		ttl = defaultCacheTTL
	}

	return &RedisMarketCache{
		client: client,
		ttl:    ttl,
		logger: logging.NewLogger("market-cache"),
	}
}

// GetPrices returns the cached listing, or nil on a miss.
func (c *RedisMarketCache) GetPrices(ctx context.Context) ([]models.MarketPrice, error) {
	data, err := c.client.Get(ctx, marketPricesKey).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		c.logger.Error("Cache get error", logging.Fields{"error": err.Error()})
		return nil, err
	}

	var prices []models.MarketPrice
	if err := json.Unmarshal(data, &prices); err != nil {
		return nil, err
	}

	return prices, nil
}

// SetPrices stores the listing with the configured TTL.
func (c *RedisMarketCache) SetPrices(ctx context.Context, prices []models.MarketPrice) error {
	data, err := json.Marshal(prices)
	if err != nil {
		return err
	}

	if err := c.client.Set(ctx, marketPricesKey, data, c.ttl).Err(); err != nil {
		c.logger.Error("Cache set error", logging.Fields{"error": err.Error()})
		return err
	}
	return nil
}

// Invalidate drops the cached listing.
func (c *RedisMarketCache) Invalidate(ctx context.Context) error {
	return c.client.Del(ctx, marketPricesKey).Err()
}
