// Package cart holds the session-scoped shopping cart and its Redis
// persistence. Each cart is owned by exactly one session key; persistence
// is best-effort and a cart that fails to load silently resets to empty,
// matching how the browser-side cart treated corrupt local storage.
package cart

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
	cartKeyPrefix  = "cart:"
	defaultCartTTL = 7 * 24 * time.Hour
)

// Store persists carts keyed by session cart id.
type Store struct {
	client *redis.Client
	ttl    time.Duration
	logger *logging.Logger
}

// NewStore creates a Redis-backed cart store.
func NewStore(cfg config.RedisConfig) *Store {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	return &Store{
		client: client,
		ttl:    defaultCartTTL,
		logger: logging.NewLogger("cart-store"),
	}
}

// Load returns the cart for a session key. Missing or undecodable carts
// come back empty rather than erroring; last write wins between sessions
// sharing a key.
func (s *Store) Load(ctx context.Context, key string) *models.Cart {
	data, err := s.client.Get(ctx, cartKeyPrefix+key).Bytes()
	if err == redis.Nil {
		return &models.Cart{}
	}
	if err != nil {
		s.logger.Error("Cart load error", logging.Fields{
			"cart_key": key,
			"error":    err.Error(),
		})
		return &models.Cart{}
	}

	return Decode(data)
}

// Save persists the cart. Failures are logged and ignored; the in-memory
// cart stays valid for the rest of the request.
func (s *Store) Save(ctx context.Context, key string, c *models.Cart) {
	data, err := json.Marshal(c)
	if err != nil {
		s.logger.Error("Cart encode error", logging.Fields{"cart_key": key, "error": err.Error()})
		return
	}

	if err := s.client.Set(ctx, cartKeyPrefix+key, data, s.ttl).Err(); err != nil {
		s.logger.Error("Cart save error", logging.Fields{
			"cart_key": key,
			"error":    err.Error(),
		})
	}
}

// Clear removes the persisted cart for a session key.
func (s *Store) Clear(ctx context.Context, key string) {
	if err := s.client.Del(ctx, cartKeyPrefix+key).Err(); err != nil {
		s.logger.Error("Cart clear error", logging.Fields{
			"cart_key": key,
			"error":    err.Error(),
		})
	}
}

// Decode deserializes a stored cart. Corrupt payloads reset to an empty
// cart instead of propagating an error.
func Decode(data []byte) *models.Cart {
	var c models.Cart
	if err := json.Unmarshal(data, &c); err != nil {
		return &models.Cart{}
	}
	c.Normalize()
	return &c
}
