package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/solemate-shop/solemate-api/internal/config"
	"github.com/solemate-shop/solemate-api/internal/metrics"
	"github.com/solemate-shop/solemate-api/internal/models"
)

const (
	orderKeyPrefix  = "order:"
	userCartPrefix  = "cart:"
	defaultCacheTTL = 5 * time.Minute
)

// NewRedisClient builds the shared redis handle.
func NewRedisClient(cfg config.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})
}

// RedisOrderCache implements OrderCache on redis. Misses return (nil, nil);
// the caller falls through to the repository.
type RedisOrderCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewRedisOrderCache creates a redis-backed order cache.
func NewRedisOrderCache(client *redis.Client, ttl time.Duration, logger *zap.Logger) *RedisOrderCache {
	if ttl == 0 {
		ttl = defaultCacheTTL
	}
	return &RedisOrderCache{client: client, ttl: ttl, logger: logger}
}

// Get retrieves an order from cache; nil on miss.
func (c *RedisOrderCache) Get(ctx context.Context, id string) (*models.Order, error) {
	data, err := c.client.Get(ctx, orderKeyPrefix+id).Bytes()
	if err == redis.Nil {
		metrics.CacheMisses.WithLabelValues("order").Inc()
		return nil, nil
	}
	if err != nil {
		c.logger.Warn("order cache get failed", zap.String("order_id", id), zap.Error(err))
		return nil, err
	}

	var order models.Order
	if err := json.Unmarshal(data, &order); err != nil {
		return nil, err
	}

	metrics.CacheHits.WithLabelValues("order").Inc()
	return &order, nil
}

// Set stores an order with the configured TTL.
func (c *RedisOrderCache) Set(ctx context.Context, order *models.Order) error {
	data, err := json.Marshal(order)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, orderKeyPrefix+order.ID, data, c.ttl).Err()
}

// Delete drops one cached order.
func (c *RedisOrderCache) Delete(ctx context.Context, id string) error {
	return c.client.Del(ctx, orderKeyPrefix+id).Err()
}

// RedisCartCache caches the assembled cart snapshot per user.
type RedisCartCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

func NewRedisCartCache(client *redis.Client, ttl time.Duration, logger *zap.Logger) *RedisCartCache {
	if ttl == 0 {
		ttl = defaultCacheTTL
	}
	return &RedisCartCache{client: client, ttl: ttl, logger: logger}
}

// Get returns the cached cart or (nil, nil) on miss.
func (c *RedisCartCache) Get(ctx context.Context, userID string) (*models.CartResponse, error) {
	data, err := c.client.Get(ctx, userCartPrefix+userID).Bytes()
	if err == redis.Nil {
		metrics.CacheMisses.WithLabelValues("cart").Inc()
		return nil, nil
	}
	if err != nil {
		c.logger.Warn("cart cache get failed", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}

	var cart models.CartResponse
	if err := json.Unmarshal(data, &cart); err != nil {
		return nil, err
	}

	metrics.CacheHits.WithLabelValues("cart").Inc()
	return &cart, nil
}

func (c *RedisCartCache) Set(ctx context.Context, userID string, cart *models.CartResponse) error {
	data, err := json.Marshal(cart)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, userCartPrefix+userID, data, c.ttl).Err()
}

func (c *RedisCartCache) Invalidate(ctx context.Context, userID string) error {
	return c.client.Del(ctx, userCartPrefix+userID).Err()
}
