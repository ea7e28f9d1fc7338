package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/puestoweb/backend/internal/application/collections"
	"github.com/redis/go-redis/v9"
)

const debtSummaryKey = "projection:debt_summary"

// RedisDebtSummaryCache implements collections.DebtSummaryCache on Redis.
// Suitable when several instances serve the same store and should share
// the cached projection.
type RedisDebtSummaryCache struct {
	client *redis.Client
	key    string
}

// RedisConfig holds Redis connection configuration
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// NewRedisDebtSummaryCache creates a Redis-backed debt summary cache
func NewRedisDebtSummaryCache(cfg RedisConfig) (*RedisDebtSummaryCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisDebtSummaryCache{client: client, key: debtSummaryKey}, nil
}

// NewRedisDebtSummaryCacheWithClient creates a cache with an existing Redis
// client. Useful for testing or when sharing a client across components.
func NewRedisDebtSummaryCacheWithClient(client *redis.Client) *RedisDebtSummaryCache {
	return &RedisDebtSummaryCache{client: client, key: debtSummaryKey}
}

// Get returns the cached summary, or found=false on a miss
func (c *RedisDebtSummaryCache) Get(ctx context.Context) (*collections.DebtSummary, bool, error) {
	data, err := c.client.Get(ctx, c.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to read debt summary: %w", err)
	}

	var summary collections.DebtSummary
	if err := json.Unmarshal(data, &summary); err != nil {
		// A corrupted entry counts as a miss; it will be overwritten
		return nil, false, nil
	}

	return &summary, true, nil
}

// Set stores the summary with a TTL
func (c *RedisDebtSummaryCache) Set(ctx context.Context, summary *collections.DebtSummary, ttl time.Duration) error {
	data, err := json.Marshal(summary)
	if err != nil {
		return fmt.Errorf("failed to encode debt summary: %w", err)
	}
	if err := c.client.Set(ctx, c.key, data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to store debt summary: %w", err)
	}
	return nil
}

// Invalidate drops the cached summary
func (c *RedisDebtSummaryCache) Invalidate(ctx context.Context) error {
	if err := c.client.Del(ctx, c.key).Err(); err != nil {
		return fmt.Errorf("failed to invalidate debt summary: %w", err)
	}
	return nil
}

// Close closes the underlying Redis client
func (c *RedisDebtSummaryCache) Close() error {
	return c.client.Close()
}

var _ collections.DebtSummaryCache = (*RedisDebtSummaryCache)(nil)
