package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/SscSPs/ledger_books_app/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_books_app/internal/core/ports/repositories"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "ledger_books:metrics"

// RedisMetricsCache caches per-company metrics under a versioned key.
// Bumping the company's version orphans older values, which then expire via TTL.
type RedisMetricsCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisMetricsCache creates a new metrics cache.
func NewRedisMetricsCache(client *redis.Client, ttl time.Duration) *RedisMetricsCache {
	return &RedisMetricsCache{client: client, ttl: ttl}
}

var _ portsrepo.MetricsCache = (*RedisMetricsCache)(nil)

func versionKey(companyID string) string {
	return fmt.Sprintf("%s:%s:version", keyPrefix, companyID)
}

// version returns the company's current cache version, initialising it when missing.
func (c *RedisMetricsCache) version(ctx context.Context, companyID string) (int64, error) {
	ver, err := c.client.Get(ctx, versionKey(companyID)).Int64()
	if errors.Is(err, redis.Nil) {
		// SetNX so a concurrent Invalidate is not overwritten.
		if err := c.client.SetNX(ctx, versionKey(companyID), 1, 0).Err(); err != nil {
			return 0, err
		}
		return c.client.Get(ctx, versionKey(companyID)).Int64()
	}
	if err != nil {
		return 0, err
	}
	return ver, nil
}

// Fetch returns cached metrics or populates the cache using load.
func (c *RedisMetricsCache) Fetch(ctx context.Context, companyID string, load portsrepo.MetricsLoader) (domain.FinancialMetrics, error) {
	var metrics domain.FinancialMetrics

	ver, err := c.version(ctx, companyID)
	if err != nil {
		return metrics, fmt.Errorf("metrics cache: version: %w", err)
	}
	key := fmt.Sprintf("%s:%s:%d", keyPrefix, companyID, ver)

	payload, err := c.client.Get(ctx, key).Bytes()
	if err == nil {
		if err := json.Unmarshal(payload, &metrics); err == nil {
			return metrics, nil
		}
	} else if !errors.Is(err, redis.Nil) {
		return metrics, fmt.Errorf("metrics cache: get: %w", err)
	}

	metrics, err = load(ctx)
	if err != nil {
		return metrics, err
	}
	raw, err := json.Marshal(metrics)
	if err != nil {
		return metrics, err
	}
	if err := c.client.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		return metrics, fmt.Errorf("metrics cache: set: %w", err)
	}
	return metrics, nil
}

// Invalidate bumps the company's version.
func (c *RedisMetricsCache) Invalidate(ctx context.Context, companyID string) error {
	return c.client.Incr(ctx, versionKey(companyID)).Err()
}
