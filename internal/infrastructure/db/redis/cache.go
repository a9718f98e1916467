package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/recordkeep/customer-api/internal/api/metrics"
)

const (
	averageAgeKey = "customers:avg_age"
	averageAgeTTL = time.Minute
)

// AggregateCache stores computed customer aggregates in Redis with a
// short TTL. Writers invalidate; a stale read window up to the TTL is
// acceptable for a reporting figure.
type AggregateCache struct {
	client *redis.Client
}

func NewAggregateCache(client *redis.Client) *AggregateCache {
	return &AggregateCache{client: client}
}

func (c *AggregateCache) GetAverageAge(ctx context.Context) (float64, bool, error) {
	raw, err := c.client.Get(ctx, averageAgeKey).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			metrics.AverageAgeCacheTotal.WithLabelValues("miss").Inc()
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("cache get: %w", err)
	}

	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		// Unparseable entry: treat as a miss and let the writer replace it.
		metrics.AverageAgeCacheTotal.WithLabelValues("miss").Inc()
		return 0, false, nil
	}

	metrics.AverageAgeCacheTotal.WithLabelValues("hit").Inc()
	return value, true, nil
}

func (c *AggregateCache) SetAverageAge(ctx context.Context, value float64) error {
	raw := strconv.FormatFloat(value, 'f', -1, 64)
	if err := c.client.Set(ctx, averageAgeKey, raw, averageAgeTTL).Err(); err != nil {
		return fmt.Errorf("cache set: %w", err)
	}
	return nil
}

func (c *AggregateCache) InvalidateAverageAge(ctx context.Context) error {
	if err := c.client.Del(ctx, averageAgeKey).Err(); err != nil {
		return fmt.Errorf("cache invalidate: %w", err)
	}
	return nil
}
