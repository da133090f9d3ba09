package cache

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/estoquelab/stocklens/internal/config"
	"github.com/estoquelab/stocklens/internal/domain"
	"github.com/redis/go-redis/v9"
)

const (
	metricsKeyPrefix = "inventory:metrics"
	metricsScanBatch = 100
)

// MetricsCache stores computed dashboard metrics per snapshot date.
// Suggestions are cheap enough to recompute and are never cached.
type MetricsCache interface {
	Get(ctx context.Context, snapshotDate string) (*domain.DashboardMetrics, bool, error)
	Set(ctx context.Context, snapshotDate string, metrics *domain.DashboardMetrics) error
	InvalidateAll(ctx context.Context) error
}

type redisMetricsCache struct {
	client *redis.Client
	ttl    time.Duration
}

type noopMetricsCache struct{}

func NewMetricsCache(cfg config.CacheConfig) (MetricsCache, error) {
	if !cfg.Enabled {
		return &noopMetricsCache{}, nil
	}

	client, ttl, err := newRedisClient(cfg)
	if err != nil {
		return nil, err
	}

	return &redisMetricsCache{client: client, ttl: ttl}, nil
}

func NewNoopMetricsCache() MetricsCache {
	return &noopMetricsCache{}
}

func (c *redisMetricsCache) Get(ctx context.Context, snapshotDate string) (*domain.DashboardMetrics, bool, error) {
	payload, err := c.client.Get(ctx, buildMetricsKey(snapshotDate)).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get failed: %w", err)
	}

	var metrics domain.DashboardMetrics
	if err := json.Unmarshal(payload, &metrics); err != nil {
		return nil, false, fmt.Errorf("decode metrics cache: %w", err)
	}

	return &metrics, true, nil
}

func (c *redisMetricsCache) Set(ctx context.Context, snapshotDate string, metrics *domain.DashboardMetrics) error {
	payload, err := json.Marshal(metrics)
	if err != nil {
		return fmt.Errorf("encode metrics cache: %w", err)
	}

	if err := c.client.Set(ctx, buildMetricsKey(snapshotDate), payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}

	return nil
}

func (c *redisMetricsCache) InvalidateAll(ctx context.Context) error {
	return deleteKeysWithPrefix(ctx, c.client, metricsKeyPrefix, metricsScanBatch)
}

func buildMetricsKey(snapshotDate string) string {
	sum := sha1.Sum([]byte(snapshotDate))
	return fmt.Sprintf("%s:%s", metricsKeyPrefix, hex.EncodeToString(sum[:]))
}

func (noopMetricsCache) Get(context.Context, string) (*domain.DashboardMetrics, bool, error) {
	return nil, false, nil
}

func (noopMetricsCache) Set(context.Context, string, *domain.DashboardMetrics) error {
	return nil
}

func (noopMetricsCache) InvalidateAll(context.Context) error {
	return nil
}
