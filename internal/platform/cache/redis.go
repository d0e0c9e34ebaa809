// Package cache implements the report read-model cache on Redis, with a
// no-op fallback for deployments without a cache backend.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	portssvc "github.com/gastosapp/gastos_backend/internal/core/ports/services"
	"github.com/redis/go-redis/v9"
)

// NewRedisClient creates and validates a go-redis client connection.
func NewRedisClient(redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}

	rdb := redis.NewClient(opts)

	if err := rdb.Ping(context.Background()).Err(); err != nil {
		return nil, err
	}

	return rdb, nil
}

type redisReportCache struct {
	rdb *redis.Client
}

// NewRedisReportCache wraps a redis client as a ReportCache. Keys follow the
// pattern "reports:<companyID>:<report>" so a whole company can be
// invalidated with one scan.
func NewRedisReportCache(rdb *redis.Client) portssvc.ReportCache {
	return &redisReportCache{rdb: rdb}
}

func (c *redisReportCache) GetJSON(ctx context.Context, key string, dest any) (bool, error) {
	raw, err := c.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return false, fmt.Errorf("corrupt cache entry %s: %w", key, err)
	}
	return true, nil
}

func (c *redisReportCache) SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, key, raw, ttl).Err()
}

func (c *redisReportCache) InvalidateCompany(ctx context.Context, companyID string) error {
	pattern := fmt.Sprintf("reports:%s:*", companyID)
	iter := c.rdb.Scan(ctx, 0, pattern, 0).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	return c.rdb.Del(ctx, keys...).Err()
}

type noopReportCache struct{}

// NewNoopReportCache returns a cache that never hits and never fails, used
// when REDIS_URL is not configured.
func NewNoopReportCache() portssvc.ReportCache {
	return noopReportCache{}
}

func (noopReportCache) GetJSON(ctx context.Context, key string, dest any) (bool, error) {
	return false, nil
}

func (noopReportCache) SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error {
	return nil
}

func (noopReportCache) InvalidateCompany(ctx context.Context, companyID string) error {
	return nil
}
