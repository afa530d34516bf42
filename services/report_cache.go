package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ReportCache stores serialized report responses.
type ReportCache interface {
	Get(ctx context.Context, key string, dest interface{}) (bool, error)
	Set(ctx context.Context, key string, value interface{}) error
	Invalidate(ctx context.Context) error
}

type NopReportCache struct{}

func (NopReportCache) Get(context.Context, string, interface{}) (bool, error) { return false, nil }
func (NopReportCache) Set(context.Context, string, interface{}) error          { return nil }
func (NopReportCache) Invalidate(context.Context) error                        { return nil }

const reportVersionKey = "stats:version"

// RedisReportCache namespaces keys by a version counter; Invalidate bumps
// the version so stale entries are never read and simply expire.
type RedisReportCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisReportCache(client *redis.Client, ttl time.Duration) *RedisReportCache {
	return &RedisReportCache{client: client, ttl: ttl}
}

func (c *RedisReportCache) versioned(ctx context.Context, key string) (string, error) {
	v, err := c.client.Get(ctx, reportVersionKey).Int64()
	if err != nil && !errors.Is(err, redis.Nil) {
		return "", err
	}
	return fmt.Sprintf("stats:v%d:%s", v, key), nil
}

func (c *RedisReportCache) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	k, err := c.versioned(ctx, key)
	if err != nil {
		return false, err
	}
	val, err := c.client.Get(ctx, k).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(val, dest); err != nil {
		return false, err
	}
	return true, nil
}

func (c *RedisReportCache) Set(ctx context.Context, key string, value interface{}) error {
	k, err := c.versioned(ctx, key)
	if err != nil {
		return err
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, k, raw, c.ttl).Err()
}

func (c *RedisReportCache) Invalidate(ctx context.Context) error {
	return c.client.Incr(ctx, reportVersionKey).Err()
}
