package idcache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	redisPingTimeout = 3 * time.Second
	redisScanCount   = 500
)

// redisCache is a Cache backed by a redis server, shared between runs
// and between hosts pointing at the same instance.
type redisCache struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

var _ Cache = (*redisCache)(nil)

func openRedis(cfg Config) (*redisCache, error) {
	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), redisPingTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return &redisCache{
		client: client,
		prefix: cfg.Prefix,
		ttl:    cfg.TTL(),
	}, nil
}

func (c *redisCache) Get(ctx context.Context, fingerprint string) (string, bool, error) {
	val, err := c.client.Get(ctx, c.prefix+fingerprint).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return val, true, nil
}

func (c *redisCache) Set(ctx context.Context, fingerprint, assetID string) error {
	// A zero TTL stores the key without expiry.
	return c.client.Set(ctx, c.prefix+fingerprint, assetID, c.ttl).Err()
}

func (c *redisCache) Len(ctx context.Context) (int64, error) {
	var count int64
	iter := c.client.Scan(ctx, 0, c.prefix+"*", redisScanCount).Iterator()
	for iter.Next(ctx) {
		count++
	}
	if err := iter.Err(); err != nil {
		return 0, err
	}
	return count, nil
}

func (c *redisCache) Flush(ctx context.Context) error {
	iter := c.client.Scan(ctx, 0, c.prefix+"*", redisScanCount).Iterator()
	keys := make([]string, 0, redisScanCount)
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
		if len(keys) == redisScanCount {
			if err := c.client.Del(ctx, keys...).Err(); err != nil {
				return err
			}
			keys = keys[:0]
		}
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if len(keys) > 0 {
		return c.client.Del(ctx, keys...).Err()
	}
	return nil
}

func (c *redisCache) Close() error {
	return c.client.Close()
}
