package seometa

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisRenderCacheConfig configures a RedisRenderCache.
type RedisRenderCacheConfig struct {
	// Addr is the Redis server address (host:port)
	Addr string
	// Password is the Redis password (optional)
	Password string
	// DB is the Redis database number
	DB int
	// Prefix is prepended to every key (optional)
	Prefix string
}

// DefaultRedisRenderCacheConfig returns a configuration for a local Redis.
func DefaultRedisRenderCacheConfig() RedisRenderCacheConfig {
	return RedisRenderCacheConfig{Addr: DefaultRedisAddr}
}

// RedisRenderCache is a RenderCache shared between processes through Redis.
type RedisRenderCache struct {
	client *redis.Client
	prefix string
}

// NewRedisRenderCache connects to Redis and verifies the connection.
func NewRedisRenderCache(config RedisRenderCacheConfig) (*RedisRenderCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     config.Addr,
		Password: config.Password,
		DB:       config.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), DefaultRedisPingTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, NewCacheError(ErrMsgCacheConnectionFailed, err)
	}
	return NewRedisRenderCacheWithClient(client, config.Prefix), nil
}

// NewRedisRenderCacheWithClient wraps an existing client.
func NewRedisRenderCacheWithClient(client *redis.Client, prefix string) *RedisRenderCache {
	return &RedisRenderCache{client: client, prefix: prefix}
}

// Get implements RenderCache.
func (c *RedisRenderCache) Get(ctx context.Context, key string) (string, bool, error) {
	v, err := c.client.Get(ctx, c.prefix+key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", false, nil
		}
		return "", false, NewCacheError(ErrMsgCacheOperationFailed, err)
	}
	return v, true, nil
}

// Set implements RenderCache.
func (c *RedisRenderCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = DefaultRenderCacheTTL
	}
	if err := c.client.Set(ctx, c.prefix+key, value, ttl).Err(); err != nil {
		return NewCacheError(ErrMsgCacheOperationFailed, err)
	}
	return nil
}

// Delete implements RenderCache.
func (c *RedisRenderCache) Delete(ctx context.Context, key string) error {
	if err := c.client.Del(ctx, c.prefix+key).Err(); err != nil {
		return NewCacheError(ErrMsgCacheOperationFailed, err)
	}
	return nil
}

// Close closes the Redis connection.
func (c *RedisRenderCache) Close() error {
	return c.client.Close()
}
