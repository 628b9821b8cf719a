package cache

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"

	"github.com/kampusapp/kampus-sync/domain"
)

// keyPrefix namespaces session keys when the cache shares a redis with
// other tenants.
const keyPrefix = "kampus:"

// redisCache backs the session cache with redis, for deployments where the
// sidecar runs next to one instead of owning local disk.
type redisCache struct {
	client *redis.Client
}

var _ domain.SessionCache = (*redisCache)(nil)

// NewRedisCache will create a new redis session cache object
func NewRedisCache(client *redis.Client) *redisCache {
	return &redisCache{client: client}
}

func (c *redisCache) Get(ctx context.Context, key string) ([]byte, error) {
	value, err := c.client.Get(ctx, keyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, domain.ErrCacheMiss
	}
	if err != nil {
		return nil, err
	}
	return value, nil
}

func (c *redisCache) Set(ctx context.Context, key string, value []byte) error {
	// No TTL: session state is durable until logout.
	return c.client.Set(ctx, keyPrefix+key, value, 0).Err()
}

func (c *redisCache) Remove(ctx context.Context, key string) error {
	return c.client.Del(ctx, keyPrefix+key).Err()
}

func (c *redisCache) Close() error {
	return c.client.Close()
}
