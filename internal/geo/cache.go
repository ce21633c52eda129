package geo

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const cacheTTL = 24 * time.Hour

// Cache stores resolved addresses. Misses and backend errors are treated
// identically; the geocoder just performs the lookup.
type Cache interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key, val string)
}

// RedisCache is a Redis-backed address cache.
type RedisCache struct {
	client *redis.Client
}

// ConnectCache initialises a Redis client and validates connectivity with a
// ping. Returns an error rather than a half-working cache.
func ConnectCache(ctx context.Context, addr string, db int) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr: addr,
		DB:   db,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}
	return &RedisCache{client: client}, nil
}

func (r *RedisCache) Get(ctx context.Context, key string) (string, bool) {
	val, err := r.client.Get(ctx, key).Result()
	if err != nil {
		return "", false
	}
	return val, true
}

func (r *RedisCache) Set(ctx context.Context, key, val string) {
	r.client.Set(ctx, key, val, cacheTTL)
}

func (r *RedisCache) Close() error {
	return r.client.Close()
}
