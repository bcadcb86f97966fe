package database

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisClient wraps the redis connection used as a response cache for the
// reference-data endpoints.
type RedisClient struct {
	client *redis.Client
}

func GetRedisClient(addr, password string, db int) (*RedisClient, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &RedisClient{client: client}, nil
}

// CacheGet returns the cached payload for key, or ok=false on a miss.
// Infrastructure errors are treated as misses so the caller falls through
// to the database.
func (r *RedisClient) CacheGet(ctx context.Context, key string) (string, bool) {
	val, err := r.client.Get(ctx, key).Result()
	if err != nil {
		return "", false
	}
	return val, true
}

func (r *RedisClient) CacheSet(ctx context.Context, key, value string, ttl time.Duration) error {
	return r.client.Set(ctx, key, value, ttl).Err()
}

// CacheInvalidate removes cached entries whose keys match the given pattern.
func (r *RedisClient) CacheInvalidate(ctx context.Context, pattern string) error {
	iter := r.client.Scan(ctx, 0, pattern, 0).Iterator()
	for iter.Next(ctx) {
		if err := r.client.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}

func (r *RedisClient) Close() error {
	return r.client.Close()
}
