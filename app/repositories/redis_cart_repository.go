package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

type redisCartRepository struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisCartRepository stores cart records as plain string values. A
// zero ttl keeps them forever.
func NewRedisCartRepository(client *redis.Client, ttl time.Duration) CartStorage {
	return &redisCartRepository{client: client, ttl: ttl}
}

func (r *redisCartRepository) Get(ctx context.Context, key string) (string, bool, error) {
	value, err := r.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", false, nil
		}
		return "", false, err
	}
	return value, true, nil
}

func (r *redisCartRepository) Set(ctx context.Context, key, value string) error {
	return r.client.Set(ctx, key, value, r.ttl).Err()
}

func (r *redisCartRepository) Delete(ctx context.Context, key string) error {
	return r.client.Del(ctx, key).Err()
}
