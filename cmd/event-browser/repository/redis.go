package repository

import (
	"context"
	"errors"

	"github.com/go-redis/redis/v8"
)

// RedisRepo stores entries as plain string keys under a prefix.
type RedisRepo struct {
	client *redis.Client
	prefix string
}

func NewRedisRepo(client *redis.Client, prefix string) *RedisRepo {
	return &RedisRepo{
		client: client,
		prefix: prefix,
	}
}

func (r *RedisRepo) key(k string) string {
	return r.prefix + k
}

func (r *RedisRepo) Get(ctx context.Context, key string) (string, bool, error) {
	value, err := r.client.Get(ctx, r.key(key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}

	return value, true, nil
}

func (r *RedisRepo) Set(ctx context.Context, key, value string) error {
	return r.client.Set(ctx, r.key(key), value, 0).Err()
}

func (r *RedisRepo) Remove(ctx context.Context, key string) error {
	return r.client.Del(ctx, r.key(key)).Err()
}

func (r *RedisRepo) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *RedisRepo) Close() error {
	return r.client.Close()
}
