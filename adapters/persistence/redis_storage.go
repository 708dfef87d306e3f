package persistence

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"

	"github.com/khoahotran/portfolio/internal/domain/storage"
	"github.com/khoahotran/portfolio/pkg/apperror"
)

type redisStorage struct {
	client    redis.Cmdable
	namespace string
}

// NewRedisStorage keeps every key under namespace, e.g. "portfolio:" + key.
func NewRedisStorage(client redis.Cmdable, namespace string) storage.Storage {
	return &redisStorage{client: client, namespace: namespace}
}

func (r *redisStorage) key(k string) string {
	return r.namespace + k
}

func (r *redisStorage) Get(ctx context.Context, key string) (string, bool, error) {
	val, err := r.client.Get(ctx, r.key(key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, apperror.NewUnavailable("redis get "+key, err)
	}
	return val, true, nil
}

func (r *redisStorage) Set(ctx context.Context, key, value string) error {
	if err := r.client.Set(ctx, r.key(key), value, 0).Err(); err != nil {
		return apperror.NewUnavailable("redis set "+key, err)
	}
	return nil
}

func (r *redisStorage) Remove(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, r.key(key)).Err(); err != nil {
		return apperror.NewUnavailable("redis del "+key, err)
	}
	return nil
}
