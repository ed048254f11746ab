package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultKeyPrefix = "mycare:"

// RedisStore is a key-value store on redis. Keys expire after ttl when it is positive.
type RedisStore struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// Connect parses a redis:// URL and pings the server before returning.
func Connect(ctx context.Context, rawURL string, ttl time.Duration) (*RedisStore, error) {
	options, err := redis.ParseURL(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	client := redis.NewClient(options)
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("connect to redis: %w", err)
	}
	return NewRedisStore(client, ttl), nil
}

func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, prefix: defaultKeyPrefix, ttl: ttl}
}

func (store *RedisStore) Get(ctx context.Context, key string) (string, bool, error) {
	value, err := store.client.Get(ctx, store.prefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("redis get %s: %w", key, err)
	}
	return value, true, nil
}

func (store *RedisStore) Set(ctx context.Context, key string, value string) error {
	if err := store.client.Set(ctx, store.prefix+key, value, store.ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

func (store *RedisStore) Ping(ctx context.Context) error {
	return store.client.Ping(ctx).Err()
}

func (store *RedisStore) Close() error {
	return store.client.Close()
}
