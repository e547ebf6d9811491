package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"homework-bot/internal/domain"
)

// RedisCache реализует domain.Cache через Redis.
type RedisCache struct {
	client *redis.Client
	prefix string
}

// NewRedis создаёт кэш. Ключи хранятся с префиксом prefix.
func NewRedis(client *redis.Client, prefix string) *RedisCache {
	return &RedisCache{client: client, prefix: prefix}
}

// Once выполняет функцию, если ключ ещё не задан. При ttl <= 0 функция выполняется всегда.
func (c *RedisCache) Once(key string, ttl time.Duration, fn func() error) error {
	if ttl <= 0 {
		return fn()
	}
	ctx := context.Background()
	ok, err := c.client.SetNX(ctx, c.prefix+key, "1", ttl).Result()
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}
	if err := fn(); err != nil {
		_ = c.client.Del(ctx, c.prefix+key).Err()
		return err
	}
	return nil
}

var _ domain.Cache = (*RedisCache)(nil)
