package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/Totarae/shortlink-demo/internal/storage"
)

// RedisSlot хранит значение слота под одним ключом Redis.
type RedisSlot struct {
	client *redis.Client
	key    string
}

// NewRedisSlot подключается к Redis по адресу addr.
func NewRedisSlot(addr, key string) *RedisSlot {
	return NewRedisSlotFromClient(redis.NewClient(&redis.Options{Addr: addr}), key)
}

// NewRedisSlotFromClient использует уже созданный клиент.
func NewRedisSlotFromClient(client *redis.Client, key string) *RedisSlot {
	return &RedisSlot{client: client, key: key}
}

func (r *RedisSlot) Read(ctx context.Context) ([]byte, error) {
	data, err := r.client.Get(ctx, r.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, storage.ErrSlotEmpty
		}
		return nil, fmt.Errorf("redis get %s: %w", r.key, err)
	}
	return data, nil
}

func (r *RedisSlot) Write(ctx context.Context, data []byte) error {
	if err := r.client.Set(ctx, r.key, data, 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", r.key, err)
	}
	return nil
}

func (r *RedisSlot) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *RedisSlot) Close() error {
	return r.client.Close()
}
