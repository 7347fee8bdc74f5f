package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alimikegami/pos-microservices/storefront-service/internal/domain"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

type RedisCartRepositoryImpl struct {
	client *redis.Client
	ttl    time.Duration
}

// CreateRedisCartRepository stores each cart as a JSON string under its key. A ttl of 0
// keeps records until they are cleared.
func CreateRedisCartRepository(client *redis.Client, ttl time.Duration) CartRepository {
	return &RedisCartRepositoryImpl{client: client, ttl: ttl}
}

func (r *RedisCartRepositoryImpl) GetCart(ctx context.Context, key string) (items []domain.CartItem, found bool, err error) {
	data, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		log.Error().Err(err).Str("component", "RedisGetCart").Msg("")
		return nil, false, fmt.Errorf("redis get %s: %w", key, err)
	}

	items, err = decodeCartRecord(data)
	if err != nil {
		return nil, false, err
	}
	return items, true, nil
}

func (r *RedisCartRepositoryImpl) SaveCart(ctx context.Context, key string, items []domain.CartItem) (err error) {
	data, err := encodeCartRecord(items)
	if err != nil {
		return
	}

	if err = r.client.Set(ctx, key, data, r.ttl).Err(); err != nil {
		log.Error().Err(err).Str("component", "RedisSaveCart").Msg("")
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

func (r *RedisCartRepositoryImpl) DeleteCart(ctx context.Context, key string) (err error) {
	if err = r.client.Del(ctx, key).Err(); err != nil {
		log.Error().Err(err).Str("component", "RedisDeleteCart").Msg("")
		return fmt.Errorf("redis del %s: %w", key, err)
	}
	return nil
}

// Close is a no-op: the client is shared with the catalog cache and closed by the app.
func (r *RedisCartRepositoryImpl) Close() error {
	return nil
}
