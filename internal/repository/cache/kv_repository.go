package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/map-layout-service/internal/domain/repository"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type kvRepository struct {
	client *redis.Client
	logger *zap.Logger
}

func NewKVRepository(redis *Redis) repository.KVRepository {
	return &kvRepository{
		client: redis.Client(),
		logger: redis.logger,
	}
}

func (r *kvRepository) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil // Key miss
	}
	if err != nil {
		r.logger.Error("Failed to get session key", zap.String("key", key), zap.Error(err))
		return nil, fmt.Errorf("kv get error: %w", err)
	}

	r.logger.Debug("Session key hit", zap.String("key", key))
	return val, nil
}

func (r *kvRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	err := r.client.Set(ctx, key, value, ttl).Err()
	if err != nil {
		r.logger.Error("Failed to set session key", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("kv set error: %w", err)
	}

	r.logger.Debug("Session key set", zap.String("key", key), zap.Duration("ttl", ttl))
	return nil
}

func (r *kvRepository) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	err := r.client.Del(ctx, keys...).Err()
	if err != nil {
		r.logger.Error("Failed to delete session keys", zap.Strings("keys", keys), zap.Error(err))
		return fmt.Errorf("kv delete error: %w", err)
	}

	r.logger.Debug("Session keys deleted", zap.Strings("keys", keys))
	return nil
}

func (r *kvRepository) Exists(ctx context.Context, key string) (bool, error) {
	val, err := r.client.Exists(ctx, key).Result()
	if err != nil {
		r.logger.Error("Failed to check session key", zap.String("key", key), zap.Error(err))
		return false, fmt.Errorf("kv exists error: %w", err)
	}

	return val > 0, nil
}
