package repository

import (
	"context"
	"time"
)

// KVRepository - сессионное key/value хранилище (аналог sessionStorage вкладки)
type KVRepository interface {
	// Get возвращает значение по ключу, nil при отсутствии ключа
	Get(ctx context.Context, key string) ([]byte, error)

	// Set сохраняет значение с TTL
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete удаляет ключи
	Delete(ctx context.Context, keys ...string) error

	// Exists проверяет существование ключа
	Exists(ctx context.Context, key string) (bool, error)
}
