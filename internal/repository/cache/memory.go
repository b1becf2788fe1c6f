package cache

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/map-layout-service/internal/domain/repository"
	"go.uber.org/zap"
)

type memoryEntry struct {
	value     []byte
	expiresAt time.Time
}

// memoryRepository - хранилище в памяти процесса, когда Redis выключен
type memoryRepository struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	now     func() time.Time
	logger  *zap.Logger
}

func NewMemoryRepository(logger *zap.Logger) repository.KVRepository {
	return newMemoryRepository(time.Now, logger)
}

func newMemoryRepository(now func() time.Time, logger *zap.Logger) *memoryRepository {
	return &memoryRepository{
		entries: make(map[string]memoryEntry),
		now:     now,
		logger:  logger,
	}
}

func (r *memoryRepository) Get(_ context.Context, key string) ([]byte, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.lookupLocked(key)
	if !ok {
		return nil, nil
	}
	return slices.Clone(e.value), nil
}

func (r *memoryRepository) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	e := memoryEntry{value: slices.Clone(value)}
	if ttl > 0 {
		e.expiresAt = r.now().Add(ttl)
	}
	r.entries[key] = e

	r.logger.Debug("Session key set", zap.String("key", key), zap.Duration("ttl", ttl))
	return nil
}

func (r *memoryRepository) Delete(_ context.Context, keys ...string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, k := range keys {
		delete(r.entries, k)
	}
	return nil
}

func (r *memoryRepository) Exists(_ context.Context, key string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.lookupLocked(key)
	return ok, nil
}

// lookupLocked удаляет просроченную запись при обращении
func (r *memoryRepository) lookupLocked(key string) (memoryEntry, bool) {
	e, ok := r.entries[key]
	if !ok {
		return memoryEntry{}, false
	}
	if !e.expiresAt.IsZero() && !r.now().Before(e.expiresAt) {
		delete(r.entries, key)
		return memoryEntry{}, false
	}
	return e, true
}
