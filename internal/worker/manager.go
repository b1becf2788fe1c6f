package worker

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"
)

var (
	ErrNoWorkers      = errors.New("no workers registered")
	ErrAlreadyStarted = errors.New("workers already started")
)

// WorkerManager запускает воркеры стримов рядом с HTTP сервером
// и останавливает их при его завершении
type WorkerManager struct {
	workers []Worker
	logger  *zap.Logger
	wg      sync.WaitGroup
	mu      sync.Mutex
	started bool
}

func NewWorkerManager(logger *zap.Logger) *WorkerManager {
	return &WorkerManager{
		workers: make([]Worker, 0),
		logger:  logger,
	}
}

// Register добавляет воркер; после Start новые воркеры не запускаются
func (m *WorkerManager) Register(w Worker) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.workers = append(m.workers, w)
	m.logger.Info("Worker registered",
		zap.String("name", w.Name()),
		zap.String("stream", w.Stream()))
}

// Start запускает каждый воркер в своей горутине.
// Ошибка воркера логируется и не останавливает остальных.
func (m *WorkerManager) Start(ctx context.Context) error {
	m.mu.Lock()
	if m.started {
		m.mu.Unlock()
		return ErrAlreadyStarted
	}
	if len(m.workers) == 0 {
		m.mu.Unlock()
		return ErrNoWorkers
	}
	m.started = true
	workers := append([]Worker(nil), m.workers...)
	m.mu.Unlock()

	m.logger.Info("Starting workers", zap.Int("count", len(workers)))

	for _, w := range workers {
		m.wg.Add(1)
		go func(w Worker) {
			defer m.wg.Done()

			if err := w.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
				m.logger.Error("Worker failed",
					zap.String("name", w.Name()),
					zap.String("stream", w.Stream()),
					zap.Error(err))
				return
			}
			m.logger.Info("Worker finished", zap.String("name", w.Name()))
		}(w)
	}

	return nil
}

// Stop сигнализирует всем воркерам и ждёт их завершения до дедлайна ctx
func (m *WorkerManager) Stop(ctx context.Context) error {
	m.mu.Lock()
	workers := append([]Worker(nil), m.workers...)
	m.mu.Unlock()

	m.logger.Info("Stopping workers", zap.Int("count", len(workers)))

	for _, w := range workers {
		if err := w.Stop(); err != nil {
			m.logger.Error("Failed to stop worker",
				zap.String("name", w.Name()),
				zap.Error(err))
		}
	}

	done := make(chan struct{})
	go func() {
		m.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		m.logger.Info("All workers stopped gracefully")
		return nil
	case <-ctx.Done():
		m.logger.Warn("Workers shutdown timed out, pending messages stay in the stream",
			zap.Error(ctx.Err()))
		return fmt.Errorf("workers shutdown: %w", ctx.Err())
	}
}
