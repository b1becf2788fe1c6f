package worker

import (
	"sync"
	"sync/atomic"

	"go.uber.org/zap"
)

// BaseWorker - общая часть воркеров стримов: имя, стрим, группа и сигнал остановки
type BaseWorker struct {
	name          string
	stream        string
	consumerGroup string
	logger        *zap.Logger

	stopChan chan struct{}
	stopOnce sync.Once
	stopped  atomic.Bool
}

func NewBaseWorker(name, stream, consumerGroup string, logger *zap.Logger) *BaseWorker {
	return &BaseWorker{
		name:          name,
		stream:        stream,
		consumerGroup: consumerGroup,
		logger: logger.With(
			zap.String("worker", name),
			zap.String("stream", stream),
		),
		stopChan: make(chan struct{}),
	}
}

func (w *BaseWorker) Name() string {
	return w.name
}

// Stop закрывает канал остановки один раз
func (w *BaseWorker) Stop() error {
	w.stopOnce.Do(func() {
		w.logger.Info("Stopping worker")
		w.stopped.Store(true)
		close(w.stopChan)
	})
	return nil
}

func (w *BaseWorker) IsStopped() bool {
	return w.stopped.Load()
}

// StopChan закрывается при Stop
func (w *BaseWorker) StopChan() <-chan struct{} {
	return w.stopChan
}

func (w *BaseWorker) Stream() string {
	return w.stream
}

func (w *BaseWorker) ConsumerGroup() string {
	return w.consumerGroup
}

// Logger уже содержит поля worker и stream
func (w *BaseWorker) Logger() *zap.Logger {
	return w.logger
}
