package worker

import (
	"context"
)

// Worker - фоновый потребитель одного стрима
type Worker interface {
	// Start читает стрим до Stop или отмены ctx
	Start(ctx context.Context) error

	// Stop просит воркер завершиться; повторный вызов безопасен
	Stop() error

	Name() string

	// Stream - имя читаемого стрима, для логов
	Stream() string
}
