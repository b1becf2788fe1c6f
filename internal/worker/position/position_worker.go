// Package position переносит позиции устройств из Redis Stream в трекер сессий.
package position

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/map-layout-service/internal/domain"
	"github.com/map-layout-service/internal/domain/repository"
	"github.com/map-layout-service/internal/location"
	"github.com/map-layout-service/internal/worker"
	"go.uber.org/zap"
)

// Sink - получатель позиций (location.Tracker)
type Sink interface {
	Report(sessionID string, pos domain.Position) error
}

// Sessions - реестр открытых сессий (session.Manager)
type Sessions interface {
	Exists(id string) bool
}

// Worker читает PositionEvent из стрима и передаёт их в Sink
type Worker struct {
	*worker.BaseWorker
	streamRepo   repository.StreamRepository
	sessions     Sessions
	sink         Sink
	consumerName string
}

func NewWorker(
	streamRepo repository.StreamRepository,
	sessions Sessions,
	sink Sink,
	stream string,
	consumerGroup string,
	logger *zap.Logger,
) *Worker {
	hostname, _ := os.Hostname()

	return &Worker{
		BaseWorker:   worker.NewBaseWorker("device-position", stream, consumerGroup, logger),
		streamRepo:   streamRepo,
		sessions:     sessions,
		sink:         sink,
		consumerName: fmt.Sprintf("%s-%d", hostname, os.Getpid()),
	}
}

// Start запускает воркер
func (w *Worker) Start(ctx context.Context) error {
	logger := w.Logger()
	logger.Info("Starting position worker",
		zap.String("consumer_group", w.ConsumerGroup()),
		zap.String("consumer_name", w.consumerName))

	if err := w.streamRepo.CreateConsumerGroup(ctx, w.Stream(), w.ConsumerGroup()); err != nil {
		return fmt.Errorf("failed to create consumer group: %w", err)
	}

	// чтение прекращается по Stop так же, как по отмене ctx
	consumeCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	msgChan, err := w.streamRepo.ConsumeStream(consumeCtx, w.Stream(), w.ConsumerGroup(), w.consumerName)
	if err != nil {
		return fmt.Errorf("failed to consume stream: %w", err)
	}

	for {
		select {
		case <-w.StopChan():
			logger.Info("Worker stopped")
			return nil

		case <-ctx.Done():
			logger.Info("Context cancelled")
			return ctx.Err()

		case msg, ok := <-msgChan:
			if !ok {
				if ctx.Err() != nil || w.IsStopped() {
					return nil
				}
				return errors.New("message channel closed")
			}

			if err := w.processMessage(msg); err != nil {
				logger.Error("Failed to process message",
					zap.String("message_id", msg.ID),
					zap.Error(err))
				continue
			}

			if err := w.streamRepo.AckMessage(ctx, w.Stream(), w.ConsumerGroup(), msg.ID); err != nil {
				logger.Error("Failed to acknowledge message",
					zap.String("message_id", msg.ID),
					zap.Error(err))
			}
		}
	}
}

// processMessage передаёт позицию в трекер.
// Ошибка возвращается только для сбоев, после которых сообщение стоит перечитать;
// битые события и позиции закрытых сессий подтверждаются и пропускаются.
func (w *Worker) processMessage(msg domain.StreamMessage) error {
	logger := w.Logger()

	var event domain.PositionEvent
	if err := json.Unmarshal([]byte(msg.Data), &event); err != nil {
		logger.Warn("Skipping malformed position event",
			zap.String("message_id", msg.ID),
			zap.String("raw_data", msg.Data),
			zap.Error(err))
		return nil
	}
	if event.SessionID == "" {
		logger.Warn("Skipping position event without session",
			zap.String("message_id", msg.ID))
		return nil
	}
	if !w.sessions.Exists(event.SessionID) {
		logger.Debug("Skipping position for closed session",
			zap.String("message_id", msg.ID),
			zap.String("session_id", event.SessionID))
		return nil
	}

	err := w.sink.Report(event.SessionID, domain.Position{
		LatLng:     domain.LatLng{Lat: event.Lat, Lng: event.Lng},
		Accuracy:   event.Accuracy,
		RecordedAt: event.RecordedAt,
	})
	switch {
	case err == nil:
		logger.Debug("Position applied",
			zap.String("message_id", msg.ID),
			zap.String("session_id", event.SessionID))
		return nil
	case errors.Is(err, location.ErrInvalidPosition), errors.Is(err, location.ErrLocationUnavailable):
		logger.Warn("Position rejected",
			zap.String("message_id", msg.ID),
			zap.String("session_id", event.SessionID),
			zap.Error(err))
		return nil
	default:
		return err
	}
}
