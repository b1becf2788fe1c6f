package repository

import (
	"context"

	"github.com/map-layout-service/internal/domain"
)

// StreamRepository - очередь событий на Redis Streams (поток позиций устройств)
type StreamRepository interface {
	// CreateConsumerGroup создаёт группу и сам стрим; существующая группа не ошибка
	CreateConsumerGroup(ctx context.Context, stream, group string) error

	// ConsumeStream отдаёт новые сообщения группы, пока ctx не отменён.
	// Канал закрывается при остановке чтения.
	ConsumeStream(ctx context.Context, stream, group, consumer string) (<-chan domain.StreamMessage, error)

	// AckMessage убирает сообщение из списка ожидающих подтверждения
	AckMessage(ctx context.Context, stream, group, messageID string) error

	// PublishToStream сериализует data в JSON и кладёт в поле data
	PublishToStream(ctx context.Context, stream string, data interface{}) error
}
