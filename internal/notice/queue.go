// Package notice копит сообщения для пользователя сессии.
package notice

import (
	"sync"
	"time"

	"go.uber.org/zap"
)

type Level string

const (
	LevelInfo  Level = "info"
	LevelError Level = "error"
)

type Notice struct {
	Level   Level     `json:"level"`
	Message string    `json:"message"`
	At      time.Time `json:"at"`
}

// Queue - ограниченная FIFO очередь; при переполнении вытесняется самое старое сообщение
type Queue struct {
	mu     sync.Mutex
	items  []Notice
	limit  int
	logger *zap.Logger
}

func NewQueue(limit int, logger *zap.Logger) *Queue {
	if limit <= 0 {
		limit = 50
	}
	return &Queue{limit: limit, logger: logger}
}

func (q *Queue) Info(msg string) {
	q.logger.Info("Notice", zap.String("message", msg))
	q.push(Notice{Level: LevelInfo, Message: msg, At: time.Now()})
}

func (q *Queue) Error(msg string) {
	q.logger.Warn("Error notice", zap.String("message", msg))
	q.push(Notice{Level: LevelError, Message: msg, At: time.Now()})
}

func (q *Queue) push(n Notice) {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.items = append(q.items, n)
	if over := len(q.items) - q.limit; over > 0 {
		q.items = q.items[over:]
	}
}

// Drain возвращает накопленные сообщения и очищает очередь
func (q *Queue) Drain() []Notice {
	q.mu.Lock()
	defer q.mu.Unlock()

	out := q.items
	q.items = nil
	if out == nil {
		out = []Notice{}
	}
	return out
}

func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}
