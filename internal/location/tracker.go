// Package location отвечает на запросы текущей позиции устройства сессии.
// Позиции приходят от браузера (HTTP) или из стрима позиций.
package location

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/map-layout-service/internal/domain"
	"github.com/map-layout-service/internal/pkg/utils"
	"go.uber.org/zap"
)

var (
	ErrLocationUnavailable = errors.New("geolocation capability unavailable")
	ErrLocationFailed      = errors.New("location query failed")
	ErrLocationTimeout     = fmt.Errorf("%w: timed out", ErrLocationFailed)
	ErrInvalidPosition     = errors.New("invalid position")
)

type device struct {
	last       *domain.Position
	receivedAt time.Time
	waiters    []chan domain.Position
}

// Tracker хранит последнюю позицию каждой сессии и будит ожидающие запросы
type Tracker struct {
	mu      sync.Mutex
	devices map[string]*device
	timeout time.Duration
	maxAge  time.Duration
	now     func() time.Time
	logger  *zap.Logger
}

func NewTracker(timeout, maxAge time.Duration, logger *zap.Logger) *Tracker {
	return &Tracker{
		devices: make(map[string]*device),
		timeout: timeout,
		maxAge:  maxAge,
		now:     time.Now,
		logger:  logger,
	}
}

// Enable объявляет, что устройство сессии умеет отдавать геолокацию
func (t *Tracker) Enable(sessionID string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, ok := t.devices[sessionID]; !ok {
		t.devices[sessionID] = &device{}
	}
}

func (t *Tracker) Enabled(sessionID string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	_, ok := t.devices[sessionID]
	return ok
}

// Report принимает позицию устройства
func (t *Tracker) Report(sessionID string, pos domain.Position) error {
	if !utils.ValidateCoordinates(pos.Lat, pos.Lng) {
		return ErrInvalidPosition
	}

	t.mu.Lock()
	d, ok := t.devices[sessionID]
	if !ok {
		t.mu.Unlock()
		return ErrLocationUnavailable
	}

	now := t.now()
	if pos.RecordedAt.IsZero() {
		pos.RecordedAt = now
	}
	d.last = &pos
	d.receivedAt = now
	waiters := d.waiters
	d.waiters = nil
	t.mu.Unlock()

	for _, ch := range waiters {
		ch <- pos
	}

	t.logger.Debug("Position reported",
		zap.String("session_id", sessionID),
		zap.Float64("lat", pos.Lat),
		zap.Float64("lng", pos.Lng),
		zap.Int("waiters", len(waiters)))
	return nil
}

// Locate возвращает достаточно свежую позицию или ждёт следующую
// не дольше timeout.
func (t *Tracker) Locate(ctx context.Context, sessionID string) (domain.LatLng, error) {
	t.mu.Lock()
	d, ok := t.devices[sessionID]
	if !ok {
		t.mu.Unlock()
		return domain.LatLng{}, ErrLocationUnavailable
	}

	if d.last != nil && t.now().Sub(d.receivedAt) <= t.maxAge {
		pos := *d.last
		t.mu.Unlock()
		return pos.LatLng, nil
	}

	ch := make(chan domain.Position, 1)
	d.waiters = append(d.waiters, ch)
	t.mu.Unlock()

	timer := time.NewTimer(t.timeout)
	defer timer.Stop()

	select {
	case pos, ok := <-ch:
		if !ok {
			return domain.LatLng{}, ErrLocationFailed
		}
		return pos.LatLng, nil
	case <-timer.C:
		t.dropWaiter(sessionID, ch)
		return domain.LatLng{}, ErrLocationTimeout
	case <-ctx.Done():
		t.dropWaiter(sessionID, ch)
		return domain.LatLng{}, fmt.Errorf("%w: %v", ErrLocationFailed, ctx.Err())
	}
}

// Last - последняя известная позиция
func (t *Tracker) Last(sessionID string) (domain.Position, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	d, ok := t.devices[sessionID]
	if !ok || d.last == nil {
		return domain.Position{}, false
	}
	return *d.last, true
}

// Forget снимает сессию; ожидающие запросы завершаются ошибкой
func (t *Tracker) Forget(sessionID string) {
	t.mu.Lock()
	d, ok := t.devices[sessionID]
	delete(t.devices, sessionID)
	t.mu.Unlock()

	if !ok {
		return
	}
	for _, ch := range d.waiters {
		close(ch)
	}
}

func (t *Tracker) dropWaiter(sessionID string, ch chan domain.Position) {
	t.mu.Lock()
	defer t.mu.Unlock()

	d, ok := t.devices[sessionID]
	if !ok {
		return
	}
	d.waiters = slices.DeleteFunc(d.waiters, func(c chan domain.Position) bool { return c == ch })
}
