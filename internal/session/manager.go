package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/map-layout-service/internal/analysis"
	"github.com/map-layout-service/internal/domain/repository"
	"github.com/map-layout-service/internal/geometry"
	"github.com/map-layout-service/internal/location"
	"github.com/map-layout-service/internal/mapview"
	"github.com/map-layout-service/internal/mode"
	"github.com/map-layout-service/internal/notice"
	"github.com/map-layout-service/internal/pkg/logger"
	"go.uber.org/zap"
)

var ErrSessionNotFound = errors.New("session not found")

// Purger удаляет ключи сессии из key/value хранилища
type Purger interface {
	Purge(ctx context.Context, sessionID string) error
}

type Deps struct {
	Tracker     *location.Tracker
	Router      repository.DirectionsRepository
	Bufferer    analysis.Bufferer
	Purger      Purger
	TTL         time.Duration
	NoticeLimit int
}

type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	deps     Deps
	now      func() time.Time
	logger   *zap.Logger
}

func NewManager(deps Deps, logger *zap.Logger) *Manager {
	if deps.Bufferer == nil {
		deps.Bufferer = analysis.NewGeodesicBufferer(64)
	}
	return &Manager{
		sessions: make(map[string]*Session),
		deps:     deps,
		now:      time.Now,
		logger:   logger,
	}
}

// Create собирает новую сессию со всеми компонентами
func (m *Manager) Create(opts Options) *Session {
	id := uuid.NewString()
	log := logger.ForSession(m.logger, id)
	now := m.now()

	surface := mapview.NewSurface(log)
	notices := notice.NewQueue(m.deps.NoticeLimit, log)
	buffer := analysis.NewBufferAnalysis(surface, m.deps.Bufferer, log)

	var locator analysis.Locator
	if m.deps.Tracker != nil {
		locator = m.deps.Tracker
		if opts.Geolocation {
			m.deps.Tracker.Enable(id)
		}
	}
	route := analysis.NewRouteAnalysis(id, surface, locator, m.deps.Router, log)

	s := &Session{
		ID:          id,
		Geolocation: opts.Geolocation,
		CreatedAt:   now,
		Store:       geometry.NewStore(log),
		Surface:     surface,
		Controller:  mode.NewController(buffer, route, notices, log),
		Buffer:      buffer,
		Route:       route,
		Notices:     notices,
		lastAccess:  now,
	}

	m.mu.Lock()
	m.sessions[id] = s
	m.mu.Unlock()

	m.logger.Info("Session created",
		zap.String("session_id", id),
		zap.Bool("geolocation", opts.Geolocation),
		zap.Int("active_sessions", m.Len()))
	return s
}

// Get возвращает сессию и продлевает её жизнь
func (m *Manager) Get(id string) (*Session, error) {
	m.mu.RLock()
	s, ok := m.sessions[id]
	m.mu.RUnlock()

	if !ok {
		return nil, ErrSessionNotFound
	}
	s.touch(m.now())
	return s, nil
}

// Exists - проверка без продления
func (m *Manager) Exists(id string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.sessions[id]
	return ok
}

// Close завершает сессию: анализы снимаются, ожидание позиции прерывается,
// ключи хранилища удаляются.
func (m *Manager) Close(ctx context.Context, id string) error {
	m.mu.Lock()
	s, ok := m.sessions[id]
	delete(m.sessions, id)
	m.mu.Unlock()

	if !ok {
		return ErrSessionNotFound
	}
	return m.teardown(ctx, s)
}

func (m *Manager) teardown(ctx context.Context, s *Session) error {
	s.teardown()
	if m.deps.Tracker != nil {
		m.deps.Tracker.Forget(s.ID)
	}

	var err error
	if m.deps.Purger != nil {
		err = m.deps.Purger.Purge(ctx, s.ID)
		if err != nil {
			m.logger.Warn("Failed to purge session keys",
				zap.String("session_id", s.ID), zap.Error(err))
		}
	}

	m.logger.Info("Session closed", zap.String("session_id", s.ID))
	return err
}

// Sweep закрывает сессии, простаивающие дольше TTL; возвращает их число
func (m *Manager) Sweep(ctx context.Context, now time.Time) int {
	if m.deps.TTL <= 0 {
		return 0
	}

	var expired []*Session
	m.mu.Lock()
	for id, s := range m.sessions {
		if now.Sub(s.LastAccess()) > m.deps.TTL {
			expired = append(expired, s)
			delete(m.sessions, id)
		}
	}
	m.mu.Unlock()

	for _, s := range expired {
		_ = m.teardown(ctx, s)
	}
	if len(expired) > 0 {
		m.logger.Info("Expired sessions swept", zap.Int("count", len(expired)))
	}
	return len(expired)
}

// CloseAll - завершение всех сессий при остановке сервиса
func (m *Manager) CloseAll(ctx context.Context) {
	m.mu.Lock()
	all := make([]*Session, 0, len(m.sessions))
	for id, s := range m.sessions {
		all = append(all, s)
		delete(m.sessions, id)
	}
	m.mu.Unlock()

	for _, s := range all {
		_ = m.teardown(ctx, s)
	}
}

func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// Run периодически вызывает Sweep до отмены контекста
func (m *Manager) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.Sweep(ctx, m.now())
		}
	}
}
