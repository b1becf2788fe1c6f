// Package session - явный контекст одной карты: хранилище объектов,
// вид карты, режим взаимодействия, анализы и уведомления.
package session

import (
	"sync"
	"time"

	"github.com/map-layout-service/internal/analysis"
	"github.com/map-layout-service/internal/geometry"
	"github.com/map-layout-service/internal/mapview"
	"github.com/map-layout-service/internal/mode"
	"github.com/map-layout-service/internal/notice"
)

type Options struct {
	// Geolocation - устройство сессии умеет отдавать позицию
	Geolocation bool
}

type Session struct {
	ID          string
	Geolocation bool
	CreatedAt   time.Time

	Store      *geometry.Store
	Surface    *mapview.Surface
	Controller *mode.Controller
	Buffer     *analysis.BufferAnalysis
	Route      *analysis.RouteAnalysis
	Notices    *notice.Queue

	mu         sync.Mutex
	lastAccess time.Time
}

func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if now.After(s.lastAccess) {
		s.lastAccess = now
	}
}

func (s *Session) LastAccess() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastAccess
}

// teardown снимает оба анализа с карты и сбрасывает режим
func (s *Session) teardown() {
	s.Buffer.Clear()
	s.Route.Clear()
	s.Controller.Disarm()
}
