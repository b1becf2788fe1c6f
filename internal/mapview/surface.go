// Package mapview моделирует поверхность карты сессии: вид, подложку и
// слои-оверлеи, которые рисуют анализы.
package mapview

import (
	"errors"
	"math"
	"slices"
	"sync"

	"github.com/google/uuid"
	"github.com/map-layout-service/internal/domain"
	"github.com/map-layout-service/internal/pkg/utils"
	"go.uber.org/zap"
)

var (
	ErrInvalidCoordinates = errors.New("invalid coordinates")
	ErrInvalidZoom        = errors.New("invalid zoom")
	ErrUnknownBasemap     = errors.New("unknown basemap")
)

// Пределы масштаба, которые поддерживает виджет карты
const (
	MinZoom = 0
	MaxZoom = 22
)

// LayerKind - кому принадлежит слой на поверхности
type LayerKind string

const (
	LayerBuffer LayerKind = "buffer"
	LayerRoute  LayerKind = "route"
)

// LayerHandle - дескриптор слоя; удалить слой может только владелец дескриптора
type LayerHandle struct {
	ID   string
	Kind LayerKind
}

// Layer - слой-оверлей, отрисованный на карте
type Layer struct {
	ID      string         `json:"id"`
	Kind    LayerKind      `json:"kind"`
	Feature domain.Feature `json:"-"`
	Style   domain.Style   `json:"style"`
}

// Surface - поверхность отображения одной сессии
type Surface struct {
	mu     sync.RWMutex
	view   domain.View
	layers []Layer
	logger *zap.Logger
}

func NewSurface(logger *zap.Logger) *Surface {
	return &Surface{
		view: domain.View{
			Center:      domain.DefaultCenter,
			Zoom:        domain.DefaultZoom,
			ZoomPercent: 100,
			Basemap:     domain.Basemaps[domain.BasemapOSM],
		},
		logger: logger,
	}
}

// SetView задаёт центр и масштаб
func (s *Surface) SetView(center domain.LatLng, zoom float64) error {
	if !utils.ValidateCoordinates(center.Lat, center.Lng) {
		return ErrInvalidCoordinates
	}
	if !validZoom(zoom) {
		return ErrInvalidZoom
	}

	s.mu.Lock()
	s.view.Center = center
	s.view.Zoom = zoom
	s.mu.Unlock()
	return nil
}

func (s *Surface) SetZoom(zoom float64) error {
	if !validZoom(zoom) {
		return ErrInvalidZoom
	}

	s.mu.Lock()
	s.view.Zoom = zoom
	s.mu.Unlock()
	return nil
}

func (s *Surface) Center() domain.LatLng {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.view.Center
}

func (s *Surface) Zoom() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.view.Zoom
}

// View - копия текущего вида
func (s *Surface) View() domain.View {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v := s.view
	if v.BaseZoom != nil {
		base := *v.BaseZoom
		v.BaseZoom = &base
	}
	return v
}

// ChangeBasemap оставляет активной ровно одну подложку
func (s *Surface) ChangeBasemap(name string) (domain.Basemap, error) {
	bm, ok := domain.Basemaps[name]
	if !ok {
		return domain.Basemap{}, ErrUnknownBasemap
	}

	s.mu.Lock()
	s.view.Basemap = bm
	s.mu.Unlock()

	s.logger.Debug("Basemap changed", zap.String("basemap", name))
	return bm, nil
}

// ApplyZoomPercent масштабирует карту относительно масштаба,
// зафиксированного при первом вызове: zoom = base + log2(percent/100).
func (s *Surface) ApplyZoomPercent(percent float64) (float64, error) {
	if percent <= 0 || math.IsInf(percent, 0) || math.IsNaN(percent) {
		return 0, ErrInvalidZoom
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.view.BaseZoom == nil {
		base := s.view.Zoom
		s.view.BaseZoom = &base
	}

	zoom := *s.view.BaseZoom + math.Log2(percent/100)
	if !validZoom(zoom) {
		return 0, ErrInvalidZoom
	}

	s.view.Zoom = zoom
	s.view.ZoomPercent = percent
	return zoom, nil
}

// AddLayer рисует слой и возвращает дескриптор владельцу
func (s *Surface) AddLayer(kind LayerKind, f domain.Feature, style domain.Style) LayerHandle {
	h := LayerHandle{ID: uuid.NewString(), Kind: kind}

	s.mu.Lock()
	s.layers = append(s.layers, Layer{ID: h.ID, Kind: kind, Feature: f, Style: style})
	s.mu.Unlock()

	s.logger.Debug("Layer added", zap.String("layer_id", h.ID), zap.String("kind", string(kind)))
	return h
}

// RemoveLayer удаляет слой по дескриптору; неизвестный дескриптор - no-op
func (s *Surface) RemoveLayer(h LayerHandle) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := slices.IndexFunc(s.layers, func(l Layer) bool { return l.ID == h.ID })
	if idx < 0 {
		return false
	}
	s.layers = slices.Delete(s.layers, idx, idx+1)

	s.logger.Debug("Layer removed", zap.String("layer_id", h.ID), zap.String("kind", string(h.Kind)))
	return true
}

// Layers - копия списка слоёв в порядке отрисовки
func (s *Surface) Layers() []Layer {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.layers)
}

// CountLayers - число слоёв заданного вида
func (s *Surface) CountLayers(kind LayerKind) int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := 0
	for _, l := range s.layers {
		if l.Kind == kind {
			n++
		}
	}
	return n
}

func validZoom(z float64) bool {
	return z >= MinZoom && z <= MaxZoom && !math.IsNaN(z)
}
