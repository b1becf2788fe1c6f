package analysis

import (
	"sync"

	"github.com/map-layout-service/internal/domain"
	"github.com/map-layout-service/internal/mapview"
	"github.com/map-layout-service/internal/pkg/utils"
	"github.com/paulmach/orb"
	"go.uber.org/zap"
)

// BufferAnalysis - буфер вокруг маркера; на карте не больше одного результата
type BufferAnalysis struct {
	mu       sync.Mutex
	surface  Surface
	bufferer Bufferer
	handle   *mapview.LayerHandle
	result   *domain.Feature
	radiusM  float64
	logger   *zap.Logger
}

func NewBufferAnalysis(surface Surface, bufferer Bufferer, logger *zap.Logger) *BufferAnalysis {
	return &BufferAnalysis{
		surface:  surface,
		bufferer: bufferer,
		logger:   logger,
	}
}

// Run строит буфер и заменяет предыдущий результат
func (b *BufferAnalysis) Run(point domain.Feature, radiusM float64) (domain.Feature, error) {
	p, ok := point.Geometry.(orb.Point)
	if !ok {
		return domain.Feature{}, ErrNotAPoint
	}
	if !utils.ValidateRadius(radiusM) {
		return domain.Feature{}, ErrInvalidRadius
	}

	props := domain.StyleProperties(domain.BufferStyle)
	props["radius_m"] = radiusM
	result := domain.Feature{
		Geometry:   b.bufferer.Buffer(p, radiusM),
		Properties: props,
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	b.removeLocked()
	h := b.surface.AddLayer(mapview.LayerBuffer, result, domain.BufferStyle)
	b.handle = &h
	b.result = &result
	b.radiusM = radiusM

	b.logger.Info("Buffer created",
		zap.String("feature_id", point.ID),
		zap.Float64("radius_m", radiusM),
		zap.String("layer_id", h.ID))

	return result, nil
}

// Clear убирает результат с карты; безопасно без результата
func (b *BufferAnalysis) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.removeLocked()
}

func (b *BufferAnalysis) removeLocked() {
	if b.handle != nil {
		b.surface.RemoveLayer(*b.handle)
	}
	b.handle = nil
	b.result = nil
	b.radiusM = 0
}

func (b *BufferAnalysis) Visible() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.handle != nil
}

// Result - текущий полигон буфера
func (b *BufferAnalysis) Result() (domain.Feature, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.result == nil {
		return domain.Feature{}, false
	}
	return *b.result, true
}
