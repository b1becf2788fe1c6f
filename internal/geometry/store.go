// Package geometry хранит нарисованные пользователем объекты и их метаданные.
package geometry

import (
	"errors"
	"fmt"
	"iter"
	"slices"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/map-layout-service/internal/domain"
	"github.com/map-layout-service/internal/pkg/utils"
	"github.com/map-layout-service/internal/pkg/validator"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"go.uber.org/zap"
)

var (
	ErrInvalidFeature = errors.New("invalid feature")
	ErrDraftNotFound  = errors.New("draft not found")
	ErrDraftClosed    = errors.New("draft already closed")
)

// Store - упорядоченная коллекция зафиксированных объектов.
// В хранилище попадают только объекты с валидными метаданными.
type Store struct {
	mu       sync.RWMutex
	features []domain.Feature
	drafts   map[string]*Draft
	logger   *zap.Logger
}

func NewStore(logger *zap.Logger) *Store {
	return &Store{
		drafts: make(map[string]*Draft),
		logger: logger,
	}
}

// Commit добавляет объект в конец коллекции.
// Объект без непустого layerName или с невалидным цветом отклоняется.
func (s *Store) Commit(f domain.Feature) (domain.Feature, error) {
	geom, err := normalizeGeometry(f.Geometry)
	if err != nil {
		return domain.Feature{}, err
	}

	meta := domain.LayerMeta{LayerName: f.LayerName(), Color: f.Color()}
	if err := validator.Validate(&meta); err != nil {
		return domain.Feature{}, fmt.Errorf("%w: %v", ErrInvalidFeature, err)
	}
	color, _ := validator.NormalizeColor(meta.Color)

	props := f.Properties.Clone()
	if props == nil {
		props = geojson.Properties{}
	}
	props[domain.PropLayerName] = strings.TrimSpace(meta.LayerName)
	props[domain.PropColor] = color

	committed := domain.Feature{
		ID:         f.ID,
		Geometry:   geom,
		Properties: props,
	}
	if committed.ID == "" {
		committed.ID = uuid.NewString()
	}

	s.mu.Lock()
	s.features = append(s.features, committed)
	total := len(s.features)
	s.mu.Unlock()

	s.logger.Debug("Feature committed",
		zap.String("feature_id", committed.ID),
		zap.String("kind", string(committed.Kind())),
		zap.String("layer_name", committed.LayerName()),
		zap.Int("total", total))

	return cloneFeature(committed), nil
}

// All - перезапускаемый итератор по объектам в порядке добавления.
// Каждый проход видит состояние хранилища на момент начала прохода.
func (s *Store) All() iter.Seq[domain.Feature] {
	return func(yield func(domain.Feature) bool) {
		s.mu.RLock()
		items := slices.Clone(s.features)
		s.mu.RUnlock()

		for _, f := range items {
			if !yield(cloneFeature(f)) {
				return
			}
		}
	}
}

// ToCollection собирает все объекты в одну GeoJSON коллекцию
func (s *Store) ToCollection() *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for f := range s.All() {
		fc.Append(f.GeoJSON())
	}
	return fc
}

// Get ищет объект по идентификатору сессии
func (s *Store) Get(id string) (domain.Feature, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, f := range s.features {
		if f.ID == id {
			return cloneFeature(f), true
		}
	}
	return domain.Feature{}, false
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.features)
}

func cloneFeature(f domain.Feature) domain.Feature {
	return domain.Feature{
		ID:         f.ID,
		Geometry:   orb.Clone(f.Geometry),
		Properties: f.Properties.Clone(),
	}
}

// normalizeGeometry проверяет геометрию и замыкает кольца полигона
func normalizeGeometry(g orb.Geometry) (orb.Geometry, error) {
	switch geom := g.(type) {
	case orb.Point:
		if !validPoint(geom) {
			return nil, fmt.Errorf("%w: point out of range", ErrInvalidFeature)
		}
		return geom, nil

	case orb.LineString:
		if len(geom) < 2 {
			return nil, fmt.Errorf("%w: line needs at least 2 points", ErrInvalidFeature)
		}
		for _, p := range geom {
			if !validPoint(p) {
				return nil, fmt.Errorf("%w: line point out of range", ErrInvalidFeature)
			}
		}
		return orb.Clone(geom), nil

	case orb.Polygon:
		if len(geom) == 0 {
			return nil, fmt.Errorf("%w: polygon has no rings", ErrInvalidFeature)
		}
		out := make(orb.Polygon, 0, len(geom))
		for _, ring := range geom {
			r := slices.Clone(ring)
			if len(r) > 0 && !r.Closed() {
				r = append(r, r[0])
			}
			if len(r) < 4 {
				return nil, fmt.Errorf("%w: polygon ring needs at least 3 points", ErrInvalidFeature)
			}
			for _, p := range r {
				if !validPoint(p) {
					return nil, fmt.Errorf("%w: polygon point out of range", ErrInvalidFeature)
				}
			}
			out = append(out, r)
		}
		return out, nil

	case nil:
		return nil, fmt.Errorf("%w: missing geometry", ErrInvalidFeature)

	default:
		return nil, fmt.Errorf("%w: unsupported geometry %s", ErrInvalidFeature, g.GeoJSONType())
	}
}

func validPoint(p orb.Point) bool {
	return utils.ValidateCoordinates(p.Lat(), p.Lon())
}
