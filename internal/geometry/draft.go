package geometry

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/map-layout-service/internal/domain"
	"github.com/map-layout-service/internal/pkg/validator"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"go.uber.org/zap"
)

// Draft - нарисованная геометрия, ожидающая сохранения формы создания.
// Черновик никогда не находится в хранилище.
type Draft struct {
	ID       string           `json:"id"`
	Geometry orb.Geometry     `json:"-"`
	Anchor   domain.LatLng    `json:"anchor"`
	Defaults domain.LayerMeta `json:"defaults"`

	store  *Store
	mu     sync.Mutex
	closed bool
}

// OpenDraft регистрирует новую геометрию и открывает для неё форму
func (s *Store) OpenDraft(g orb.Geometry) (*Draft, error) {
	geom, err := normalizeGeometry(g)
	if err != nil {
		return nil, err
	}

	d := &Draft{
		ID:       uuid.NewString(),
		Geometry: geom,
		Anchor:   popupAnchor(geom),
		Defaults: domain.DefaultLayerMeta(),
		store:    s,
	}

	s.mu.Lock()
	s.drafts[d.ID] = d
	s.mu.Unlock()

	s.logger.Debug("Draft opened",
		zap.String("draft_id", d.ID),
		zap.String("kind", string(domain.KindOf(geom))))

	return d, nil
}

// Draft возвращает открытый черновик
func (s *Store) Draft(id string) (*Draft, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	d, ok := s.drafts[id]
	if !ok {
		return nil, ErrDraftNotFound
	}
	return d, nil
}

// DiscardDraft закрывает форму без сохранения
func (s *Store) DiscardDraft(id string) error {
	d, err := s.Draft(id)
	if err != nil {
		return err
	}

	d.mu.Lock()
	d.closed = true
	d.mu.Unlock()

	s.forgetDraft(id)
	return nil
}

func (s *Store) forgetDraft(id string) {
	s.mu.Lock()
	delete(s.drafts, id)
	s.mu.Unlock()
}

// Save проверяет метаданные формы и фиксирует объект в хранилище.
// При ошибке валидации черновик остаётся открытым.
func (d *Draft) Save(meta domain.LayerMeta) (domain.Feature, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return domain.Feature{}, ErrDraftClosed
	}

	if err := validator.Validate(&meta); err != nil {
		return domain.Feature{}, fmt.Errorf("%w: %v", ErrInvalidFeature, err)
	}

	f, err := d.store.Commit(domain.Feature{
		Geometry: d.Geometry,
		Properties: geojson.Properties{
			domain.PropLayerName: meta.LayerName,
			domain.PropColor:     meta.Color,
		},
	})
	if err != nil {
		return domain.Feature{}, err
	}

	d.closed = true
	d.store.forgetDraft(d.ID)
	return f, nil
}

// popupAnchor - точка для маркера, центр границ для линий и полигонов
func popupAnchor(g orb.Geometry) domain.LatLng {
	if p, ok := g.(orb.Point); ok {
		return domain.LatLngFromPoint(p)
	}
	return domain.LatLngFromPoint(g.Bound().Center())
}
