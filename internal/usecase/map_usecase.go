package usecase

import (
	"go.uber.org/zap"

	"github.com/map-layout-service/internal/domain"
	"github.com/map-layout-service/internal/pkg/errors"
	"github.com/map-layout-service/internal/session"
	"github.com/map-layout-service/internal/usecase/dto"
	"github.com/paulmach/orb/geojson"
)

// MapUseCase - вид карты, черновики и нарисованные объекты
type MapUseCase struct {
	manager *session.Manager
	logger  *zap.Logger
}

func NewMapUseCase(manager *session.Manager, logger *zap.Logger) *MapUseCase {
	return &MapUseCase{
		manager: manager,
		logger:  logger,
	}
}

// State - всё, что нужно клиенту для отрисовки карты
func (uc *MapUseCase) State(id string) (*dto.MapStateResponse, error) {
	s, err := uc.manager.Get(id)
	if err != nil {
		return nil, mapError(err)
	}

	return &dto.MapStateResponse{
		SessionID:      s.ID,
		View:           s.Surface.View(),
		Mode:           s.Controller.Mode().String(),
		DrawnItems:     s.Store.ToCollection(),
		Overlays:       dto.ConvertOverlays(s.Surface.Layers()),
		BufferVisible:  s.Buffer.Visible(),
		RouteVisible:   s.Route.Visible(),
		RouteInFlight:  s.Route.InFlight(),
		PendingNotices: s.Notices.Len(),
	}, nil
}

func (uc *MapUseCase) SetView(id string, req dto.SetViewRequest) (*domain.View, error) {
	s, err := uc.manager.Get(id)
	if err != nil {
		return nil, mapError(err)
	}
	if err := s.Surface.SetView(domain.LatLng{Lat: req.Lat, Lng: req.Lng}, req.Zoom); err != nil {
		return nil, mapError(err)
	}
	view := s.Surface.View()
	return &view, nil
}

func (uc *MapUseCase) ChangeBasemap(id string, req dto.BasemapRequest) (*domain.View, error) {
	s, err := uc.manager.Get(id)
	if err != nil {
		return nil, mapError(err)
	}
	if _, err := s.Surface.ChangeBasemap(req.Name); err != nil {
		return nil, mapError(err)
	}
	view := s.Surface.View()
	return &view, nil
}

func (uc *MapUseCase) ApplyZoomPercent(id string, req dto.ZoomPercentRequest) (*dto.ZoomResponse, error) {
	s, err := uc.manager.Get(id)
	if err != nil {
		return nil, mapError(err)
	}
	zoom, err := s.Surface.ApplyZoomPercent(req.Percent)
	if err != nil {
		return nil, mapError(err)
	}
	return &dto.ZoomResponse{Zoom: zoom}, nil
}

// OpenDraft - пользователь закончил рисовать; объект ещё не в хранилище
func (uc *MapUseCase) OpenDraft(id string, req dto.OpenDraftRequest) (*dto.DraftResponse, error) {
	s, err := uc.manager.Get(id)
	if err != nil {
		return nil, mapError(err)
	}
	if req.Geometry == nil {
		return nil, errors.ErrInvalidFeature
	}

	d, err := s.Store.OpenDraft(req.Geometry.Geometry())
	if err != nil {
		return nil, mapError(err)
	}

	return &dto.DraftResponse{
		ID:       d.ID,
		Geometry: geojson.NewGeometry(d.Geometry),
		Anchor:   d.Anchor,
		Defaults: d.Defaults,
	}, nil
}

// SaveDraft - сохранение формы создания: объект попадает в хранилище
func (uc *MapUseCase) SaveDraft(id, draftID string, req dto.SaveDraftRequest) (*geojson.Feature, error) {
	s, err := uc.manager.Get(id)
	if err != nil {
		return nil, mapError(err)
	}

	d, err := s.Store.Draft(draftID)
	if err != nil {
		return nil, mapError(err)
	}

	f, err := d.Save(domain.LayerMeta{LayerName: req.LayerName, Color: req.Color})
	if err != nil {
		return nil, mapError(err)
	}

	uc.logger.Info("Feature committed",
		zap.String("session_id", id),
		zap.String("feature_id", f.ID),
		zap.String("kind", string(f.Kind())))
	return f.GeoJSON(), nil
}

// DiscardDraft - форма закрыта без сохранения
func (uc *MapUseCase) DiscardDraft(id, draftID string) error {
	s, err := uc.manager.Get(id)
	if err != nil {
		return mapError(err)
	}
	return mapError(s.Store.DiscardDraft(draftID))
}

func (uc *MapUseCase) Features(id string) (*dto.FeaturesResponse, error) {
	s, err := uc.manager.Get(id)
	if err != nil {
		return nil, mapError(err)
	}
	fc := s.Store.ToCollection()
	return &dto.FeaturesResponse{Collection: fc, Total: len(fc.Features)}, nil
}

// Feature - один объект хранилища
func (uc *MapUseCase) Feature(id, featureID string) (*geojson.Feature, error) {
	s, err := uc.manager.Get(id)
	if err != nil {
		return nil, mapError(err)
	}
	f, ok := s.Store.Get(featureID)
	if !ok {
		return nil, errors.ErrFeatureNotFound
	}
	return f.GeoJSON(), nil
}
