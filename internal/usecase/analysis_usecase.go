package usecase

import (
	"context"

	"go.uber.org/zap"

	"github.com/map-layout-service/internal/domain"
	"github.com/map-layout-service/internal/location"
	"github.com/map-layout-service/internal/mode"
	"github.com/map-layout-service/internal/pkg/errors"
	"github.com/map-layout-service/internal/session"
	"github.com/map-layout-service/internal/usecase/dto"
)

// AnalysisUseCase - режимы взаимодействия, клики по маркерам, буфер и маршрут
type AnalysisUseCase struct {
	manager *session.Manager
	tracker *location.Tracker
	logger  *zap.Logger
}

func NewAnalysisUseCase(manager *session.Manager, tracker *location.Tracker, logger *zap.Logger) *AnalysisUseCase {
	return &AnalysisUseCase{
		manager: manager,
		tracker: tracker,
		logger:  logger,
	}
}

func (uc *AnalysisUseCase) ArmBuffer(id string) (*dto.ModeResponse, error) {
	s, err := uc.manager.Get(id)
	if err != nil {
		return nil, mapError(err)
	}
	s.Controller.ArmBuffer()
	return &dto.ModeResponse{Mode: s.Controller.Mode().String()}, nil
}

func (uc *AnalysisUseCase) ArmRoute(id string) (*dto.ModeResponse, error) {
	s, err := uc.manager.Get(id)
	if err != nil {
		return nil, mapError(err)
	}
	s.Controller.ArmRoute()
	return &dto.ModeResponse{Mode: s.Controller.Mode().String()}, nil
}

func (uc *AnalysisUseCase) Disarm(id string) (*dto.ModeResponse, error) {
	s, err := uc.manager.Get(id)
	if err != nil {
		return nil, mapError(err)
	}
	s.Controller.Disarm()
	return &dto.ModeResponse{Mode: s.Controller.Mode().String()}, nil
}

// Click - клик по объекту хранилища. Маршрут может ждать позицию устройства
// до таймаута локатора.
func (uc *AnalysisUseCase) Click(ctx context.Context, id, featureID string, req dto.ClickRequest) (*dto.ClickResponse, error) {
	s, err := uc.manager.Get(id)
	if err != nil {
		return nil, mapError(err)
	}

	f, ok := s.Store.Get(featureID)
	if !ok {
		return nil, errors.ErrFeatureNotFound
	}

	prompt := mode.RadiusFunc(func() (string, bool) {
		if req.Radius == nil {
			return "", false
		}
		return string(*req.Radius), true
	})

	res, err := s.Controller.OnFeatureClicked(ctx, f, prompt)
	if err != nil {
		uc.logger.Warn("Analysis failed",
			zap.String("session_id", id),
			zap.String("feature_id", featureID),
			zap.Error(err))
		return nil, mapError(err)
	}

	resp := &dto.ClickResponse{
		Outcome: string(res.Outcome),
		Mode:    s.Controller.Mode().String(),
	}
	if res.Buffer != nil {
		resp.Buffer = res.Buffer.GeoJSON()
	}
	if res.Route != nil {
		resp.Route = dto.ConvertRoute(*res.Route)
	}
	return resp, nil
}

func (uc *AnalysisUseCase) ClearBuffer(id string) error {
	s, err := uc.manager.Get(id)
	if err != nil {
		return mapError(err)
	}
	s.Buffer.Clear()
	return nil
}

func (uc *AnalysisUseCase) ClearRoute(id string) error {
	s, err := uc.manager.Get(id)
	if err != nil {
		return mapError(err)
	}
	s.Route.Clear()
	return nil
}

// ReportPosition - позиция устройства сессии от клиента
func (uc *AnalysisUseCase) ReportPosition(id string, req dto.PositionRequest) error {
	if _, err := uc.manager.Get(id); err != nil {
		return mapError(err)
	}

	pos := domain.Position{
		LatLng:   domain.LatLng{Lat: req.Lat, Lng: req.Lng},
		Accuracy: req.Accuracy,
	}
	if req.RecordedAt != nil {
		pos.RecordedAt = *req.RecordedAt
	}

	return mapError(uc.tracker.Report(id, pos))
}

// Position - последняя известная позиция устройства; nil, пока отчётов не было
func (uc *AnalysisUseCase) Position(id string) (*domain.Position, error) {
	if _, err := uc.manager.Get(id); err != nil {
		return nil, mapError(err)
	}
	pos, ok := uc.tracker.Last(id)
	if !ok {
		return nil, nil
	}
	return &pos, nil
}

// Notices - накопленные уведомления; очередь очищается
func (uc *AnalysisUseCase) Notices(id string) (*dto.NoticesResponse, error) {
	s, err := uc.manager.Get(id)
	if err != nil {
		return nil, mapError(err)
	}
	return &dto.NoticesResponse{Notices: s.Notices.Drain()}, nil
}
