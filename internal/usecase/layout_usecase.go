package usecase

import (
	"context"

	"go.uber.org/zap"

	"github.com/map-layout-service/internal/domain"
	"github.com/map-layout-service/internal/layout"
	"github.com/map-layout-service/internal/pkg/errors"
	"github.com/map-layout-service/internal/session"
	"github.com/map-layout-service/internal/usecase/dto"
)

// MsgLayoutInputSaved - подтверждение сохранения формы макета
const MsgLayoutInputSaved = "Input disimpan"

// LayoutUseCase - метаданные макета и экспорт снимка
type LayoutUseCase struct {
	manager  *session.Manager
	exporter *layout.Exporter
	logger   *zap.Logger
}

func NewLayoutUseCase(manager *session.Manager, exporter *layout.Exporter, logger *zap.Logger) *LayoutUseCase {
	return &LayoutUseCase{
		manager:  manager,
		exporter: exporter,
		logger:   logger,
	}
}

func (uc *LayoutUseCase) SaveMeta(ctx context.Context, id string, req dto.LayoutMetaRequest) error {
	s, err := uc.manager.Get(id)
	if err != nil {
		return mapError(err)
	}

	meta := domain.LayoutMeta{
		LayoutTitle:       req.LayoutTitle,
		DigitasiLayerName: req.DigitasiLayerName,
	}
	if err := uc.exporter.SaveMeta(ctx, id, meta); err != nil {
		uc.logger.Error("Failed to save layout meta", zap.String("session_id", id), zap.Error(err))
		return errors.ErrStorageError
	}

	s.Notices.Info(MsgLayoutInputSaved)
	return nil
}

func (uc *LayoutUseCase) Export(ctx context.Context, id string) (*dto.ExportResponse, error) {
	s, err := uc.manager.Get(id)
	if err != nil {
		return nil, mapError(err)
	}

	res, err := uc.exporter.Export(ctx, id, s.Surface, s.Store)
	if err != nil {
		uc.logger.Error("Failed to export layout", zap.String("session_id", id), zap.Error(err))
		if appErr := mapError(err); appErr != errors.ErrInternalServer {
			return nil, appErr
		}
		return nil, errors.ErrStorageError
	}

	return &dto.ExportResponse{Snapshot: res.Snapshot, Target: res.Target}, nil
}

// Snapshot - чтение последнего снимка окном просмотра
func (uc *LayoutUseCase) Snapshot(ctx context.Context, id string) (*domain.LayoutSnapshot, error) {
	if _, err := uc.manager.Get(id); err != nil {
		return nil, mapError(err)
	}

	snap, err := uc.exporter.Load(ctx, id)
	if err != nil {
		if appErr := mapError(err); appErr != errors.ErrInternalServer {
			return nil, appErr
		}
		uc.logger.Error("Failed to load layout", zap.String("session_id", id), zap.Error(err))
		return nil, errors.ErrStorageError
	}
	return snap, nil
}
