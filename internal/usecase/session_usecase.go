package usecase

import (
	"context"
	stderrors "errors"

	"go.uber.org/zap"

	"github.com/map-layout-service/internal/session"
	"github.com/map-layout-service/internal/usecase/dto"
)

// SessionUseCase - открытие и закрытие карт
type SessionUseCase struct {
	manager *session.Manager
	logger  *zap.Logger
}

func NewSessionUseCase(manager *session.Manager, logger *zap.Logger) *SessionUseCase {
	return &SessionUseCase{
		manager: manager,
		logger:  logger,
	}
}

func (uc *SessionUseCase) Create(req dto.CreateSessionRequest) *dto.SessionResponse {
	s := uc.manager.Create(session.Options{Geolocation: req.Geolocation})
	return &dto.SessionResponse{
		ID:          s.ID,
		Geolocation: s.Geolocation,
		Mode:        s.Controller.Mode().String(),
		CreatedAt:   s.CreatedAt,
	}
}

// Close - завершение сессии; ошибка очистки хранилища не мешает закрытию
func (uc *SessionUseCase) Close(ctx context.Context, id string) error {
	if err := uc.manager.Close(ctx, id); err != nil {
		if stderrors.Is(err, session.ErrSessionNotFound) {
			return mapError(err)
		}
		// ключи всё равно истекут по TTL
		uc.logger.Warn("Session closed with storage error",
			zap.String("session_id", id), zap.Error(err))
	}
	return nil
}
