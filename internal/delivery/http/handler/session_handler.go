package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/map-layout-service/internal/pkg/errors"
	"github.com/map-layout-service/internal/pkg/utils"
	"github.com/map-layout-service/internal/usecase"
	"github.com/map-layout-service/internal/usecase/dto"
	"go.uber.org/zap"
)

// SessionHandler - открытие и закрытие карты
type SessionHandler struct {
	sessionUC *usecase.SessionUseCase
	logger    *zap.Logger
}

func NewSessionHandler(sessionUC *usecase.SessionUseCase, logger *zap.Logger) *SessionHandler {
	return &SessionHandler{
		sessionUC: sessionUC,
		logger:    logger,
	}
}

// Create godoc
// @Summary Открыть карту
// @Description Создаёт сессию карты: пустое хранилище объектов, режим idle, начальный вид. geolocation=true означает, что устройство будет присылать позицию.
// @Tags Sessions
// @Accept json
// @Produce json
// @Param request body dto.CreateSessionRequest false "Возможности устройства"
// @Success 201 {object} utils.SuccessResponse{data=dto.SessionResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/v1/sessions [post]
func (h *SessionHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateSessionRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return utils.SendError(c, errors.ErrInvalidRequest)
		}
	}

	return utils.SendCreated(c, h.sessionUC.Create(req))
}

// Close godoc
// @Summary Закрыть карту
// @Description Снимает анализы, прерывает ожидание позиции и удаляет ключи макета сессии
// @Tags Sessions
// @Param id path string true "ID сессии"
// @Success 204
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/sessions/{id} [delete]
func (h *SessionHandler) Close(c *fiber.Ctx) error {
	if err := h.sessionUC.Close(c.Context(), c.Params("id")); err != nil {
		return utils.SendError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
