package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/map-layout-service/internal/pkg/errors"
	"github.com/map-layout-service/internal/pkg/utils"
	"github.com/map-layout-service/internal/pkg/validator"
	"github.com/map-layout-service/internal/usecase"
	"github.com/map-layout-service/internal/usecase/dto"
	"go.uber.org/zap"
)

// AnalysisHandler - режимы, клики по маркерам, позиция устройства и уведомления
type AnalysisHandler struct {
	analysisUC *usecase.AnalysisUseCase
	logger     *zap.Logger
}

func NewAnalysisHandler(analysisUC *usecase.AnalysisUseCase, logger *zap.Logger) *AnalysisHandler {
	return &AnalysisHandler{
		analysisUC: analysisUC,
		logger:     logger,
	}
}

// ArmBuffer godoc
// @Summary Включить режим буфера
// @Description Следующий клик по маркеру запросит радиус и построит буфер
// @Tags Analysis
// @Produce json
// @Param id path string true "ID сессии"
// @Success 200 {object} utils.SuccessResponse{data=dto.ModeResponse}
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/sessions/{id}/mode/buffer [post]
func (h *AnalysisHandler) ArmBuffer(c *fiber.Ctx) error {
	result, err := h.analysisUC.ArmBuffer(c.Params("id"))
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, result, nil)
}

// ArmRoute godoc
// @Summary Включить режим маршрута
// @Description Следующий клик по маркеру построит маршрут от позиции устройства
// @Tags Analysis
// @Produce json
// @Param id path string true "ID сессии"
// @Success 200 {object} utils.SuccessResponse{data=dto.ModeResponse}
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/sessions/{id}/mode/route [post]
func (h *AnalysisHandler) ArmRoute(c *fiber.Ctx) error {
	result, err := h.analysisUC.ArmRoute(c.Params("id"))
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, result, nil)
}

// Disarm godoc
// @Summary Выключить режим
// @Tags Analysis
// @Produce json
// @Param id path string true "ID сессии"
// @Success 200 {object} utils.SuccessResponse{data=dto.ModeResponse}
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/sessions/{id}/mode [delete]
func (h *AnalysisHandler) Disarm(c *fiber.Ctx) error {
	result, err := h.analysisUC.Disarm(c.Params("id"))
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, result, nil)
}

// Click godoc
// @Summary Клик по объекту
// @Description В режиме buffering строит буфер радиуса radius (метры; пустой radius - отказ от ввода). В режиме routing ждёт позицию устройства и строит маршрут. В idle и для не-точек клик игнорируется.
// @Tags Analysis
// @Accept json
// @Produce json
// @Param id path string true "ID сессии"
// @Param featureId path string true "ID объекта"
// @Param request body dto.ClickRequest false "Введённый радиус в метрах: строка или число"
// @Success 200 {object} utils.SuccessResponse{data=dto.ClickResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Failure 409 {object} utils.ErrorResponse
// @Failure 422 {object} utils.ErrorResponse
// @Failure 502 {object} utils.ErrorResponse
// @Failure 504 {object} utils.ErrorResponse
// @Router /api/v1/sessions/{id}/features/{featureId}/click [post]
func (h *AnalysisHandler) Click(c *fiber.Ctx) error {
	var req dto.ClickRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return utils.SendError(c, errors.ErrInvalidRequest)
		}
	}

	result, err := h.analysisUC.Click(c.Context(), c.Params("id"), c.Params("featureId"), req)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, result, nil)
}

// ClearBuffer godoc
// @Summary Убрать буфер
// @Tags Analysis
// @Param id path string true "ID сессии"
// @Success 204
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/sessions/{id}/analysis/buffer [delete]
func (h *AnalysisHandler) ClearBuffer(c *fiber.Ctx) error {
	if err := h.analysisUC.ClearBuffer(c.Params("id")); err != nil {
		return utils.SendError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ClearRoute godoc
// @Summary Убрать маршрут
// @Tags Analysis
// @Param id path string true "ID сессии"
// @Success 204
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/sessions/{id}/analysis/route [delete]
func (h *AnalysisHandler) ClearRoute(c *fiber.Ctx) error {
	if err := h.analysisUC.ClearRoute(c.Params("id")); err != nil {
		return utils.SendError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ReportPosition godoc
// @Summary Позиция устройства
// @Description Будит ожидающий запрос маршрута. Доступно только сессиям, открытым с geolocation=true.
// @Tags Location
// @Accept json
// @Param id path string true "ID сессии"
// @Produce json
// @Param request body dto.PositionRequest true "Координаты"
// @Success 202 {object} utils.SuccessResponse
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Failure 422 {object} utils.ErrorResponse
// @Router /api/v1/sessions/{id}/position [post]
func (h *AnalysisHandler) ReportPosition(c *fiber.Ctx) error {
	var req dto.PositionRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}
	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	if err := h.analysisUC.ReportPosition(c.Params("id"), req); err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendAccepted(c, nil)
}

// Position godoc
// @Summary Последняя позиция устройства
// @Description null, пока устройство не сообщало позицию
// @Tags Location
// @Produce json
// @Param id path string true "ID сессии"
// @Success 200 {object} utils.SuccessResponse{data=domain.Position}
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/sessions/{id}/position [get]
func (h *AnalysisHandler) Position(c *fiber.Ctx) error {
	result, err := h.analysisUC.Position(c.Params("id"))
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, result, nil)
}

// Notices godoc
// @Summary Уведомления пользователя
// @Description Возвращает и очищает очередь уведомлений сессии
// @Tags Notices
// @Produce json
// @Param id path string true "ID сессии"
// @Success 200 {object} utils.SuccessResponse{data=dto.NoticesResponse}
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/sessions/{id}/notices [get]
func (h *AnalysisHandler) Notices(c *fiber.Ctx) error {
	result, err := h.analysisUC.Notices(c.Params("id"))
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, result, &utils.Meta{Total: len(result.Notices)})
}
