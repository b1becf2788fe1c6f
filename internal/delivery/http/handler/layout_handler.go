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

// LayoutHandler - макет карты для печати
type LayoutHandler struct {
	layoutUC *usecase.LayoutUseCase
	logger   *zap.Logger
}

func NewLayoutHandler(layoutUC *usecase.LayoutUseCase, logger *zap.Logger) *LayoutHandler {
	return &LayoutHandler{
		layoutUC: layoutUC,
		logger:   logger,
	}
}

// SaveMeta godoc
// @Summary Сохранить ввод макета
// @Tags Layout
// @Accept json
// @Param id path string true "ID сессии"
// @Param request body dto.LayoutMetaRequest true "Заголовок и имя слоя"
// @Success 204
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/sessions/{id}/layout/meta [put]
func (h *LayoutHandler) SaveMeta(c *fiber.Ctx) error {
	var req dto.LayoutMetaRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}
	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	if err := h.layoutUC.SaveMeta(c.Context(), c.Params("id"), req); err != nil {
		return utils.SendError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Export godoc
// @Summary Экспорт макета
// @Description Снимок вида карты, объектов и легенды; target - окно просмотра, которое открывает клиент
// @Tags Layout
// @Produce json
// @Param id path string true "ID сессии"
// @Success 200 {object} utils.SuccessResponse{data=dto.ExportResponse}
// @Failure 404 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/sessions/{id}/layout/export [post]
func (h *LayoutHandler) Export(c *fiber.Ctx) error {
	result, err := h.layoutUC.Export(c.Context(), c.Params("id"))
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, result, nil)
}

// Snapshot godoc
// @Summary Последний экспортированный макет
// @Tags Layout
// @Produce json
// @Param id path string true "ID сессии"
// @Success 200 {object} utils.SuccessResponse{data=domain.LayoutSnapshot}
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/sessions/{id}/layout [get]
func (h *LayoutHandler) Snapshot(c *fiber.Ctx) error {
	result, err := h.layoutUC.Snapshot(c.Context(), c.Params("id"))
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, result, nil)
}
