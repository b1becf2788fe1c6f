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

// MapHandler - вид карты, черновики и нарисованные объекты
type MapHandler struct {
	mapUC  *usecase.MapUseCase
	logger *zap.Logger
}

func NewMapHandler(mapUC *usecase.MapUseCase, logger *zap.Logger) *MapHandler {
	return &MapHandler{
		mapUC:  mapUC,
		logger: logger,
	}
}

// State godoc
// @Summary Состояние карты
// @Description Вид, режим, нарисованные объекты и слои анализов
// @Tags Map
// @Produce json
// @Param id path string true "ID сессии"
// @Success 200 {object} utils.SuccessResponse{data=dto.MapStateResponse}
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/sessions/{id}/map [get]
func (h *MapHandler) State(c *fiber.Ctx) error {
	result, err := h.mapUC.State(c.Params("id"))
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, result, nil)
}

// SetView godoc
// @Summary Установить центр и масштаб
// @Tags Map
// @Accept json
// @Produce json
// @Param id path string true "ID сессии"
// @Param request body dto.SetViewRequest true "Центр и масштаб"
// @Success 200 {object} utils.SuccessResponse{data=domain.View}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/sessions/{id}/view [put]
func (h *MapHandler) SetView(c *fiber.Ctx) error {
	var req dto.SetViewRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}
	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	result, err := h.mapUC.SetView(c.Params("id"), req)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, result, nil)
}

// ChangeBasemap godoc
// @Summary Сменить подложку
// @Description Активной остаётся ровно одна подложка: osm, esri или google
// @Tags Map
// @Accept json
// @Produce json
// @Param id path string true "ID сессии"
// @Param request body dto.BasemapRequest true "Имя подложки"
// @Success 200 {object} utils.SuccessResponse{data=domain.View}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/sessions/{id}/basemap [put]
func (h *MapHandler) ChangeBasemap(c *fiber.Ctx) error {
	var req dto.BasemapRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}
	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	result, err := h.mapUC.ChangeBasemap(c.Params("id"), req)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, result, nil)
}

// ApplyZoomPercent godoc
// @Summary Масштаб в процентах
// @Description zoom = baseZoom + log2(percent/100); baseZoom фиксируется при первом вызове
// @Tags Map
// @Accept json
// @Produce json
// @Param id path string true "ID сессии"
// @Param request body dto.ZoomPercentRequest true "Процент"
// @Success 200 {object} utils.SuccessResponse{data=dto.ZoomResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/sessions/{id}/zoom-percent [put]
func (h *MapHandler) ApplyZoomPercent(c *fiber.Ctx) error {
	var req dto.ZoomPercentRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}
	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	result, err := h.mapUC.ApplyZoomPercent(c.Params("id"), req)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, result, nil)
}

// OpenDraft godoc
// @Summary Открыть форму создания
// @Description Регистрирует нарисованную геометрию (Point, LineString, Polygon). Объект попадает в хранилище только после сохранения формы.
// @Tags Drafts
// @Accept json
// @Produce json
// @Param id path string true "ID сессии"
// @Param request body dto.OpenDraftRequest true "GeoJSON геометрия"
// @Success 201 {object} utils.SuccessResponse{data=dto.DraftResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/sessions/{id}/drafts [post]
func (h *MapHandler) OpenDraft(c *fiber.Ctx) error {
	var req dto.OpenDraftRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidFeature)
	}

	result, err := h.mapUC.OpenDraft(c.Params("id"), req)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendCreated(c, result)
}

// SaveDraft godoc
// @Summary Сохранить форму создания
// @Description Проверяет имя и цвет слоя и добавляет объект в хранилище. Повторное сохранение отклоняется.
// @Tags Drafts
// @Accept json
// @Produce json
// @Param id path string true "ID сессии"
// @Param draftId path string true "ID черновика"
// @Param request body dto.SaveDraftRequest true "Имя и цвет слоя"
// @Success 201 {object} utils.SuccessResponse
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Failure 409 {object} utils.ErrorResponse
// @Router /api/v1/sessions/{id}/drafts/{draftId}/save [post]
func (h *MapHandler) SaveDraft(c *fiber.Ctx) error {
	var req dto.SaveDraftRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}
	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidFeature.WithDetails(map[string]interface{}{
			"reason": err.Error(),
		}))
	}

	result, err := h.mapUC.SaveDraft(c.Params("id"), c.Params("draftId"), req)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendCreated(c, result)
}

// DiscardDraft godoc
// @Summary Закрыть форму без сохранения
// @Tags Drafts
// @Param id path string true "ID сессии"
// @Param draftId path string true "ID черновика"
// @Success 204
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/sessions/{id}/drafts/{draftId} [delete]
func (h *MapHandler) DiscardDraft(c *fiber.Ctx) error {
	if err := h.mapUC.DiscardDraft(c.Params("id"), c.Params("draftId")); err != nil {
		return utils.SendError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Features godoc
// @Summary Нарисованные объекты
// @Description Коллекция GeoJSON в порядке добавления
// @Tags Features
// @Produce json
// @Param id path string true "ID сессии"
// @Success 200 {object} utils.SuccessResponse{data=dto.FeaturesResponse}
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/sessions/{id}/features [get]
func (h *MapHandler) Features(c *fiber.Ctx) error {
	result, err := h.mapUC.Features(c.Params("id"))
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, result, &utils.Meta{Total: result.Total})
}

// Feature godoc
// @Summary Один объект
// @Tags Features
// @Produce json
// @Param id path string true "ID сессии"
// @Param featureId path string true "ID объекта"
// @Success 200 {object} utils.SuccessResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/sessions/{id}/features/{featureId} [get]
func (h *MapHandler) Feature(c *fiber.Ctx) error {
	result, err := h.mapUC.Feature(c.Params("id"), c.Params("featureId"))
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, result, nil)
}
