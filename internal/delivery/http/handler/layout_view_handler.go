package handler

import (
	"embed"
	"html/template"

	"github.com/gofiber/fiber/v2"
	"github.com/map-layout-service/internal/pkg/utils"
	"github.com/map-layout-service/internal/usecase"
	"github.com/paulmach/orb/geojson"
	"go.uber.org/zap"
)

//go:embed templates/*.html
var templateFS embed.FS

// LayoutViewData - данные шаблона страницы макета
type LayoutViewData struct {
	Title      string
	Lat        float64
	Lng        float64
	Zoom       float64
	DrawnItems *geojson.FeatureCollection
	// Legend уже экранирована при экспорте
	Legend template.HTML
}

// LayoutViewHandler - страница печати последнего экспортированного макета
type LayoutViewHandler struct {
	layoutUC  *usecase.LayoutUseCase
	templates *template.Template
	logger    *zap.Logger
}

func NewLayoutViewHandler(layoutUC *usecase.LayoutUseCase, logger *zap.Logger) (*LayoutViewHandler, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}

	return &LayoutViewHandler{
		layoutUC:  layoutUC,
		templates: tmpl,
		logger:    logger,
	}, nil
}

// Render godoc
// @Summary Страница макета
// @Description HTML страница с картой, заголовком и легендой из последнего экспорта
// @Tags Layout
// @Produce html
// @Param id path string true "ID сессии"
// @Success 200 {string} string "HTML"
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/sessions/{id}/layout/view [get]
func (h *LayoutViewHandler) Render(c *fiber.Ctx) error {
	snap, err := h.layoutUC.Snapshot(c.Context(), c.Params("id"))
	if err != nil {
		return utils.SendError(c, err)
	}

	data := LayoutViewData{
		Title:      snap.Title,
		Lat:        snap.Center[0],
		Lng:        snap.Center[1],
		Zoom:       snap.Zoom,
		DrawnItems: snap.DrawnItems,
		Legend:     template.HTML(snap.LegendHTML),
	}

	c.Set("Content-Type", "text/html; charset=utf-8")
	return h.templates.ExecuteTemplate(c.Response().BodyWriter(), "layout.html", data)
}
