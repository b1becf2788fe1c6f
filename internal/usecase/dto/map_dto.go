package dto

import (
	"github.com/map-layout-service/internal/domain"
	"github.com/map-layout-service/internal/mapview"
	"github.com/paulmach/orb/geojson"
)

// SetViewRequest - центр и масштаб карты
type SetViewRequest struct {
	Lat  float64 `json:"lat" validate:"min=-90,max=90"`
	Lng  float64 `json:"lng" validate:"min=-180,max=180"`
	Zoom float64 `json:"zoom" validate:"min=0,max=22"`
}

// BasemapRequest - смена подложки
type BasemapRequest struct {
	Name string `json:"name" validate:"required"`
}

// ZoomPercentRequest - масштаб в процентах от первого зафиксированного
type ZoomPercentRequest struct {
	Percent float64 `json:"percent" validate:"gt=0,lte=10000"`
}

// OpenDraftRequest - геометрия, только что нарисованная инструментом рисования
type OpenDraftRequest struct {
	Geometry *geojson.Geometry `json:"geometry" validate:"required"`
}

// SaveDraftRequest - ввод формы создания слоя
type SaveDraftRequest struct {
	LayerName string `json:"layerName" validate:"required,notblank,max=200"`
	Color     string `json:"color" validate:"required,mapcolor"`
}

// DraftResponse - открытая форма создания
type DraftResponse struct {
	ID       string            `json:"id"`
	Geometry *geojson.Geometry `json:"geometry"`
	Anchor   domain.LatLng     `json:"anchor"`
	Defaults domain.LayerMeta  `json:"defaults"`
}

// FeaturesResponse - все нарисованные объекты
type FeaturesResponse struct {
	Collection *geojson.FeatureCollection `json:"collection"`
	Total      int                        `json:"total"`
}

// OverlayResponse - слой анализа на карте
type OverlayResponse struct {
	ID      string            `json:"id"`
	Kind    mapview.LayerKind `json:"kind"`
	Feature *geojson.Feature  `json:"feature"`
	Style   domain.Style      `json:"style"`
}

// MapStateResponse - полное состояние карты сессии
type MapStateResponse struct {
	SessionID      string                     `json:"session_id"`
	View           domain.View                `json:"view"`
	Mode           string                     `json:"mode"`
	DrawnItems     *geojson.FeatureCollection `json:"drawnItems"`
	Overlays       []OverlayResponse          `json:"overlays"`
	BufferVisible  bool                       `json:"buffer_visible"`
	RouteVisible   bool                       `json:"route_visible"`
	RouteInFlight  bool                       `json:"route_in_flight"`
	PendingNotices int                        `json:"pending_notices"` // ждут GET /notices
}

// ZoomResponse - масштаб после применения процента
type ZoomResponse struct {
	Zoom float64 `json:"zoom"`
}

// ConvertOverlays - слои поверхности в ответ API
func ConvertOverlays(layers []mapview.Layer) []OverlayResponse {
	out := make([]OverlayResponse, 0, len(layers))
	for _, l := range layers {
		out = append(out, OverlayResponse{
			ID:      l.ID,
			Kind:    l.Kind,
			Feature: l.Feature.GeoJSON(),
			Style:   l.Style,
		})
	}
	return out
}
