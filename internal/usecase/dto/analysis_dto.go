package dto

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/map-layout-service/internal/domain"
	"github.com/map-layout-service/internal/notice"
	"github.com/paulmach/orb/geojson"
)

// ClickRequest - клик по маркеру; пустой radius означает отказ от ввода
type ClickRequest struct {
	Radius *RadiusInput `json:"radius,omitempty" swaggertype:"string" example:"500"`
}

// RadiusInput - введённый радиус в метрах как есть: строка из поля ввода
// или JSON-число. Разбор и проверка остаются за режимом буфера.
type RadiusInput string

func (r *RadiusInput) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*r = RadiusInput(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("radius must be a string or a number: %w", err)
	}
	*r = RadiusInput(n.String())
	return nil
}

// ModeResponse - текущий режим взаимодействия
type ModeResponse struct {
	Mode string `json:"mode"`
}

// RouteResponse - построенный маршрут
type RouteResponse struct {
	Waypoints []domain.LatLng   `json:"waypoints"`
	DistanceM float64           `json:"distance_m"`
	DurationS float64           `json:"duration_s"`
	Geometry  *geojson.Geometry `json:"geometry"`
}

// ClickResponse - результат клика
type ClickResponse struct {
	Outcome string           `json:"outcome"`
	Mode    string           `json:"mode"`
	Buffer  *geojson.Feature `json:"buffer,omitempty"`
	Route   *RouteResponse   `json:"route,omitempty"`
}

// PositionRequest - позиция устройства от клиента
type PositionRequest struct {
	Lat        float64    `json:"lat" validate:"min=-90,max=90"`
	Lng        float64    `json:"lng" validate:"min=-180,max=180"`
	Accuracy   float64    `json:"accuracy" validate:"min=0"`
	RecordedAt *time.Time `json:"recorded_at,omitempty"`
}

// NoticesResponse - накопленные уведомления
type NoticesResponse struct {
	Notices []notice.Notice `json:"notices"`
}

func ConvertRoute(r domain.Route) *RouteResponse {
	return &RouteResponse{
		Waypoints: r.Waypoints,
		DistanceM: r.DistanceM,
		DurationS: r.DurationS,
		Geometry:  geojson.NewGeometry(r.Geometry),
	}
}
