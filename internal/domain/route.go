package domain

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// Route - результат маршрута от позиции устройства до маркера
type Route struct {
	Waypoints []LatLng       `json:"waypoints"`
	Geometry  orb.LineString `json:"-"`
	DistanceM float64        `json:"distance_m"`
	DurationS float64        `json:"duration_s"`
}

// Feature - маршрут как производный объект для отображения
func (r Route) Feature() Feature {
	props := StyleProperties(RouteStyle)
	props["distance_m"] = r.DistanceM
	props["duration_s"] = r.DurationS
	return Feature{Geometry: r.Geometry, Properties: props}
}

// DirectionsResponse - ответ OSRM / Mapbox Directions API
type DirectionsResponse struct {
	Code      string               `json:"code"`
	Message   string               `json:"message,omitempty"`
	Routes    []DirectionsRoute    `json:"routes"`
	Waypoints []DirectionsWaypoint `json:"waypoints"`
}

// DirectionsRoute - один вариант маршрута
type DirectionsRoute struct {
	Distance float64           `json:"distance"` // в метрах
	Duration float64           `json:"duration"` // в секундах
	Geometry *geojson.Geometry `json:"geometry"`
}

// DirectionsWaypoint - точка, привязанная к дорожной сети
type DirectionsWaypoint struct {
	Name     string    `json:"name"`
	Location []float64 `json:"location"` // [lon, lat]
}
