package domain

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// Ключи свойств нарисованного объекта
const (
	PropLayerName = "layerName"
	PropColor     = "color"
)

// Значения формы создания и легенды по умолчанию
const (
	DefaultLayerName = "Layer Baru"
	DefaultColor     = "#ff0000"

	LegendFallbackName  = "Tanpa Nama"
	LegendFallbackColor = "#3388ff"
)

// GeometryKind - тип геометрии нарисованного объекта
type GeometryKind string

const (
	GeometryPoint      GeometryKind = "Point"
	GeometryLineString GeometryKind = "LineString"
	GeometryPolygon    GeometryKind = "Polygon"
)

// KindOf возвращает тип геометрии или пустую строку для неподдерживаемых типов
func KindOf(g orb.Geometry) GeometryKind {
	switch g.(type) {
	case orb.Point:
		return GeometryPoint
	case orb.LineString:
		return GeometryLineString
	case orb.Polygon:
		return GeometryPolygon
	default:
		return ""
	}
}

// Feature - нарисованная или производная геометрия со свойствами.
// ID нужен только клиенту для ссылок внутри сессии.
type Feature struct {
	ID         string
	Geometry   orb.Geometry
	Properties geojson.Properties
}

// LayerMeta - пользовательские метаданные слоя из формы создания
type LayerMeta struct {
	LayerName string `json:"layerName" validate:"required,notblank,max=200"`
	Color     string `json:"color" validate:"required,mapcolor"`
}

// DefaultLayerMeta - значения, которые форма показывает при открытии
func DefaultLayerMeta() LayerMeta {
	return LayerMeta{LayerName: DefaultLayerName, Color: DefaultColor}
}

func (f Feature) LayerName() string {
	return f.Properties.MustString(PropLayerName, "")
}

func (f Feature) Color() string {
	return f.Properties.MustString(PropColor, "")
}

func (f Feature) Kind() GeometryKind {
	return KindOf(f.Geometry)
}

// IsPoint - только маркеры реагируют на клик в режиме анализа
func (f Feature) IsPoint() bool {
	_, ok := f.Geometry.(orb.Point)
	return ok
}

// GeoJSON - представление объекта в виде GeoJSON Feature
func (f Feature) GeoJSON() *geojson.Feature {
	gf := geojson.NewFeature(orb.Clone(f.Geometry))
	if f.ID != "" {
		gf.ID = f.ID
	}
	gf.Properties = f.Properties.Clone()
	if gf.Properties == nil {
		gf.Properties = geojson.Properties{}
	}
	return gf
}

// Style - стиль отображения слоя на карте
type Style struct {
	Color       string  `json:"color"`
	FillColor   string  `json:"fillColor,omitempty"`
	FillOpacity float64 `json:"fillOpacity,omitempty"`
	Weight      float64 `json:"weight,omitempty"`
}

// BufferStyle - фиксированный стиль результата буфера
var BufferStyle = Style{Color: "#00FFFF", FillColor: "#00FFFF", FillOpacity: 0.3}

// RouteStyle - стиль линии маршрута
var RouteStyle = Style{Color: "#2563eb", Weight: 5}

// StyleProperties - свойства производного объекта: стиль вместо метаданных пользователя
func StyleProperties(s Style) geojson.Properties {
	p := geojson.Properties{"color": s.Color}
	if s.FillColor != "" {
		p["fillColor"] = s.FillColor
	}
	if s.FillOpacity != 0 {
		p["fillOpacity"] = s.FillOpacity
	}
	if s.Weight != 0 {
		p["weight"] = s.Weight
	}
	return p
}
