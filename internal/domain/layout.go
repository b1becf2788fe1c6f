package domain

import "github.com/paulmach/orb/geojson"

// Ключи сессионного хранилища
const (
	KeyLayoutMeta = "layoutMeta"
	KeyLayoutData = "layoutData"
)

// LayoutMeta - заголовок и имя слоя оцифровки, сохранённые отдельным действием
type LayoutMeta struct {
	LayoutTitle       string `json:"layoutTitle"`
	DigitasiLayerName string `json:"digitasiLayerName"`
}

// LayoutSnapshot - сериализуемый снимок вида карты для окна макета
type LayoutSnapshot struct {
	Title      string                     `json:"title"`
	Center     [2]float64                 `json:"center"`
	Zoom       float64                    `json:"zoom"`
	DrawnItems *geojson.FeatureCollection `json:"drawnItems"`
	LegendHTML string                     `json:"legendHTML"`
}
