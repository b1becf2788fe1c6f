package domain

// Basemap - источник подложки карты
type Basemap struct {
	Name        string `json:"name"`
	URL         string `json:"url"`
	Attribution string `json:"attribution"`
}

const (
	BasemapOSM    = "osm"
	BasemapEsri   = "esri"
	BasemapGoogle = "google"
)

// Basemaps - доступные подложки
var Basemaps = map[string]Basemap{
	BasemapOSM: {
		Name:        BasemapOSM,
		URL:         "https://{s}.tile.openstreetmap.org/{z}/{x}/{y}.png",
		Attribution: "&copy; OpenStreetMap",
	},
	BasemapEsri: {
		Name:        BasemapEsri,
		URL:         "https://server.arcgisonline.com/ArcGIS/rest/services/World_Imagery/MapServer/tile/{z}/{y}/{x}",
		Attribution: "© Esri",
	},
	BasemapGoogle: {
		Name:        BasemapGoogle,
		URL:         "https://mt1.google.com/vt/lyrs=s&x={x}&y={y}&z={z}",
		Attribution: "© Google",
	},
}

// Начальный вид карты (Бандунг)
var (
	DefaultCenter = LatLng{Lat: -6.9175, Lng: 107.6191}
	DefaultZoom   = 13.0
)

// View - текущее состояние вида карты
type View struct {
	Center      LatLng   `json:"center"`
	Zoom        float64  `json:"zoom"`
	BaseZoom    *float64 `json:"baseZoom,omitempty"`
	ZoomPercent float64  `json:"zoomPercent"`
	Basemap     Basemap  `json:"basemap"`
}
