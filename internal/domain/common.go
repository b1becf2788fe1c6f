package domain

import "github.com/paulmach/orb"

// LatLng - географическая точка в порядке lat/lng, как её отдаёт виджет карты
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Point - точка orb в порядке GeoJSON (lng, lat)
func (ll LatLng) Point() orb.Point {
	return orb.Point{ll.Lng, ll.Lat}
}

// Pair - представление [lat, lng] для снимка макета
func (ll LatLng) Pair() [2]float64 {
	return [2]float64{ll.Lat, ll.Lng}
}

func LatLngFromPoint(p orb.Point) LatLng {
	return LatLng{Lat: p.Lat(), Lng: p.Lon()}
}
