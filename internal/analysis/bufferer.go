package analysis

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
)

const minSegments = 8

// Bufferer строит полигон буфера вокруг точки
type Bufferer interface {
	Buffer(center orb.Point, radiusM float64) orb.Polygon
}

// GeodesicBufferer аппроксимирует круг радиуса radiusM правильным
// многоугольником на сфере. Внешнее кольцо против часовой стрелки.
type GeodesicBufferer struct {
	Segments int
}

func NewGeodesicBufferer(segments int) GeodesicBufferer {
	if segments < minSegments {
		segments = minSegments
	}
	return GeodesicBufferer{Segments: segments}
}

func (b GeodesicBufferer) Buffer(center orb.Point, radiusM float64) orb.Polygon {
	n := b.Segments
	if n < minSegments {
		n = minSegments
	}

	ring := make(orb.Ring, 0, n+1)
	for i := 0; i < n; i++ {
		bearing := 360 - 360*float64(i)/float64(n)
		ring = append(ring, geo.PointAtBearingAndDistance(center, bearing, radiusM))
	}
	ring = append(ring, ring[0])

	return orb.Polygon{ring}
}
