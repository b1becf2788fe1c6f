// Package analysis содержит пространственные анализы над маркерами:
// буфер радиуса и маршрут от позиции устройства. Каждый анализ владеет
// ровно одним слоем результата на поверхности карты.
package analysis

import (
	"errors"

	"github.com/map-layout-service/internal/domain"
	"github.com/map-layout-service/internal/location"
	"github.com/map-layout-service/internal/mapview"
)

var (
	ErrInvalidRadius = errors.New("invalid buffer radius")
	ErrNotAPoint     = errors.New("analysis requires a point feature")
	ErrRouteInFlight = errors.New("route request already in flight")
	ErrRouteFailed   = errors.New("routing service failed")

	ErrLocationUnavailable = location.ErrLocationUnavailable
	ErrLocationFailed      = location.ErrLocationFailed
)

// Surface - часть поверхности карты, нужная анализам
type Surface interface {
	AddLayer(kind mapview.LayerKind, f domain.Feature, style domain.Style) mapview.LayerHandle
	RemoveLayer(h mapview.LayerHandle) bool
}
