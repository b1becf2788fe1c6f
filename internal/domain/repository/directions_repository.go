package repository

import (
	"context"

	"github.com/map-layout-service/internal/domain"
)

// DirectionsRepository - внешний сервис построения маршрутов
type DirectionsRepository interface {
	// GetRoute строит маршрут между двумя точками без альтернатив
	GetRoute(ctx context.Context, from, to domain.LatLng) (*domain.DirectionsResponse, error)
}
