package analysis

import (
	"context"

	"github.com/map-layout-service/internal/domain"
	"github.com/stretchr/testify/mock"
)

type MockDirectionsRepository struct {
	mock.Mock
}

func (m *MockDirectionsRepository) GetRoute(ctx context.Context, from, to domain.LatLng) (*domain.DirectionsResponse, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DirectionsResponse), args.Error(1)
}

type MockLocator struct {
	mock.Mock
}

func (m *MockLocator) Locate(ctx context.Context, sessionID string) (domain.LatLng, error) {
	args := m.Called(ctx, sessionID)
	return args.Get(0).(domain.LatLng), args.Error(1)
}
