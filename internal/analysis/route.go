package analysis

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/map-layout-service/internal/domain"
	"github.com/map-layout-service/internal/domain/repository"
	"github.com/map-layout-service/internal/mapview"
	"github.com/paulmach/orb"
	"go.uber.org/zap"
)

// Locator - асинхронный запрос позиции устройства
type Locator interface {
	Locate(ctx context.Context, sessionID string) (domain.LatLng, error)
}

// RouteAnalysis - маршрут от позиции устройства до маркера.
// Пока запрос в полёте, повторный запуск отклоняется.
type RouteAnalysis struct {
	mu        sync.Mutex
	sessionID string
	surface   Surface
	locator   Locator
	router    repository.DirectionsRepository
	inFlight  atomic.Bool
	handle    *mapview.LayerHandle
	result    *domain.Route
	logger    *zap.Logger
}

// NewRouteAnalysis создаёт анализ маршрута; nil locator означает,
// что у устройства нет геолокации.
func NewRouteAnalysis(
	sessionID string,
	surface Surface,
	locator Locator,
	router repository.DirectionsRepository,
	logger *zap.Logger,
) *RouteAnalysis {
	return &RouteAnalysis{
		sessionID: sessionID,
		surface:   surface,
		locator:   locator,
		router:    router,
		logger:    logger,
	}
}

// Run ждёт позицию устройства, строит маршрут и заменяет предыдущий.
// При любой ошибке прежний маршрут остаётся на карте.
func (r *RouteAnalysis) Run(ctx context.Context, point domain.Feature) (domain.Route, error) {
	p, ok := point.Geometry.(orb.Point)
	if !ok {
		return domain.Route{}, ErrNotAPoint
	}
	if r.locator == nil {
		return domain.Route{}, ErrLocationUnavailable
	}
	if !r.inFlight.CompareAndSwap(false, true) {
		return domain.Route{}, ErrRouteInFlight
	}
	defer r.inFlight.Store(false)

	start, err := r.locator.Locate(ctx, r.sessionID)
	if err != nil {
		r.logger.Warn("Location query failed", zap.Error(err))
		if errors.Is(err, ErrLocationUnavailable) || errors.Is(err, ErrLocationFailed) {
			return domain.Route{}, err
		}
		return domain.Route{}, fmt.Errorf("%w: %v", ErrLocationFailed, err)
	}

	dest := domain.LatLngFromPoint(p)
	resp, err := r.router.GetRoute(ctx, start, dest)
	if err != nil {
		r.logger.Error("Routing service failed", zap.Error(err))
		return domain.Route{}, fmt.Errorf("%w: %v", ErrRouteFailed, err)
	}

	route, err := buildRoute(start, dest, resp)
	if err != nil {
		return domain.Route{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.removeLocked()
	h := r.surface.AddLayer(mapview.LayerRoute, route.Feature(), domain.RouteStyle)
	r.handle = &h
	r.result = &route

	r.logger.Info("Route created",
		zap.String("feature_id", point.ID),
		zap.Float64("distance_m", route.DistanceM),
		zap.Float64("duration_s", route.DurationS),
		zap.String("layer_id", h.ID))

	return route, nil
}

func buildRoute(start, dest domain.LatLng, resp *domain.DirectionsResponse) (domain.Route, error) {
	if resp == nil || len(resp.Routes) == 0 {
		return domain.Route{}, fmt.Errorf("%w: no route returned", ErrRouteFailed)
	}

	best := resp.Routes[0]
	var line orb.LineString
	if best.Geometry != nil {
		line, _ = best.Geometry.Geometry().(orb.LineString)
	}
	if len(line) < 2 {
		line = orb.LineString{start.Point(), dest.Point()}
	}

	return domain.Route{
		Waypoints: []domain.LatLng{start, dest},
		Geometry:  line,
		DistanceM: best.Distance,
		DurationS: best.Duration,
	}, nil
}

// Clear убирает маршрут с карты; безопасно без результата
func (r *RouteAnalysis) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.removeLocked()
}

func (r *RouteAnalysis) removeLocked() {
	if r.handle != nil {
		r.surface.RemoveLayer(*r.handle)
	}
	r.handle = nil
	r.result = nil
}

func (r *RouteAnalysis) Visible() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.handle != nil
}

func (r *RouteAnalysis) InFlight() bool {
	return r.inFlight.Load()
}

func (r *RouteAnalysis) Result() (domain.Route, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.result == nil {
		return domain.Route{}, false
	}
	return *r.result, true
}
