// Package mode - конечный автомат режима взаимодействия сессии:
// idle, buffering или routing, ровно один в каждый момент.
package mode

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"sync"

	"github.com/map-layout-service/internal/analysis"
	"github.com/map-layout-service/internal/domain"
	"go.uber.org/zap"
)

// Сообщения пользователю
const (
	MsgBufferArmed         = "Klik marker untuk membuat buffer"
	MsgRouteArmed          = "Klik marker untuk membuat rute"
	MsgLocationUnavailable = "Geolocation tidak tersedia"
	MsgLocationFailed      = "Gagal mendapatkan lokasi"
	MsgRouteFailed         = "Gagal menghitung rute"
)

type Notifier interface {
	Info(msg string)
	Error(msg string)
}

type BufferRunner interface {
	Run(point domain.Feature, radiusM float64) (domain.Feature, error)
}

type RouteRunner interface {
	Run(ctx context.Context, point domain.Feature) (domain.Route, error)
}

// RadiusPrompt спрашивает радиус у пользователя в момент клика.
// ok=false или пустая строка означают отказ.
type RadiusPrompt interface {
	Radius() (value string, ok bool)
}

// RadiusFunc - адаптер функции к RadiusPrompt
type RadiusFunc func() (string, bool)

func (f RadiusFunc) Radius() (string, bool) { return f() }

// Outcome - чем закончился клик по объекту
type Outcome string

const (
	OutcomeIgnored  Outcome = "ignored"
	OutcomeDeclined Outcome = "declined"
	OutcomeBuffered Outcome = "buffered"
	OutcomeRouted   Outcome = "routed"
)

type ClickResult struct {
	Outcome Outcome
	Buffer  *domain.Feature
	Route   *domain.Route
}

type Controller struct {
	mu       sync.Mutex
	mode     domain.Mode
	gen      uint64 // растёт при каждом переключении режима
	buffer   BufferRunner
	route    RouteRunner
	notifier Notifier
	logger   *zap.Logger
}

func NewController(buffer BufferRunner, route RouteRunner, notifier Notifier, logger *zap.Logger) *Controller {
	return &Controller{
		mode:     domain.ModeIdle,
		buffer:   buffer,
		route:    route,
		notifier: notifier,
		logger:   logger,
	}
}

func (c *Controller) Mode() domain.Mode {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mode
}

// ArmBuffer: idle|routing -> buffering
func (c *Controller) ArmBuffer() {
	c.transition(domain.ModeBuffering)
	c.notifier.Info(MsgBufferArmed)
}

// ArmRoute: idle|buffering -> routing
func (c *Controller) ArmRoute() {
	c.transition(domain.ModeRouting)
	c.notifier.Info(MsgRouteArmed)
}

// Disarm: любой режим -> idle
func (c *Controller) Disarm() {
	c.transition(domain.ModeIdle)
}

func (c *Controller) transition(to domain.Mode) {
	c.mu.Lock()
	from := c.mode
	c.mode = to
	c.gen++
	c.mu.Unlock()

	if from != to {
		c.logger.Debug("Mode changed", zap.Stringer("from", from), zap.Stringer("to", to))
	}
}

// armed - режим и его поколение одним снимком
func (c *Controller) armed() (domain.Mode, uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mode, c.gen
}

// disarmIf сбрасывает режим, только если его не переключали после клика gen,
// в том числе Disarm с повторным включением того же режима
func (c *Controller) disarmIf(gen uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.gen != gen || c.mode == domain.ModeIdle {
		return
	}
	from := c.mode
	c.mode = domain.ModeIdle
	c.gen++
	c.logger.Debug("Mode changed", zap.Stringer("from", from), zap.Stringer("to", domain.ModeIdle))
}

// OnFeatureClicked направляет клик по маркеру в активный анализ
func (c *Controller) OnFeatureClicked(ctx context.Context, f domain.Feature, prompt RadiusPrompt) (ClickResult, error) {
	current, gen := c.armed()
	if current == domain.ModeIdle || !f.IsPoint() {
		return ClickResult{Outcome: OutcomeIgnored}, nil
	}

	switch current {
	case domain.ModeBuffering:
		return c.runBuffer(f, prompt, gen)
	case domain.ModeRouting:
		return c.runRoute(ctx, f, gen)
	default:
		return ClickResult{Outcome: OutcomeIgnored}, nil
	}
}

func (c *Controller) runBuffer(f domain.Feature, prompt RadiusPrompt, gen uint64) (ClickResult, error) {
	var raw string
	ok := false
	if prompt != nil {
		raw, ok = prompt.Radius()
	}
	raw = strings.TrimSpace(raw)
	if !ok || raw == "" {
		return ClickResult{Outcome: OutcomeDeclined}, nil
	}

	radius, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return ClickResult{}, analysis.ErrInvalidRadius
	}

	result, err := c.buffer.Run(f, radius)
	if err != nil {
		return ClickResult{}, err
	}

	c.disarmIf(gen)
	return ClickResult{Outcome: OutcomeBuffered, Buffer: &result}, nil
}

func (c *Controller) runRoute(ctx context.Context, f domain.Feature, gen uint64) (ClickResult, error) {
	route, err := c.route.Run(ctx, f)
	if errors.Is(err, analysis.ErrRouteInFlight) {
		return ClickResult{}, err
	}

	// и успех, и ошибка снимают режим; повтор требует нового включения
	c.disarmIf(gen)

	if err != nil {
		c.notifier.Error(failureMessage(err))
		return ClickResult{}, err
	}
	return ClickResult{Outcome: OutcomeRouted, Route: &route}, nil
}

func failureMessage(err error) string {
	switch {
	case errors.Is(err, analysis.ErrLocationUnavailable):
		return MsgLocationUnavailable
	case errors.Is(err, analysis.ErrLocationFailed):
		return MsgLocationFailed
	default:
		return MsgRouteFailed
	}
}
