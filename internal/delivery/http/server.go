package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/map-layout-service/internal/config"
	"github.com/map-layout-service/internal/delivery/http/handler"
	"github.com/map-layout-service/internal/delivery/http/middleware"
	"github.com/map-layout-service/internal/pkg/errors"
	fiberSwagger "github.com/swaggo/fiber-swagger"
	"go.uber.org/zap"
)

// HealthFunc - проверка внешних зависимостей для /health
type HealthFunc func(ctx context.Context) error

// Handlers - обработчики API
type Handlers struct {
	Session    *handler.SessionHandler
	Map        *handler.MapHandler
	Analysis   *handler.AnalysisHandler
	Layout     *handler.LayoutHandler
	// LayoutView может отсутствовать, тогда страница макета не регистрируется
	LayoutView *handler.LayoutViewHandler
}

// Server - HTTP сервер на основе Fiber
type Server struct {
	app      *fiber.App
	config   *config.Config
	logger   *zap.Logger
	handlers Handlers
	health   HealthFunc
}

// NewServer - создание нового HTTP сервера
func NewServer(cfg *config.Config, logger *zap.Logger, handlers Handlers, health HealthFunc) *Server {
	app := fiber.New(fiber.Config{
		AppName:      "Map Layout Service",
		Immutable:    true,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: cfg.Locator.Timeout + cfg.Router.RequestTimeout + 5*time.Second,
		IdleTimeout:  60 * time.Second,
		ErrorHandler: customErrorHandler(logger),
	})

	s := &Server{
		app:      app,
		config:   cfg,
		logger:   logger,
		handlers: handlers,
		health:   health,
	}

	s.setupMiddlewares()
	s.setupRoutes()

	return s
}

// App - для тестов через app.Test
func (s *Server) App() *fiber.App {
	return s.app
}

func (s *Server) setupMiddlewares() {
	s.app.Use(middleware.Recovery(s.logger))
	s.app.Use(middleware.Logger(s.logger))
	s.app.Use(middleware.CORS(s.config.Server.CORSOrigins))
	s.app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
}

func (s *Server) setupRoutes() {
	s.app.Get("/swagger/*", fiberSwagger.WrapHandler)

	api := s.app.Group("/api/v1")

	api.Get("/health", s.healthCheck)

	api.Post("/sessions", s.handlers.Session.Create)
	api.Delete("/sessions/:id", s.handlers.Session.Close)

	sess := api.Group("/sessions/:id")

	// Map view
	sess.Get("/map", s.handlers.Map.State)
	sess.Put("/view", s.handlers.Map.SetView)
	sess.Put("/basemap", s.handlers.Map.ChangeBasemap)
	sess.Put("/zoom-percent", s.handlers.Map.ApplyZoomPercent)

	// Drawing
	sess.Post("/drafts", s.handlers.Map.OpenDraft)
	sess.Post("/drafts/:draftId/save", s.handlers.Map.SaveDraft)
	sess.Delete("/drafts/:draftId", s.handlers.Map.DiscardDraft)
	sess.Get("/features", s.handlers.Map.Features)
	sess.Get("/features/:featureId", s.handlers.Map.Feature)

	// Analysis
	sess.Post("/mode/buffer", s.handlers.Analysis.ArmBuffer)
	sess.Post("/mode/route", s.handlers.Analysis.ArmRoute)
	sess.Delete("/mode", s.handlers.Analysis.Disarm)
	sess.Post("/features/:featureId/click", s.handlers.Analysis.Click)
	sess.Delete("/analysis/buffer", s.handlers.Analysis.ClearBuffer)
	sess.Delete("/analysis/route", s.handlers.Analysis.ClearRoute)
	sess.Post("/position", s.handlers.Analysis.ReportPosition)
	sess.Get("/position", s.handlers.Analysis.Position)
	sess.Get("/notices", s.handlers.Analysis.Notices)

	// Layout
	sess.Put("/layout/meta", s.handlers.Layout.SaveMeta)
	sess.Post("/layout/export", s.handlers.Layout.Export)
	sess.Get("/layout", s.handlers.Layout.Snapshot)
	if s.handlers.LayoutView != nil {
		sess.Get("/layout/view", s.handlers.LayoutView.Render)
	}
}

func (s *Server) healthCheck(c *fiber.Ctx) error {
	status := "healthy"
	code := fiber.StatusOK
	if s.health != nil {
		if err := s.health(c.Context()); err != nil {
			s.logger.Warn("Health check failed", zap.Error(err))
			status = "degraded"
			code = fiber.StatusServiceUnavailable
		}
	}
	return c.Status(code).JSON(fiber.Map{
		"status": status,
		"time":   time.Now(),
	})
}

// Start - запуск HTTP сервера
func (s *Server) Start() error {
	addr := s.config.GetServerAddr()
	s.logger.Info("Starting HTTP server", zap.String("address", addr))
	return s.app.Listen(addr)
}

// Shutdown - graceful shutdown HTTP сервера
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server")
	return s.app.ShutdownWithContext(ctx)
}

// customErrorHandler - ошибки маршрутизации Fiber в формате API
func customErrorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		appErr := errors.ErrInternalServer

		if e, ok := err.(*fiber.Error); ok {
			code = e.Code
			appErr = errors.New(errorCode(code), e.Message, code)
		}

		logger.Error("HTTP Error",
			zap.String("path", c.Path()),
			zap.Int("status", code),
			zap.Error(err),
		)

		return c.Status(code).JSON(fiber.Map{"error": appErr})
	}
}

func errorCode(status int) string {
	switch status {
	case fiber.StatusNotFound:
		return "NOT_FOUND"
	case fiber.StatusMethodNotAllowed:
		return "METHOD_NOT_ALLOWED"
	case fiber.StatusBadRequest, fiber.StatusUnprocessableEntity:
		return "INVALID_REQUEST"
	default:
		return "INTERNAL_SERVER_ERROR"
	}
}
