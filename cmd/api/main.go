package main

// @title Map Layout Service API
// @version 1.0.0
// @description Сервис интерактивной карты для разметки: рисование точек, линий и полигонов, буфер вокруг маркера, маршрут от позиции устройства до маркера и экспорт макета с легендой.
// @description
// @description Основные возможности:
// @description - Черновики объектов с именем слоя и цветом
// @description - Режимы анализа: буфер и маршрут
// @description - Позиция устройства через HTTP или Redis Stream
// @description - Снимок макета для окна печати

// @contact.name API Support

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /
// @schemes http https

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/map-layout-service/docs"
	"github.com/map-layout-service/internal/analysis"
	"github.com/map-layout-service/internal/config"
	httpDelivery "github.com/map-layout-service/internal/delivery/http"
	"github.com/map-layout-service/internal/delivery/http/handler"
	"github.com/map-layout-service/internal/domain/repository"
	"github.com/map-layout-service/internal/infrastructure/directions"
	"github.com/map-layout-service/internal/layout"
	"github.com/map-layout-service/internal/location"
	"github.com/map-layout-service/internal/pkg/logger"
	"github.com/map-layout-service/internal/repository/cache"
	redisRepo "github.com/map-layout-service/internal/repository/redis"
	"github.com/map-layout-service/internal/session"
	"github.com/map-layout-service/internal/usecase"
	"github.com/map-layout-service/internal/worker"
	"github.com/map-layout-service/internal/worker/position"
	"go.uber.org/zap"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// 2. Initialize logger
	log, err := logger.New(cfg.Log.Level)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting Map Layout Service")
	log.Info("Configuration loaded",
		zap.String("env", cfg.Server.Env),
		zap.String("server_addr", cfg.GetServerAddr()),
		zap.String("router_provider", cfg.Router.Provider),
		zap.Bool("redis_enabled", cfg.Redis.Enabled),
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 3. Session storage: Redis when enabled, in-process map otherwise
	var (
		redisClient *cache.Redis
		kvRepo      repository.KVRepository
		health      httpDelivery.HealthFunc
	)
	if cfg.Redis.Enabled {
		redisClient, err = cache.NewRedis(&cfg.Redis, log)
		if err != nil {
			log.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		kvRepo = cache.NewKVRepository(redisClient)
		health = redisClient.Health
		log.Info("Redis connected", zap.String("addr", cfg.GetRedisAddr()))
	} else {
		kvRepo = cache.NewMemoryRepository(log)
		log.Info("Using in-memory session storage")
	}

	// 4. Domain services
	tracker := location.NewTracker(cfg.Locator.Timeout, cfg.Locator.MaxAge, log)
	router := directions.NewClient(&cfg.Router, log)

	exporter, err := layout.NewExporter(kvRepo, layout.Options{
		TTL:          cfg.Session.TTL,
		DefaultTitle: cfg.Layout.DefaultTitle,
		ViewerPath:   cfg.Layout.ViewerPath,
		MinifyLegend: cfg.Layout.MinifyLegend,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize layout exporter", zap.Error(err))
	}

	manager := session.NewManager(session.Deps{
		Tracker:     tracker,
		Router:      router,
		Bufferer:    analysis.NewGeodesicBufferer(cfg.Buffer.Segments),
		Purger:      exporter,
		TTL:         cfg.Session.TTL,
		NoticeLimit: cfg.Session.NoticeLimit,
	}, log)
	go manager.Run(ctx, cfg.Session.SweepInterval)

	log.Info("Services initialized")

	// 5. Initialize Use Cases
	sessionUC := usecase.NewSessionUseCase(manager, log)
	mapUC := usecase.NewMapUseCase(manager, log)
	analysisUC := usecase.NewAnalysisUseCase(manager, tracker, log)
	layoutUC := usecase.NewLayoutUseCase(manager, exporter, log)

	// 6. Initialize HTTP Server
	layoutViewHandler, err := handler.NewLayoutViewHandler(layoutUC, log)
	if err != nil {
		log.Fatal("Failed to load layout templates", zap.Error(err))
	}

	server := httpDelivery.NewServer(cfg, log, httpDelivery.Handlers{
		Session:    handler.NewSessionHandler(sessionUC, log),
		Map:        handler.NewMapHandler(mapUC, log),
		Analysis:   handler.NewAnalysisHandler(analysisUC, log),
		Layout:     handler.NewLayoutHandler(layoutUC, log),
		LayoutView: layoutViewHandler,
	}, health)

	// 7. Position stream worker
	var workerManager *worker.WorkerManager
	if cfg.Worker.Enabled {
		if redisClient == nil {
			log.Warn("Position worker requires Redis, skipping", zap.String("stream", cfg.Worker.PositionStream))
		} else {
			streamRepo := redisRepo.NewStreamRepository(redisClient.Client(), cfg.Worker.StreamReadTimeout, log)
			workerManager = worker.NewWorkerManager(log)
			workerManager.Register(position.NewWorker(
				streamRepo,
				manager,
				tracker,
				cfg.Worker.PositionStream,
				cfg.Worker.ConsumerGroup,
				log,
			))
			if err := workerManager.Start(ctx); err != nil {
				log.Fatal("Failed to start workers", zap.Error(err))
			}
		}
	}

	// 8. Start server in goroutine
	go func() {
		if err := server.Start(); err != nil {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	log.Info("Server started successfully",
		zap.String("address", cfg.GetServerAddr()),
		zap.String("env", cfg.Server.Env),
	)

	// 9. Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server gracefully...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Server shutdown error", zap.Error(err))
	}

	cancel()
	if workerManager != nil {
		if err := workerManager.Stop(shutdownCtx); err != nil {
			log.Error("Error stopping workers", zap.Error(err))
		}
	}

	manager.CloseAll(shutdownCtx)

	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			log.Error("Failed to close Redis", zap.Error(err))
		}
	}

	log.Info("Server stopped successfully")
}
