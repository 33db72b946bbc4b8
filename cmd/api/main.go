package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/pharmatrack/pharmatrack-api/internal/application/reporting"
	infracache "github.com/pharmatrack/pharmatrack-api/internal/infrastructure/cache"
	infrapdf "github.com/pharmatrack/pharmatrack-api/internal/infrastructure/pdf"
	"github.com/pharmatrack/pharmatrack-api/internal/infrastructure/upstream"
	httpRouter "github.com/pharmatrack/pharmatrack-api/internal/interfaces/http"
	"github.com/pharmatrack/pharmatrack-api/pkg/config"
	"github.com/pharmatrack/pharmatrack-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("upstream", cfg.Upstream.BaseURL).
		Msg("iniciando aplicación")

	// Cliente del backend de farmacia (dueño de órdenes y catálogo)
	backend := upstream.NewClient(cfg.Upstream.BaseURL, cfg.Upstream.Timeout())

	// Cache de snapshots: Redis si está configurado, Noop en su defecto
	var snapshotCache reporting.SnapshotCache = infracache.NewNoopSnapshotCache()
	if cfg.Cache.Addr != "" {
		redisCache := infracache.NewRedisSnapshotCache(cfg.Cache.Addr, cfg.Cache.Password, cfg.Cache.DB)
		pingCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		if err := redisCache.Ping(pingCtx); err != nil {
			log.Warn().Err(err).Msg("Redis no disponible, se opera sin cache")
		} else {
			snapshotCache = redisCache
			defer redisCache.Close()
		}
		cancel()
	}

	pdfGenerator := infrapdf.NewMarotoReportGenerator()

	dashboardUC := reporting.NewDashboardUseCase(backend, backend, snapshotCache, cfg.Cache.TTL(), log)
	historyUC := reporting.NewHistoryUseCase(backend, log)
	exportUC := reporting.NewExportUseCase(backend, backend, pdfGenerator, log)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30, // los PDFs pueden tardar más que un JSON
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "PharmaTrack Reports API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		DashboardUC: dashboardUC,
		HistoryUC:   historyUC,
		ExportUC:    exportUC,
		JWTSecret:   cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
