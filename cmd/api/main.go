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

	"github.com/jhoicas/bill-detail/internal/application/billing"
	inframetrics "github.com/jhoicas/bill-detail/internal/infrastructure/metrics"
	infrapdf "github.com/jhoicas/bill-detail/internal/infrastructure/pdf"
	"github.com/jhoicas/bill-detail/internal/infrastructure/storage"
	httpRouter "github.com/jhoicas/bill-detail/internal/interfaces/http"
	"github.com/jhoicas/bill-detail/internal/interfaces/view"
	"github.com/jhoicas/bill-detail/pkg/config"
	"github.com/jhoicas/bill-detail/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("driver", cfg.DB.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()
	backend, err := storage.Open(ctx, cfg.DB, log.Zerolog())
	if err != nil {
		log.Fatal().Err(err).Msg("abrir almacén")
	}
	defer backend.Close()

	recorder := inframetrics.NewRecorder("billdetail")

	// PDF: LETTER, título fijo, compresión según EXPORT_COMPRESS
	pdfGenerator := infrapdf.NewMarotoPDFGenerator(infrapdf.Config{
		Title:    cfg.View.Title,
		Compress: cfg.Export.Compress,
	})
	detailUC := billing.NewDetailUseCase(backend.Store, recorder, log.Zerolog())
	exportUC := billing.NewExportUseCase(backend.Store, pdfGenerator,
		billing.ExportConfig{OutputDir: cfg.Export.OutputDir}, recorder, log.Zerolog())

	style := view.DefaultStyle()
	style.Title = cfg.View.Title
	style.Currency = cfg.View.Currency
	style.PartyFormat = cfg.View.PartyFormat
	style.WindowWidth = cfg.View.WindowWidth
	style.WindowHeight = cfg.View.WindowHeight

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Bill Detail API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name, "driver": backend.Driver})
	})

	if cfg.JWT.Secret == "" {
		log.Warn().Msg("JWT_SECRET vacío: /api sin autenticación")
	}
	httpRouter.Router(app, httpRouter.RouterDeps{
		Detail:    detailUC,
		Export:    exportUC,
		Style:     style,
		JWTSecret: cfg.JWT.Secret,
		Metrics:   recorder.Handler(),
		Log:       log.Zerolog(),
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
