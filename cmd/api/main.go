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

	"github.com/jhoicas/Granja-api/internal/application/feed"
	infrapdf "github.com/jhoicas/Granja-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Granja-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/Granja-api/internal/interfaces/http"
	"github.com/jhoicas/Granja-api/internal/scheduler"
	"github.com/jhoicas/Granja-api/pkg/config"
	"github.com/jhoicas/Granja-api/pkg/logger"
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
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	consRepo := postgres.NewConsumptionRepository(pool)
	stockRepo := postgres.NewFeedStockRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	stockUC := feed.NewStockUseCase(txRunner, consRepo, stockRepo)
	consumptionUC := feed.NewConsumptionUseCase(txRunner, consRepo, stockUC)

	// PDF: informe imprimible del stock de alimento
	reportGenerator := infrapdf.NewMarotoReportGenerator()
	reportUC := feed.NewReportUseCase(stockRepo, reportGenerator)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Granja API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		ConsumptionUC: consumptionUC,
		StockUC:       stockUC,
		ReportUC:      reportUC,
		JWTSecret:     cfg.JWT.Secret,
	})

	// Recálculo nocturno de tasa y proyección por tipo de alimento
	sched := scheduler.New(cfg.Scheduler, stockUC)
	sched.Start()

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	sched.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
