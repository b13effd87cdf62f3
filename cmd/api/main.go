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

	"github.com/jonacogo/jagi-erp/internal/application/analisis"
	"github.com/jonacogo/jagi-erp/internal/application/auth"
	"github.com/jonacogo/jagi-erp/internal/application/existencias"
	"github.com/jonacogo/jagi-erp/internal/application/reabastecimiento"
	"github.com/jonacogo/jagi-erp/internal/application/redistribucion"
	"github.com/jonacogo/jagi-erp/internal/infrastructure/excel"
	infrapdf "github.com/jonacogo/jagi-erp/internal/infrastructure/pdf"
	"github.com/jonacogo/jagi-erp/internal/infrastructure/postgres"
	httpRouter "github.com/jonacogo/jagi-erp/internal/interfaces/http"
	"github.com/jonacogo/jagi-erp/pkg/config"
	"github.com/jonacogo/jagi-erp/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
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

	configRepo := postgres.NewConfiguracionRepository(pool)
	ventasRepo := postgres.NewVentasRepository(pool)
	existenciasRepo := postgres.NewExistenciasRepository(pool)
	bodegaRepo := postgres.NewBodegaRepository(pool)
	analisisRepo := postgres.NewAnalisisRepository(pool)

	reabastecimientoUC := reabastecimiento.NewUseCase(configRepo, ventasRepo, existenciasRepo, bodegaRepo)
	redistribucionUC := redistribucion.NewUseCase(configRepo, ventasRepo, existenciasRepo)
	existenciasUC := existencias.NewUseCase(existenciasRepo)
	analisisUC := analisis.NewUseCase(analisisRepo, configRepo)
	authUC := auth.NewUseCase(auth.Config{
		Usuario:      cfg.Auth.Usuario,
		PasswordHash: cfg.Auth.PasswordHash,
		JWTSecret:    cfg.JWT.Secret,
		ExpMinutes:   cfg.JWT.Expiration,
		Issuer:       cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 30,
		WriteTimeout: time.Second * 60,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "JAGI ERP API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		ReabastecimientoUC: reabastecimientoUC,
		RedistribucionUC:   redistribucionUC,
		ExistenciasUC:      existenciasUC,
		AnalisisUC:         analisisUC,
		AuthUC:             authUC,
		Exporter:           excel.NewExporter(),
		PickingPDF:         infrapdf.NewPickingPDFGenerator(),
		JWTSecret:          cfg.JWT.Secret,
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
