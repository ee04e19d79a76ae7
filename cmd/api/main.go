package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Visitas-api/docs"
	"github.com/jhoicas/Visitas-api/internal/application/usecase"
	httpRouter "github.com/jhoicas/Visitas-api/internal/interfaces/http"
	"github.com/jhoicas/Visitas-api/pkg/clock"
	"github.com/jhoicas/Visitas-api/pkg/config"
	"github.com/jhoicas/Visitas-api/pkg/logger"
	"github.com/jhoicas/Visitas-api/pkg/validator"
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
		Str("store", cfg.Store.Driver).
		Msg("iniciando aplicación")

	startupCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	repo, closeStore, err := openStore(startupCtx, cfg, clock.NewSystem())
	cancel()
	if err != nil {
		log.Fatal().Err(err).Msg("almacén de visitantes")
	}
	defer closeStore()

	visitorUC := usecase.NewVisitorUseCase(repo, validator.New())
	metrics := httpRouter.NewMetrics(visitorUC)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})

	// Swagger UI en local: http://localhost:<port>/docs
	docs.SwaggerInfo.Title = cfg.App.Name
	if _, err := os.Stat(cfg.Swagger.File); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: cfg.Swagger.File,
			Path:     "docs",
			Title:    cfg.App.Name,
		}))
	} else {
		log.Warn().Str("file", cfg.Swagger.File).Msg("swagger.json no encontrado, /docs desactivado")
	}

	httpRouter.Router(app, httpRouter.RouterDeps{
		AppName:     cfg.App.Name,
		StoreDriver: cfg.Store.Driver,
		VisitorUC:   visitorUC,
		Logger:      log,
		Metrics:     metrics,
		CORSOrigins: cfg.HTTP.Origins(),
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

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
