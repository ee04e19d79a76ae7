package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/Visitas-api/internal/application/usecase"
	"github.com/jhoicas/Visitas-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AppName     string
	StoreDriver string
	VisitorUC   *usecase.VisitorUseCase
	Logger      *logger.Logger
	Metrics     *Metrics // nil desactiva /metrics
	CORSOrigins []string // vacío desactiva CORS
}

// Router registra middlewares y rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	log := deps.Logger
	if log == nil {
		log = logger.Nop()
	}

	app.Use(RequestID())
	app.Use(RequestLogger(log))
	// Métricas por fuera de recover para contar los pánicos como 500.
	if deps.Metrics != nil {
		app.Use(deps.Metrics.Middleware())
	}
	app.Use(recover.New())
	if len(deps.CORSOrigins) > 0 {
		app.Use(cors.New(cors.Config{
			AllowOrigins: strings.Join(deps.CORSOrigins, ","),
			AllowMethods: "GET,POST,PATCH,OPTIONS",
			AllowHeaders: "Content-Type,X-Request-Id",
		}))
	}
	if deps.Metrics != nil {
		app.Get("/metrics", deps.Metrics.Handler())
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": deps.AppName, "store": deps.StoreDriver})
	})

	api := app.Group("/api")

	visitors := api.Group("/visitors")
	visitorHandler := NewVisitorHandler(deps.VisitorUC, log, deps.Metrics)
	visitors.Get("/", visitorHandler.List)
	visitors.Post("/", visitorHandler.Create)
	visitors.Get("/stats", visitorHandler.Stats)
	visitors.Get("/:id", visitorHandler.GetByID)
	visitors.Patch("/:id/logout", visitorHandler.Logout)
}
