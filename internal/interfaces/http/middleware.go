package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"

	"github.com/jhoicas/Visitas-api/pkg/logger"
)

// LocalRequestID key en c.Locals del ID de petición.
const LocalRequestID = "request_id"

// RequestID reutiliza X-Request-Id si llega, si no genera un UUID.
func RequestID() fiber.Handler {
	return requestid.New(requestid.Config{
		Header:     fiber.HeaderXRequestID,
		Generator:  uuid.NewString,
		ContextKey: LocalRequestID,
	})
}

// GetRequestID devuelve el ID de petición (después del middleware RequestID).
func GetRequestID(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalRequestID).(string)
	return s
}

// quietPaths se registran en debug mientras respondan bien (sondas y scrapes).
var quietPaths = map[string]bool{"/health": true, "/metrics": true}

// RequestLogger registra método, ruta, estado y latencia de cada petición.
// Los errores de la cadena se resuelven con el ErrorHandler de la app antes de registrar.
func RequestLogger(log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		chainErr := c.Next()
		if chainErr != nil {
			if err := c.App().ErrorHandler(c, chainErr); err != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		status := c.Response().StatusCode()
		event := log.Info()
		switch {
		case status >= fiber.StatusInternalServerError:
			event = log.Error().Err(chainErr)
		case status >= fiber.StatusBadRequest:
			event = log.Warn()
		case quietPaths[c.Path()]:
			event = log.Debug()
		}
		event.
			Str("request_id", GetRequestID(c)).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Str("ip", c.IP()).
			Msg("petición HTTP")
		return nil
	}
}
