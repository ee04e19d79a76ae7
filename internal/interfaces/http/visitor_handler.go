package http

import (
	"bytes"
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Visitas-api/internal/application/dto"
	"github.com/jhoicas/Visitas-api/internal/application/usecase"
	"github.com/jhoicas/Visitas-api/internal/domain"
	"github.com/jhoicas/Visitas-api/pkg/logger"
	"github.com/jhoicas/Visitas-api/pkg/validator"
)

// VisitorHandler maneja las peticiones HTTP del registro de visitas.
type VisitorHandler struct {
	uc      *usecase.VisitorUseCase
	log     *logger.Logger
	metrics *Metrics
}

// NewVisitorHandler construye el handler. metrics puede ser nil.
func NewVisitorHandler(uc *usecase.VisitorUseCase, log *logger.Logger, metrics *Metrics) *VisitorHandler {
	if log == nil {
		log = logger.Nop()
	}
	return &VisitorHandler{uc: uc, log: log, metrics: metrics}
}

// List godoc
// @Summary      Listar visitantes
// @Description  Todos los visitantes, entrada más reciente primero.
// @Tags         visitors
// @Produce      json
// @Success      200  {array}   dto.VisitorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/visitors [get]
func (h *VisitorHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext())
	if err != nil {
		return h.internalError(c, err, "Failed to fetch visitors")
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Registrar entrada de visitante
// @Tags         visitors
// @Accept       json
// @Produce      json
// @Param        body  body      dto.CreateVisitorRequest  true  "Nombre y móvil"
// @Success      201   {object}  dto.VisitorResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /api/visitors [post]
func (h *VisitorHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateVisitorRequest
	// Un cuerpo vacío se valida como objeto vacío y reporta ambos campos.
	if body := bytes.TrimSpace(c.Body()); len(body) > 0 {
		if err := c.App().Config().JSONDecoder(body, &in); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "Invalid request body"})
		}
	}

	out, err := h.uc.SignIn(c.UserContext(), in)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			resp := dto.ErrorResponse{Code: "VALIDATION", Message: "Validation failed"}
			var vErr *validator.ValidationError
			if errors.As(err, &vErr) {
				resp.Errors = vErr.Fields
			}
			return c.Status(fiber.StatusBadRequest).JSON(resp)
		}
		return h.internalError(c, err, "Failed to create visitor")
	}
	h.metrics.signIn()
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener visitante por ID
// @Tags         visitors
// @Produce      json
// @Param        id   path      int  true  "ID del visitante"
// @Success      200  {object}  dto.VisitorResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/visitors/{id} [get]
func (h *VisitorHandler) GetByID(c *fiber.Ctx) error {
	id, err := parseID(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ID", Message: "Invalid visitor ID"})
	}
	out, err := h.uc.GetByID(c.UserContext(), id)
	if errors.Is(err, domain.ErrNotFound) {
		return notFound(c)
	}
	if err != nil {
		return h.internalError(c, err, "Failed to fetch visitor")
	}
	return c.JSON(out)
}

// Logout godoc
// @Summary      Registrar salida de visitante
// @Description  Repetir la salida devuelve el registro sin modificar la hora de salida.
// @Tags         visitors
// @Produce      json
// @Param        id   path      int  true  "ID del visitante"
// @Success      200  {object}  dto.VisitorResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/visitors/{id}/logout [patch]
func (h *VisitorHandler) Logout(c *fiber.Ctx) error {
	id, err := parseID(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ID", Message: "Invalid visitor ID"})
	}
	out, err := h.uc.SignOut(c.UserContext(), id)
	if errors.Is(err, domain.ErrNotFound) {
		return notFound(c)
	}
	if err != nil {
		return h.internalError(c, err, "Failed to update visitor logout")
	}
	h.metrics.signOut()
	return c.JSON(out)
}

// Stats godoc
// @Summary      Totales de visitantes
// @Tags         visitors
// @Produce      json
// @Success      200  {object}  dto.VisitorStatsResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/visitors/stats [get]
func (h *VisitorHandler) Stats(c *fiber.Ctx) error {
	out, err := h.uc.Stats(c.UserContext())
	if err != nil {
		return h.internalError(c, err, "Failed to fetch visitor stats")
	}
	return c.JSON(out)
}

// internalError registra la causa y responde 500 sin exponerla.
func (h *VisitorHandler) internalError(c *fiber.Ctx, err error, msg string) error {
	h.log.Error().Err(err).
		Str("request_id", GetRequestID(c)).
		Str("route", c.Route().Path).
		Msg(msg)
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: msg})
}

func notFound(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "Visitor not found"})
}

// parseID solo rechaza lo que no es un entero; 0 y negativos llegan al almacén y dan 404.
func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, domain.ErrInvalidID
	}
	return id, nil
}
