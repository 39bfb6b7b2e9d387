package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/cotizaperu/cotiza-api/internal/application/billing"
	"github.com/cotizaperu/cotiza-api/internal/application/dto"
)

// GuiaHandler maneja las guías de remisión (protegido).
type GuiaHandler struct {
	uc *billing.UseCase
}

// NewGuiaHandler construye el handler.
func NewGuiaHandler(uc *billing.UseCase) *GuiaHandler {
	return &GuiaHandler{uc: uc}
}

// Create emite una guía de remisión ante SUNAT.
// POST /api/guias
func (h *GuiaHandler) Create(c *fiber.Ctx) error {
	var in dto.GuiaRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.CrearGuia(c.Context(), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List lista las guías emitidas por el negocio.
// GET /api/guias
func (h *GuiaHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.ListGuias(c.Context(), GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
