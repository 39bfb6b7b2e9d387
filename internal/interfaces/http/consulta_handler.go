package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/cotizaperu/cotiza-api/internal/application/lookup"
)

// ConsultaHandler maneja la consulta de padrones DNI/RUC (protegido).
type ConsultaHandler struct {
	uc *lookup.UseCase
}

// NewConsultaHandler construye el handler.
func NewConsultaHandler(uc *lookup.UseCase) *ConsultaHandler {
	return &ConsultaHandler{uc: uc}
}

// DNI busca una persona en el padrón RENIEC.
// GET /api/consulta/dni/:numero
func (h *ConsultaHandler) DNI(c *fiber.Ctx) error {
	p, err := h.uc.ByDNI(c.Context(), c.Params("numero"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"nombre_completo":  p.FullName(),
		"nombres":          p.Nombres,
		"apellido_paterno": p.ApellidoPaterno,
		"apellido_materno": p.ApellidoMaterno,
		"numero_documento": p.NumeroDocumento,
	})
}

// RUC busca una empresa en el padrón SUNAT.
// GET /api/consulta/ruc/:numero
func (h *ConsultaHandler) RUC(c *fiber.Ctx) error {
	b, err := h.uc.ByRUC(c.Context(), c.Params("numero"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(b)
}
