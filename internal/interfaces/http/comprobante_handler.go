package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/cotizaperu/cotiza-api/internal/application/billing"
	"github.com/cotizaperu/cotiza-api/internal/application/dto"
)

// ComprobanteHandler maneja la consulta y descargas de comprobantes (protegido).
type ComprobanteHandler struct {
	uc *billing.UseCase
}

// NewComprobanteHandler construye el handler.
func NewComprobanteHandler(uc *billing.UseCase) *ComprobanteHandler {
	return &ComprobanteHandler{uc: uc}
}

// List lista los comprobantes del negocio; ?tipo_doc=01|03 filtra por tipo.
// GET /api/comprobantes
func (h *ComprobanteHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.ListComprobantes(c.Context(), GetUserID(c), c.Query("tipo_doc"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetByID devuelve un comprobante.
// GET /api/comprobantes/:id
func (h *ComprobanteHandler) GetByID(c *fiber.Ctx) error {
	id := paramID(c, "id")
	if id == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "id inválido"})
	}
	out, err := h.uc.GetComprobante(c.Context(), id, GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Descargar entrega un artefacto del comprobante: el PDF o XML del proveedor,
// o el CDR de SUNAT extraído de la respuesta persistida.
// GET /api/comprobantes/:id/descargar/:kind  (kind: pdf | xml | cdr)
func (h *ComprobanteHandler) Descargar(c *fiber.Ctx) error {
	id := paramID(c, "id")
	if id == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "id inválido"})
	}
	art, err := h.uc.DescargarComprobante(c.Context(), GetUserID(c), id, c.Params("kind"))
	if err != nil {
		return respondError(c, err)
	}
	return sendArtifact(c, art.Data, art.Filename, art.ContentType)
}

// PDF descarga la representación impresa generada localmente, con la
// identidad visual del negocio.
// GET /api/comprobantes/:id/pdf
func (h *ComprobanteHandler) PDF(c *fiber.Ctx) error {
	id := paramID(c, "id")
	if id == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "id inválido"})
	}
	art, err := h.uc.RenderComprobantePDF(c.Context(), GetUserID(c), id)
	if err != nil {
		return respondError(c, err)
	}
	return sendArtifact(c, art.Data, art.Filename, art.ContentType)
}
