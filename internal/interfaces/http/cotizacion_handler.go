package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/cotizaperu/cotiza-api/internal/application/billing"
	"github.com/cotizaperu/cotiza-api/internal/application/dto"
	"github.com/cotizaperu/cotiza-api/internal/application/quotes"
	"github.com/cotizaperu/cotiza-api/internal/application/reports"
)

// CotizacionHandler maneja el CRUD de cotizaciones, su exportación y los
// disparadores de facturación y PDF (protegido).
type CotizacionHandler struct {
	quotes  *quotes.UseCase
	billing *billing.UseCase
	reports *reports.UseCase
}

// NewCotizacionHandler construye el handler.
func NewCotizacionHandler(q *quotes.UseCase, b *billing.UseCase, r *reports.UseCase) *CotizacionHandler {
	return &CotizacionHandler{quotes: q, billing: b, reports: r}
}

// Create crea una cotización con su número autogenerado.
// POST /api/cotizaciones
func (h *CotizacionHandler) Create(c *fiber.Ctx) error {
	var in dto.CotizacionRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.quotes.Create(c.Context(), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List lista las cotizaciones del negocio, más reciente primero.
// GET /api/cotizaciones
func (h *CotizacionHandler) List(c *fiber.Ctx) error {
	out, err := h.quotes.List(c.Context(), GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ExportExcel descarga todas las cotizaciones del negocio en XLSX.
// GET /api/cotizaciones/export
func (h *CotizacionHandler) ExportExcel(c *fiber.Ctx) error {
	data, filename, err := h.reports.ExportCotizaciones(c.Context(), GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return sendArtifact(c, data, filename,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
}

// GetByID devuelve una cotización con sus líneas.
// GET /api/cotizaciones/:id
func (h *CotizacionHandler) GetByID(c *fiber.Ctx) error {
	id := paramID(c, "id")
	if id == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "id inválido"})
	}
	out, err := h.quotes.Get(c.Context(), id, GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Update reemplaza por completo los datos y líneas de una cotización.
// PUT /api/cotizaciones/:id
func (h *CotizacionHandler) Update(c *fiber.Ctx) error {
	id := paramID(c, "id")
	if id == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "id inválido"})
	}
	var in dto.CotizacionRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.quotes.Update(c.Context(), id, GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete elimina una cotización y sus líneas.
// DELETE /api/cotizaciones/:id
func (h *CotizacionHandler) Delete(c *fiber.Ctx) error {
	id := paramID(c, "id")
	if id == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "id inválido"})
	}
	if err := h.quotes.Delete(c.Context(), id, GetUserID(c)); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "cotización eliminada"})
}

// PDF descarga el PDF local de la cotización.
// GET /api/cotizaciones/:id/pdf
func (h *CotizacionHandler) PDF(c *fiber.Ctx) error {
	id := paramID(c, "id")
	if id == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "id inválido"})
	}
	art, err := h.billing.RenderCotizacionPDF(c.Context(), GetUserID(c), id)
	if err != nil {
		return respondError(c, err)
	}
	return sendArtifact(c, art.Data, art.Filename, art.ContentType)
}

// Facturar emite el comprobante electrónico de la cotización ante SUNAT.
// POST /api/cotizaciones/:id/facturar
func (h *CotizacionHandler) Facturar(c *fiber.Ctx) error {
	id := paramID(c, "id")
	if id == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "id inválido"})
	}
	var in dto.EmitirRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.billing.Facturar(c.Context(), GetUserID(c), id, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}
