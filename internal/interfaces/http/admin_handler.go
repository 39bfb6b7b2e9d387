package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/cotizaperu/cotiza-api/internal/application/admin"
	"github.com/cotizaperu/cotiza-api/internal/application/billing"
	"github.com/cotizaperu/cotiza-api/internal/application/dto"
)

// AdminHandler maneja el panel de administración (requiere rol admin).
type AdminHandler struct {
	uc      *admin.UseCase
	billing *billing.UseCase
}

// NewAdminHandler construye el handler.
func NewAdminHandler(uc *admin.UseCase, b *billing.UseCase) *AdminHandler {
	return &AdminHandler{uc: uc, billing: b}
}

// Stats métricas globales de la plataforma.
// GET /api/admin/stats
func (h *AdminHandler) Stats(c *fiber.Ctx) error {
	out, err := h.uc.DashboardStats(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ListUsers lista todos los usuarios con su conteo de cotizaciones.
// GET /api/admin/usuarios
func (h *AdminHandler) ListUsers(c *fiber.Ctx) error {
	out, err := h.uc.ListUsers(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetUser devuelve el perfil completo de un usuario.
// GET /api/admin/usuarios/:id
func (h *AdminHandler) GetUser(c *fiber.Ctx) error {
	out, err := h.uc.GetUser(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ListUserQuotes lista las cotizaciones de un usuario concreto.
// GET /api/admin/usuarios/:id/cotizaciones
func (h *AdminHandler) ListUserQuotes(c *fiber.Ctx) error {
	out, err := h.uc.ListUserQuotes(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// QuotePDF descarga el PDF de una cotización de cualquier usuario.
// GET /api/admin/usuarios/:id/cotizaciones/:cid/pdf
func (h *AdminHandler) QuotePDF(c *fiber.Ctx) error {
	cid := paramID(c, "cid")
	if cid == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "id inválido"})
	}
	art, err := h.billing.RenderCotizacionPDF(c.Context(), c.Params("id"), cid)
	if err != nil {
		return respondError(c, err)
	}
	return sendArtifact(c, art.Data, art.Filename, art.ContentType)
}

// SetStatus activa o desactiva una cuenta. Las cuentas admin no se pueden
// desactivar.
// PUT /api/admin/usuarios/:id/status
func (h *AdminHandler) SetStatus(c *fiber.Ctx) error {
	var in dto.UserStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if err := h.uc.SetUserStatus(c.Context(), c.Params("id"), in); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "estado actualizado"})
}

// DeleteUser elimina una cuenta y todos sus datos (cascada).
// DELETE /api/admin/usuarios/:id
func (h *AdminHandler) DeleteUser(c *fiber.Ctx) error {
	if err := h.uc.DeleteUser(c.Context(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "usuario eliminado"})
}
