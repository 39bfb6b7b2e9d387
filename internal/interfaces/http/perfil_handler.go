package http

import (
	"io"

	"github.com/gofiber/fiber/v2"

	"github.com/cotizaperu/cotiza-api/internal/application/dto"
	"github.com/cotizaperu/cotiza-api/internal/application/profile"
)

// Tamaño máximo aceptado para el logo (2 MiB).
const maxLogoSize = 2 << 20

// PerfilHandler maneja el perfil del negocio (protegido).
type PerfilHandler struct {
	uc *profile.UseCase
}

// NewPerfilHandler construye el handler.
func NewPerfilHandler(uc *profile.UseCase) *PerfilHandler {
	return &PerfilHandler{uc: uc}
}

// Get devuelve el perfil del usuario autenticado.
// GET /api/perfil
func (h *PerfilHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.Context(), GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Update aplica una actualización parcial del perfil.
// PUT /api/perfil
func (h *PerfilHandler) Update(c *fiber.Ctx) error {
	var in dto.ProfileUpdateRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Update(c.Context(), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// UploadLogo recibe el logo como multipart (campo "logo").
// POST /api/perfil/logo
func (h *PerfilHandler) UploadLogo(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("logo")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "se requiere el archivo multipart \"logo\""})
	}
	if fileHeader.Size > maxLogoSize {
		return c.Status(fiber.StatusRequestEntityTooLarge).JSON(dto.ErrorResponse{Error: "el logo no puede superar 2 MB"})
	}

	f, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "no se pudo leer el archivo"})
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "no se pudo leer el archivo"})
	}

	out, err := h.uc.UploadLogo(c.Context(), GetUserID(c), fileHeader.Filename, data)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
