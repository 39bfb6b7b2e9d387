package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/cotizaperu/cotiza-api/internal/application/dto"
	"github.com/cotizaperu/cotiza-api/internal/domain"
)

// respondError traduce un error de dominio al código HTTP que le corresponde.
// Los casos de uso envuelven los sentinelas con contexto, por eso se compara
// con errors.Is y no con igualdad directa.
func respondError(c *fiber.Ctx, err error) error {
	// El proveedor de facturación viaja con su propio status; se propaga tal
	// cual para que el cliente web muestre el mensaje real de Apis Perú.
	if perr, ok := domain.AsBillingProviderError(err); ok {
		status := perr.Status
		if status < 400 || status > 599 {
			status = fiber.StatusBadGateway
		}
		return c.Status(status).JSON(dto.ErrorResponse{Error: perr.Message})
	}

	switch {
	case errors.Is(err, domain.ErrInvalidInput),
		errors.Is(err, domain.ErrIncompleteBusinessProfile),
		errors.Is(err, domain.ErrSelfBilling),
		errors.Is(err, domain.ErrMissingProviderCredentials):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrUnauthorized):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: "credenciales inválidas"})
	case errors.Is(err, domain.ErrAccountDisabled):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Error: "acceso denegado"})
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrUserNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: "recurso no encontrado"})
	case errors.Is(err, domain.ErrEmailAlreadyExists):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrSequenceConflict):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Error: err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: err.Error()})
	}
}

func badBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "cuerpo de la petición inválido"})
}

// paramID lee un parámetro numérico de la ruta; cero indica valor inválido.
func paramID(c *fiber.Ctx, name string) int64 {
	id, err := c.ParamsInt(name)
	if err != nil || id <= 0 {
		return 0
	}
	return int64(id)
}
