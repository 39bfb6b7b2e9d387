// Package dto define los cuerpos de petición y respuesta de la API HTTP.
// Las reglas declarativas van como tags de go-playground/validator; la capa
// HTTP llama a Validate antes de pasar el DTO al caso de uso.
package dto

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/cotizaperu/cotiza-api/internal/domain"
)

var validate = validator.New()

// Validate aplica las reglas declaradas en los tags del DTO. Un fallo se
// reporta como ErrInvalidInput con el primer campo inválido.
func Validate(v any) error {
	if err := validate.Struct(v); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			f := verrs[0]
			return fmt.Errorf("%w: campo %s no cumple la regla %s", domain.ErrInvalidInput, f.Field(), f.Tag())
		}
		return fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	return nil
}

// MessageResponse respuesta genérica con un mensaje.
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse cuerpo de error que devuelve la API.
type ErrorResponse struct {
	Error string `json:"error"`
}
