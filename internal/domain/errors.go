package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrAccountDisabled    = errors.New("cuenta desactivada")

	// Facturación electrónica.
	ErrIncompleteBusinessProfile  = errors.New("datos de la empresa (RUC, razón social, dirección) incompletos en el perfil")
	ErrSelfBilling                = errors.New("no se puede emitir un comprobante al RUC de la propia empresa")
	ErrMissingProviderCredentials = errors.New("credenciales de Apis Perú no configuradas en el perfil")

	// Numeración de documentos.
	ErrInvalidSequenceState = errors.New("el último número almacenado no es numérico")
	ErrSequenceConflict     = errors.New("colisión de numeración, reintentar")
)

// BillingProviderError error devuelto por el proveedor de facturación (Apis Perú).
// Message es el mensaje del proveedor ya aplanado (objeto único o lista de
// errores de campo unidos con "; ").
type BillingProviderError struct {
	Status  int
	Message string
}

func (e *BillingProviderError) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("error %d de la API de facturación: %s", e.Status, e.Message)
	}
	return "error de la API de facturación: " + e.Message
}

// AsBillingProviderError extrae el error del proveedor de una cadena de wraps.
func AsBillingProviderError(err error) (*BillingProviderError, bool) {
	var pe *BillingProviderError
	if errors.As(err, &pe) {
		return pe, true
	}
	return nil, false
}
