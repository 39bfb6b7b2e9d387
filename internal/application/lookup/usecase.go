// Package lookup consulta los padrones públicos de identidad: DNI (RENIEC) y
// RUC (SUNAT), a través de apis.net.pe. Es un apoyo del formulario de
// cotización para autocompletar los datos del cliente.
package lookup

import (
	"context"
	"fmt"

	"github.com/cotizaperu/cotiza-api/internal/domain"
	"github.com/cotizaperu/cotiza-api/pkg/logger"
)

// Person resultado de una consulta por DNI.
type Person struct {
	Nombres         string `json:"nombres"`
	ApellidoPaterno string `json:"apellido_paterno"`
	ApellidoMaterno string `json:"apellido_materno"`
	NumeroDocumento string `json:"numero_documento"`
}

// FullName devuelve el nombre completo en una sola línea.
func (p Person) FullName() string {
	return fmt.Sprintf("%s %s %s", p.Nombres, p.ApellidoPaterno, p.ApellidoMaterno)
}

// Business resultado de una consulta por RUC.
type Business struct {
	RazonSocial     string `json:"razon_social"`
	NumeroDocumento string `json:"numero_documento"`
	Direccion       string `json:"direccion"`
	Estado          string `json:"estado"`
	Condicion       string `json:"condicion"`
}

// Directory puerto hacia el servicio de padrones.
type Directory interface {
	FindPersonByDNI(ctx context.Context, dni string) (*Person, error)
	FindBusinessByRUC(ctx context.Context, ruc string) (*Business, error)
}

// UseCase casos de uso de consulta de identidad.
type UseCase struct {
	dir Directory
	log *logger.Logger
}

// New crea el caso de uso.
func New(dir Directory, log *logger.Logger) *UseCase {
	return &UseCase{dir: dir, log: log}
}

// ByDNI busca una persona por su DNI (8 dígitos).
func (uc *UseCase) ByDNI(ctx context.Context, dni string) (*Person, error) {
	if len(dni) != 8 || !isDigits(dni) {
		return nil, fmt.Errorf("%w: el DNI debe tener 8 dígitos", domain.ErrInvalidInput)
	}
	p, err := uc.dir.FindPersonByDNI(ctx, dni)
	if err != nil {
		return nil, fmt.Errorf("lookup: consultando DNI: %w", err)
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	return p, nil
}

// ByRUC busca un contribuyente por su RUC (11 dígitos).
func (uc *UseCase) ByRUC(ctx context.Context, ruc string) (*Business, error) {
	if len(ruc) != 11 || !isDigits(ruc) {
		return nil, fmt.Errorf("%w: el RUC debe tener 11 dígitos", domain.ErrInvalidInput)
	}
	b, err := uc.dir.FindBusinessByRUC(ctx, ruc)
	if err != nil {
		return nil, fmt.Errorf("lookup: consultando RUC: %w", err)
	}
	if b == nil {
		return nil, domain.ErrNotFound
	}
	return b, nil
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
