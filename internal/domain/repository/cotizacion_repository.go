package repository

import (
	"context"

	"github.com/cotizaperu/cotiza-api/internal/domain/entity"
)

// CotizacionRepository define el puerto de persistencia para Cotizacion y sus líneas.
type CotizacionRepository interface {
	// Create persiste la cabecera (con número ya asignado) y sus productos.
	Create(ctx context.Context, c *entity.Cotizacion) error
	// GetByID carga la cotización con sus productos; nil si no existe o no es del dueño.
	GetByID(ctx context.Context, id int64, ownerID string) (*entity.Cotizacion, error)
	// ListByOwner lista cabeceras del dueño (sin productos), más reciente primero.
	ListByOwner(ctx context.Context, ownerID string) ([]*entity.Cotizacion, error)
	// Update reescribe la cabecera y reemplaza las líneas completas
	// (delete-all + reinsert), todo dentro de la misma transacción.
	Update(ctx context.Context, c *entity.Cotizacion) error
	// Delete borra la cotización del dueño junto con sus líneas y con el
	// comprobante vinculado, si lo hay, en una sola transacción.
	Delete(ctx context.Context, id int64, ownerID string) error
}
