package repository

import (
	"context"

	"github.com/cotizaperu/cotiza-api/internal/domain/entity"
)

// ComprobanteRepository define el puerto de persistencia para Comprobante.
type ComprobanteRepository interface {
	// Create persiste el comprobante y, si CotizacionID no es cero, enlaza la
	// cotización de origen (comprobante_id) en la misma transacción.
	Create(ctx context.Context, c *entity.Comprobante) error
	GetByID(ctx context.Context, id int64, ownerID string) (*entity.Comprobante, error)
	// ListByOwner lista comprobantes del dueño, opcionalmente filtrados por tipo de documento.
	ListByOwner(ctx context.Context, ownerID, tipoDoc string) ([]*entity.Comprobante, error)
}
