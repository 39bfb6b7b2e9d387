package repository

import (
	"context"

	"github.com/cotizaperu/cotiza-api/internal/domain/entity"
)

// GuiaRepository define el puerto de persistencia para GuiaRemision.
type GuiaRepository interface {
	Create(ctx context.Context, g *entity.GuiaRemision) error
	ListByOwner(ctx context.Context, ownerID string) ([]*entity.GuiaRemision, error)
}
