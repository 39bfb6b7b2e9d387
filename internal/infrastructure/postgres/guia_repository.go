package postgres

import (
	"context"
	"fmt"

	"github.com/cotizaperu/cotiza-api/internal/domain/entity"
	"github.com/cotizaperu/cotiza-api/internal/domain/repository"
)

var _ repository.GuiaRepository = (*GuiaRepo)(nil)

// GuiaRepo implementación de GuiaRepository sobre PostgreSQL (usable con pool o tx).
type GuiaRepo struct {
	q Querier
}

// NewGuiaRepository construye el adaptador. Pasar pool o tx (Querier).
func NewGuiaRepository(q Querier) *GuiaRepo {
	return &GuiaRepo{q: q}
}

// Create persiste la guía emitida.
func (r *GuiaRepo) Create(ctx context.Context, g *entity.GuiaRemision) error {
	err := r.q.QueryRow(ctx, `
		INSERT INTO guias_remision (serie, correlativo, fecha_emision, destinatario,
			exito, sunat_response, hash, payload_enviado, owner_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id`,
		g.Serie, g.Correlativo, g.FechaEmision, g.Destinatario,
		g.Exito, g.SunatResponse, nullIfEmpty(g.Hash), g.PayloadEnviado, g.OwnerID,
	).Scan(&g.ID)
	if err != nil {
		return fmt.Errorf("insert guia: %w", err)
	}
	return nil
}

// ListByOwner lista las guías del dueño, más reciente primero.
func (r *GuiaRepo) ListByOwner(ctx context.Context, ownerID string) ([]*entity.GuiaRemision, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, serie, correlativo, fecha_emision, destinatario,
		       exito, sunat_response, hash, payload_enviado, owner_id
		FROM guias_remision
		WHERE owner_id = $1
		ORDER BY id DESC`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list guias: %w", err)
	}
	defer rows.Close()

	var out []*entity.GuiaRemision
	for rows.Next() {
		var g entity.GuiaRemision
		var hash *string
		if err := rows.Scan(&g.ID, &g.Serie, &g.Correlativo, &g.FechaEmision, &g.Destinatario,
			&g.Exito, &g.SunatResponse, &hash, &g.PayloadEnviado, &g.OwnerID); err != nil {
			return nil, fmt.Errorf("scan guia: %w", err)
		}
		g.Hash = derefStr(hash)
		out = append(out, &g)
	}
	return out, rows.Err()
}
