package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cotizaperu/cotiza-api/internal/domain/entity"
	"github.com/cotizaperu/cotiza-api/internal/domain/repository"
)

var _ repository.ComprobanteRepository = (*ComprobanteRepo)(nil)

// ComprobanteRepo implementación de ComprobanteRepository sobre PostgreSQL.
// Usa el pool directamente porque el alta enlaza la cotización de origen en
// la misma transacción.
type ComprobanteRepo struct {
	pool *pgxpool.Pool
}

// NewComprobanteRepository construye el adaptador.
func NewComprobanteRepository(pool *pgxpool.Pool) *ComprobanteRepo {
	return &ComprobanteRepo{pool: pool}
}

// Create persiste el comprobante y, si viene de una cotización, la enlaza.
func (r *ComprobanteRepo) Create(ctx context.Context, c *entity.Comprobante) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	err = tx.QueryRow(ctx, `
		INSERT INTO comprobantes (tipo_doc, serie, correlativo, fecha_emision, exito,
			sunat_response, hash, payload_enviado, owner_id, cotizacion_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NULLIF($10, 0))
		RETURNING id`,
		c.TipoDoc, c.Serie, c.Correlativo, c.FechaEmision, c.Exito,
		c.SunatResponse, nullIfEmpty(c.Hash), c.PayloadEnviado, c.OwnerID, c.CotizacionID,
	).Scan(&c.ID)
	if err != nil {
		return fmt.Errorf("insert comprobante: %w", err)
	}

	if c.CotizacionID != 0 {
		_, err = tx.Exec(ctx,
			`UPDATE cotizaciones SET comprobante_id = $2 WHERE id = $1`,
			c.CotizacionID, c.ID)
		if err != nil {
			return fmt.Errorf("enlazar cotizacion: %w", err)
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

const comprobanteColumns = `
	id, tipo_doc, serie, correlativo, fecha_emision, exito,
	sunat_response, hash, payload_enviado, owner_id, COALESCE(cotizacion_id, 0)`

func scanComprobante(s pgxScanner) (*entity.Comprobante, error) {
	var c entity.Comprobante
	var hash *string
	err := s.Scan(&c.ID, &c.TipoDoc, &c.Serie, &c.Correlativo, &c.FechaEmision, &c.Exito,
		&c.SunatResponse, &hash, &c.PayloadEnviado, &c.OwnerID, &c.CotizacionID)
	if err != nil {
		return nil, err
	}
	c.Hash = derefStr(hash)
	return &c, nil
}

// GetByID obtiene un comprobante del dueño; nil si no existe.
func (r *ComprobanteRepo) GetByID(ctx context.Context, id int64, ownerID string) (*entity.Comprobante, error) {
	query := `SELECT ` + comprobanteColumns + ` FROM comprobantes WHERE id = $1 AND owner_id = $2`
	c, err := scanComprobante(r.pool.QueryRow(ctx, query, id, ownerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get comprobante: %w", err)
	}
	return c, nil
}

// ListByOwner lista comprobantes del dueño, más reciente primero; tipoDoc
// filtra por "01"/"03" si no está vacío.
func (r *ComprobanteRepo) ListByOwner(ctx context.Context, ownerID, tipoDoc string) ([]*entity.Comprobante, error) {
	query := `SELECT ` + comprobanteColumns + `
		FROM comprobantes
		WHERE owner_id = $1 AND ($2 = '' OR tipo_doc = $2)
		ORDER BY id DESC`
	rows, err := r.pool.Query(ctx, query, ownerID, tipoDoc)
	if err != nil {
		return nil, fmt.Errorf("list comprobantes: %w", err)
	}
	defer rows.Close()

	var out []*entity.Comprobante
	for rows.Next() {
		c, err := scanComprobante(rows)
		if err != nil {
			return nil, fmt.Errorf("scan comprobante: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
