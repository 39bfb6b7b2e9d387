package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cotizaperu/cotiza-api/internal/domain"
	"github.com/cotizaperu/cotiza-api/internal/domain/entity"
	"github.com/cotizaperu/cotiza-api/internal/domain/repository"
)

var _ repository.CotizacionRepository = (*CotizacionRepo)(nil)

// CotizacionRepo implementación de CotizacionRepository sobre PostgreSQL.
// Usa el pool directamente porque cabecera y líneas se escriben siempre
// juntas, en una transacción propia.
type CotizacionRepo struct {
	pool *pgxpool.Pool
}

// NewCotizacionRepository construye el adaptador.
func NewCotizacionRepository(pool *pgxpool.Pool) *CotizacionRepo {
	return &CotizacionRepo{pool: pool}
}

// Create inserta la cabecera y sus productos en una transacción. Un choque
// con el índice único de numero se reporta como ErrSequenceConflict para que
// el caso de uso reintente con un número nuevo.
func (r *CotizacionRepo) Create(ctx context.Context, c *entity.Cotizacion) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	c.FechaCreacion = time.Now()
	err = tx.QueryRow(ctx, `
		INSERT INTO cotizaciones (numero, nombre_cliente, direccion_cliente,
			tipo_documento, nro_documento, moneda, monto_total, fecha_creacion, owner_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id`,
		c.Numero, c.NombreCliente, nullIfEmpty(c.DireccionCliente),
		c.TipoDocumento, c.NroDocumento, c.Moneda, c.MontoTotal, c.FechaCreacion, c.OwnerID,
	).Scan(&c.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrSequenceConflict
		}
		return fmt.Errorf("insert cotizacion: %w", err)
	}

	if err := insertProductos(ctx, tx, c); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// Update reescribe la cabecera y reemplaza las líneas completas
// (delete-all + reinsert) en una transacción.
func (r *CotizacionRepo) Update(ctx context.Context, c *entity.Cotizacion) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	tag, err := tx.Exec(ctx, `
		UPDATE cotizaciones
		SET nombre_cliente = $3, direccion_cliente = $4, tipo_documento = $5,
		    nro_documento = $6, moneda = $7, monto_total = $8
		WHERE id = $1 AND owner_id = $2`,
		c.ID, c.OwnerID,
		c.NombreCliente, nullIfEmpty(c.DireccionCliente), c.TipoDocumento,
		c.NroDocumento, c.Moneda, c.MontoTotal,
	)
	if err != nil {
		return fmt.Errorf("update cotizacion: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}

	if _, err := tx.Exec(ctx, `DELETE FROM productos WHERE cotizacion_id = $1`, c.ID); err != nil {
		return fmt.Errorf("delete productos: %w", err)
	}
	if err := insertProductos(ctx, tx, c); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

func insertProductos(ctx context.Context, tx pgx.Tx, c *entity.Cotizacion) error {
	for i := range c.Productos {
		p := &c.Productos[i]
		p.CotizacionID = c.ID
		err := tx.QueryRow(ctx, `
			INSERT INTO productos (cotizacion_id, descripcion, unidades, precio_unitario, total)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id`,
			c.ID, p.Descripcion, p.Unidades, p.PrecioUnitario, p.Total,
		).Scan(&p.ID)
		if err != nil {
			return fmt.Errorf("insert producto: %w", err)
		}
	}
	return nil
}

// GetByID carga la cotización con sus productos; nil si no existe o no es del dueño.
func (r *CotizacionRepo) GetByID(ctx context.Context, id int64, ownerID string) (*entity.Cotizacion, error) {
	var c entity.Cotizacion
	var direccion *string
	err := r.pool.QueryRow(ctx, `
		SELECT id, numero, nombre_cliente, direccion_cliente, tipo_documento,
		       nro_documento, moneda, monto_total, fecha_creacion, owner_id,
		       COALESCE(comprobante_id, 0)
		FROM cotizaciones
		WHERE id = $1 AND owner_id = $2`,
		id, ownerID,
	).Scan(&c.ID, &c.Numero, &c.NombreCliente, &direccion, &c.TipoDocumento,
		&c.NroDocumento, &c.Moneda, &c.MontoTotal, &c.FechaCreacion, &c.OwnerID,
		&c.ComprobanteID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get cotizacion: %w", err)
	}
	c.DireccionCliente = derefStr(direccion)

	rows, err := r.pool.Query(ctx, `
		SELECT id, descripcion, unidades, precio_unitario, total, cotizacion_id
		FROM productos WHERE cotizacion_id = $1 ORDER BY id`, id)
	if err != nil {
		return nil, fmt.Errorf("get productos: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var p entity.Producto
		if err := rows.Scan(&p.ID, &p.Descripcion, &p.Unidades, &p.PrecioUnitario, &p.Total, &p.CotizacionID); err != nil {
			return nil, fmt.Errorf("scan producto: %w", err)
		}
		c.Productos = append(c.Productos, p)
	}
	return &c, rows.Err()
}

// ListByOwner lista cabeceras del dueño (sin productos), más reciente primero.
func (r *CotizacionRepo) ListByOwner(ctx context.Context, ownerID string) ([]*entity.Cotizacion, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, numero, nombre_cliente, direccion_cliente, tipo_documento,
		       nro_documento, moneda, monto_total, fecha_creacion, owner_id,
		       COALESCE(comprobante_id, 0)
		FROM cotizaciones
		WHERE owner_id = $1
		ORDER BY id DESC`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list cotizaciones: %w", err)
	}
	defer rows.Close()

	var out []*entity.Cotizacion
	for rows.Next() {
		var c entity.Cotizacion
		var direccion *string
		if err := rows.Scan(&c.ID, &c.Numero, &c.NombreCliente, &direccion, &c.TipoDocumento,
			&c.NroDocumento, &c.Moneda, &c.MontoTotal, &c.FechaCreacion, &c.OwnerID,
			&c.ComprobanteID); err != nil {
			return nil, fmt.Errorf("scan cotizacion: %w", err)
		}
		c.DireccionCliente = derefStr(direccion)
		out = append(out, &c)
	}
	return out, rows.Err()
}

// Delete borra la cotización del dueño junto con el comprobante vinculado,
// si lo hay, en una transacción; las líneas caen por cascada.
func (r *CotizacionRepo) Delete(ctx context.Context, id int64, ownerID string) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx,
		`DELETE FROM comprobantes WHERE cotizacion_id = $1 AND owner_id = $2`, id, ownerID); err != nil {
		return fmt.Errorf("delete comprobante vinculado: %w", err)
	}
	tag, err := tx.Exec(ctx,
		`DELETE FROM cotizaciones WHERE id = $1 AND owner_id = $2`, id, ownerID)
	if err != nil {
		return fmt.Errorf("delete cotizacion: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
