package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cotizaperu/cotiza-api/internal/domain"
	"github.com/cotizaperu/cotiza-api/internal/domain/repository"
	"github.com/cotizaperu/cotiza-api/internal/domain/sequence"
)

var _ repository.SequenceRepository = (*SequenceRepo)(nil)

// SequenceRepo contador de numeración sobre la tabla document_sequences.
//
// El incremento es un solo statement atómico, así que dos requests
// concurrentes nunca reciben el mismo valor. La primera llamada de un alcance
// siembra el contador desde la última fila legada de la tabla de documentos
// correspondiente (instalaciones con datos previos al contador).
type SequenceRepo struct {
	pool *pgxpool.Pool
}

// NewSequenceRepository construye el adaptador.
func NewSequenceRepository(pool *pgxpool.Pool) *SequenceRepo {
	return &SequenceRepo{pool: pool}
}

// Next devuelve el siguiente valor del contador para el alcance dado.
func (r *SequenceRepo) Next(ctx context.Context, scope sequence.Scope) (int64, error) {
	key := scope.Key()

	// Camino común: la fila ya existe.
	var next int64
	err := r.pool.QueryRow(ctx, `
		UPDATE document_sequences
		SET last_value = last_value + 1, updated_at = NOW()
		WHERE key = $1
		RETURNING last_value`, key).Scan(&next)
	if err == nil {
		return next, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return 0, fmt.Errorf("increment sequence: %w", err)
	}

	// Primera vez para este alcance: sembrar desde los datos legados. El
	// upsert resuelve la carrera si otro request siembra a la vez.
	seed, err := r.legacySeed(ctx, scope)
	if err != nil {
		return 0, err
	}
	err = r.pool.QueryRow(ctx, `
		INSERT INTO document_sequences (key, last_value)
		VALUES ($1, $2 + 1)
		ON CONFLICT (key) DO UPDATE
		SET last_value = document_sequences.last_value + 1, updated_at = NOW()
		RETURNING last_value`, key, seed).Scan(&next)
	if err != nil {
		return 0, fmt.Errorf("seed sequence: %w", err)
	}
	return next, nil
}

// legacySeed lee el último número emitido antes de existir el contador. Un
// número almacenado no numérico detiene la operación: reiniciar la numeración
// en silencio duplicaría documentos ya declarados.
func (r *SequenceRepo) legacySeed(ctx context.Context, scope sequence.Scope) (int64, error) {
	var query string
	var args []any
	switch scope.Kind {
	case sequence.KindCotizacion:
		query = `SELECT numero FROM cotizaciones ORDER BY id DESC LIMIT 1`
	case sequence.KindComprobante:
		query = `SELECT correlativo FROM comprobantes
			WHERE owner_id = $1 AND serie = $2 AND tipo_doc = $3
			ORDER BY id DESC LIMIT 1`
		args = []any{scope.OwnerID, scope.Serie, scope.TipoDoc}
	case sequence.KindGuia:
		query = `SELECT correlativo FROM guias_remision
			WHERE owner_id = $1 AND serie = $2
			ORDER BY id DESC LIMIT 1`
		args = []any{scope.OwnerID, scope.Serie}
	default:
		return 0, fmt.Errorf("%w: alcance desconocido %q", domain.ErrInvalidSequenceState, scope.Kind)
	}

	var stored string
	err := r.pool.QueryRow(ctx, query, args...).Scan(&stored)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, nil // sin datos legados, el contador arranca en 1
		}
		return 0, fmt.Errorf("legacy seed: %w", err)
	}
	return seedFromLegacy(stored, scope)
}

// seedFromLegacy interpreta el último número almacenado por el esquema previo
// al contador. Un campo vacío equivale a no tener fila: el contador arranca
// en 1. Un valor no vacío y no numérico detiene la operación.
func seedFromLegacy(stored string, scope sequence.Scope) (int64, error) {
	if strings.TrimSpace(stored) == "" {
		return 0, nil
	}
	n, ok := sequence.Parse(stored)
	if !ok {
		return 0, fmt.Errorf("%w: número legado %q no es numérico (alcance %s)",
			domain.ErrInvalidSequenceState, stored, scope.Key())
	}
	return n, nil
}
