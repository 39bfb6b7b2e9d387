package repository

import (
	"context"

	"github.com/cotizaperu/cotiza-api/internal/domain/sequence"
)

// SequenceRepository entrega números de documento de forma atómica.
//
// El esquema observado (leer la última fila y sumar 1) es una carrera
// lectura-escritura: dos requests concurrentes sobre el mismo alcance pueden
// leer el mismo "último" y asignar duplicados. La implementación debe usar un
// contador con upsert atómico por alcance; la primera llamada siembra el
// contador desde la última fila legada (y falla con ErrInvalidSequenceState
// si ese número no es parseable, nunca reinicia en silencio).
type SequenceRepository interface {
	// Next devuelve el siguiente valor del contador para el alcance dado.
	Next(ctx context.Context, scope sequence.Scope) (int64, error)
}
