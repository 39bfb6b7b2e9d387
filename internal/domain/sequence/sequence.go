// Package sequence define los alcances y el formato de la numeración de
// documentos: número de cotización (global, 4 dígitos con ceros), correlativo
// de comprobante (por dueño+serie+tipo de documento) y correlativo de guía
// de remisión (por dueño+serie), ambos sin relleno.
package sequence

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind identifica el dominio de numeración.
type Kind string

const (
	KindCotizacion  Kind = "cotizacion"
	KindComprobante Kind = "comprobante"
	KindGuia        Kind = "guia"
)

// Scope es el alcance de un contador. Para cotizaciones el alcance es global
// (OwnerID, Serie y TipoDoc vacíos); para comprobantes aplica la terna
// completa; para guías, dueño y serie.
type Scope struct {
	Kind    Kind
	OwnerID string
	Serie   string
	TipoDoc string
}

// CotizacionScope alcance global de numeración de cotizaciones.
func CotizacionScope() Scope {
	return Scope{Kind: KindCotizacion}
}

// ComprobanteScope alcance (owner, serie, tipoDoc).
func ComprobanteScope(ownerID, serie, tipoDoc string) Scope {
	return Scope{Kind: KindComprobante, OwnerID: ownerID, Serie: serie, TipoDoc: tipoDoc}
}

// GuiaScope alcance (owner, serie).
func GuiaScope(ownerID, serie string) Scope {
	return Scope{Kind: KindGuia, OwnerID: ownerID, Serie: serie}
}

// Key devuelve la clave única del contador en la tabla document_sequences.
func (s Scope) Key() string {
	switch s.Kind {
	case KindCotizacion:
		return string(KindCotizacion)
	case KindComprobante:
		return strings.Join([]string{string(KindComprobante), s.OwnerID, s.Serie, s.TipoDoc}, ":")
	case KindGuia:
		return strings.Join([]string{string(KindGuia), s.OwnerID, s.Serie}, ":")
	}
	return string(s.Kind)
}

// Format da formato al valor del contador según el dominio: cotizaciones con
// relleno de ceros a 4 dígitos, correlativos sin relleno.
func (s Scope) Format(n int64) string {
	if s.Kind == KindCotizacion {
		return fmt.Sprintf("%04d", n)
	}
	return strconv.FormatInt(n, 10)
}

// Parse interpreta un número almacenado no vacío ("0007", "12"). ok=false
// significa que el valor no es numérico: la operación debe fallar con
// ErrInvalidSequenceState, nunca reiniciar la numeración en silencio.
// El llamador trata el caso "sin fila / campo vacío" antes de llamar (semilla).
func Parse(stored string) (n int64, ok bool) {
	v, err := strconv.ParseInt(strings.TrimSpace(stored), 10, 64)
	if err != nil || v < 0 {
		return 0, false
	}
	return v, true
}
