package sequence_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cotizaperu/cotiza-api/internal/domain/sequence"
)

func TestScopeKey(t *testing.T) {
	assert.Equal(t, "cotizacion", sequence.CotizacionScope().Key())
	assert.Equal(t, "comprobante:u1:F001:01",
		sequence.ComprobanteScope("u1", "F001", "01").Key())
	assert.Equal(t, "guia:u1:T001", sequence.GuiaScope("u1", "T001").Key())
}

func TestScopeFormat(t *testing.T) {
	// Cotizaciones con relleno a 4 dígitos, correlativos planos.
	assert.Equal(t, "0001", sequence.CotizacionScope().Format(1))
	assert.Equal(t, "0011", sequence.CotizacionScope().Format(11))
	assert.Equal(t, "10000", sequence.CotizacionScope().Format(10000))
	assert.Equal(t, "1", sequence.ComprobanteScope("u1", "F001", "01").Format(1))
	assert.Equal(t, "57", sequence.GuiaScope("u1", "T001").Format(57))
}

func TestParse(t *testing.T) {
	n, ok := sequence.Parse("0007")
	assert.True(t, ok)
	assert.Equal(t, int64(7), n)

	n, ok = sequence.Parse("12")
	assert.True(t, ok)
	assert.Equal(t, int64(12), n)

	n, ok = sequence.Parse(" 42 ")
	assert.True(t, ok)
	assert.Equal(t, int64(42), n)

	// No numérico o negativo: el llamador debe fallar, nunca reiniciar.
	_, ok = sequence.Parse("COT-007")
	assert.False(t, ok)
	_, ok = sequence.Parse("-3")
	assert.False(t, ok)
}
