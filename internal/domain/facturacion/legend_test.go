package facturacion_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/cotizaperu/cotiza-api/internal/domain/facturacion"
)

// ──────────────────────────────────────────────────────────────────────────────
// ImporteEnLetras: la leyenda 1000 debe seguir la plantilla fija
// "SON {LETRAS} CON {DD}/100 {MONEDA}". El deletreo es el que valida SUNAT
// en la representación impresa, así que cualquier cambio aquí es visible
// para el cliente final.
// ──────────────────────────────────────────────────────────────────────────────

func TestImporteEnLetras_Soles(t *testing.T) {
	got := facturacion.ImporteEnLetras(decimal.NewFromFloat(236.00), "PEN")
	assert.Equal(t, "SON DOSCIENTOS TREINTA Y SEIS CON 00/100 SOLES", got)
}

func TestImporteEnLetras_Dolares(t *testing.T) {
	got := facturacion.ImporteEnLetras(decimal.NewFromFloat(1250.50), "USD")
	assert.Equal(t, "SON MIL DOSCIENTOS CINCUENTA CON 50/100 DÓLARES AMERICANOS", got)
}

func TestImporteEnLetras_CentavosConUnDigito(t *testing.T) {
	// 5 centavos deben salir como "05/100", no "5/100".
	got := facturacion.ImporteEnLetras(decimal.NewFromFloat(100.05), "PEN")
	assert.Equal(t, "SON CIEN CON 05/100 SOLES", got)
}

func TestImporteEnLetras_RedondeaADosDecimales(t *testing.T) {
	got := facturacion.ImporteEnLetras(decimal.NewFromFloat(99.999), "PEN")
	assert.Equal(t, "SON CIEN CON 00/100 SOLES", got)
}

func TestNumeroALetras(t *testing.T) {
	cases := []struct {
		n    int64
		want string
	}{
		{0, "CERO"},
		{1, "UNO"},
		{15, "QUINCE"},
		{16, "DIECISÉIS"},
		{21, "VEINTIUNO"},
		{22, "VEINTIDÓS"},
		{30, "TREINTA"},
		{31, "TREINTA Y UNO"},
		{99, "NOVENTA Y NUEVE"},
		{100, "CIEN"},
		{101, "CIENTO UNO"},
		{236, "DOSCIENTOS TREINTA Y SEIS"},
		{500, "QUINIENTOS"},
		{999, "NOVECIENTOS NOVENTA Y NUEVE"},
		{1000, "MIL"},
		{1001, "MIL UNO"},
		{2024, "DOS MIL VEINTICUATRO"},
		{21000, "VEINTIÚN MIL"},
		{31000, "TREINTA Y UN MIL"},
		{100000, "CIEN MIL"},
		{123456, "CIENTO VEINTITRÉS MIL CUATROCIENTOS CINCUENTA Y SEIS"},
		{1000000, "UN MILLÓN"},
		{2000000, "DOS MILLONES"},
		{1234567, "UN MILLÓN DOSCIENTOS TREINTA Y CUATRO MIL QUINIENTOS SESENTA Y SIETE"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, facturacion.NumeroALetras(c.n), "n=%d", c.n)
	}
}
