package facturacion

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/cotizaperu/cotiza-api/pkg/sunat"
)

// LegendCodeImporteEnLetras código SUNAT de la leyenda de importe en letras.
const LegendCodeImporteEnLetras = "1000"

// ImporteEnLetras arma la leyenda legal del comprobante:
//
//	"SON DOSCIENTOS TREINTA Y SEIS CON 00/100 SOLES"
//
// La parte entera del total se deletrea en español en mayúsculas; la parte
// decimal va como fracción de dos dígitos sobre 100.
func ImporteEnLetras(total decimal.Decimal, currencyCode string) string {
	total = total.Round(2)
	entero := total.IntPart()
	centavos := total.Sub(decimal.NewFromInt(entero)).Mul(decimal.NewFromInt(100)).IntPart()
	if centavos < 0 {
		centavos = -centavos
	}
	return fmt.Sprintf("SON %s CON %02d/100 %s",
		NumeroALetras(entero), centavos, sunat.CurrencyLegalName(currencyCode))
}

// ── Número a letras (español, mayúsculas) ─────────────────────────────────────

var unidades = [...]string{
	"", "UNO", "DOS", "TRES", "CUATRO", "CINCO", "SEIS", "SIETE", "OCHO", "NUEVE",
	"DIEZ", "ONCE", "DOCE", "TRECE", "CATORCE", "QUINCE",
	"DIECISÉIS", "DIECISIETE", "DIECIOCHO", "DIECINUEVE",
	"VEINTE", "VEINTIUNO", "VEINTIDÓS", "VEINTITRÉS", "VEINTICUATRO",
	"VEINTICINCO", "VEINTISÉIS", "VEINTISIETE", "VEINTIOCHO", "VEINTINUEVE",
}

var decenas = [...]string{
	"", "", "", "TREINTA", "CUARENTA", "CINCUENTA",
	"SESENTA", "SETENTA", "OCHENTA", "NOVENTA",
}

var centenas = [...]string{
	"", "CIENTO", "DOSCIENTOS", "TRESCIENTOS", "CUATROCIENTOS", "QUINIENTOS",
	"SEISCIENTOS", "SETECIENTOS", "OCHOCIENTOS", "NOVECIENTOS",
}

// NumeroALetras deletrea un entero no negativo en español, en mayúsculas.
// Cubre hasta miles de millones, más que suficiente para importes de venta.
func NumeroALetras(n int64) string {
	if n == 0 {
		return "CERO"
	}
	if n < 0 {
		return "MENOS " + NumeroALetras(-n)
	}

	var parts []string

	if millones := n / 1_000_000; millones > 0 {
		if millones == 1 {
			parts = append(parts, "UN MILLÓN")
		} else {
			parts = append(parts, apocope(NumeroALetras(millones))+" MILLONES")
		}
		n %= 1_000_000
	}
	if miles := n / 1000; miles > 0 {
		if miles == 1 {
			parts = append(parts, "MIL")
		} else {
			parts = append(parts, apocope(cientosALetras(miles))+" MIL")
		}
		n %= 1000
	}
	if n > 0 {
		parts = append(parts, cientosALetras(n))
	}
	return strings.Join(parts, " ")
}

// cientosALetras deletrea 1..999.
func cientosALetras(n int64) string {
	if n == 100 {
		return "CIEN"
	}
	var parts []string
	if c := n / 100; c > 0 {
		parts = append(parts, centenas[c])
		n %= 100
	}
	switch {
	case n == 0:
	case n < 30:
		parts = append(parts, unidades[n])
	default:
		d, u := n/10, n%10
		if u == 0 {
			parts = append(parts, decenas[d])
		} else {
			parts = append(parts, decenas[d]+" Y "+unidades[u])
		}
	}
	return strings.Join(parts, " ")
}

// apocope ajusta "UNO" a "UN" cuando precede a MIL o MILLONES
// ("VEINTIUNO MIL" → "VEINTIÚN MIL", "TREINTA Y UNO MIL" → "TREINTA Y UN MIL").
func apocope(s string) string {
	switch {
	case s == "UNO":
		return "UN"
	case strings.HasSuffix(s, "VEINTIUNO"):
		return strings.TrimSuffix(s, "VEINTIUNO") + "VEINTIÚN"
	case strings.HasSuffix(s, " Y UNO"):
		return strings.TrimSuffix(s, " Y UNO") + " Y UN"
	}
	return s
}
