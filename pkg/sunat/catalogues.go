// Package sunat contiene catálogos y formatos alineados a la facturación
// electrónica SUNAT (Perú) expuesta por Apis Perú (UBL 2.1).
package sunat

import "time"

// =============================================================================
// Catálogo 01 - Tipos de comprobante
// =============================================================================

const (
	DocFactura = "01" // Factura electrónica (cliente con RUC)
	DocBoleta  = "03" // Boleta de venta electrónica
	DocGuia    = "09" // Guía de remisión remitente
)

// =============================================================================
// Catálogo 06 - Tipos de documento de identidad del adquiriente
// =============================================================================

const (
	IdentDNI    = "1" // Documento Nacional de Identidad
	IdentRUC    = "6" // Registro Único de Contribuyentes
	IdentSinDoc = "0" // Sin documento / otros
)

// ClientDocCode mapea el tipo de documento del cliente ("DNI", "RUC", otro)
// a su código de catálogo 06.
func ClientDocCode(tipoDocumento string) string {
	switch tipoDocumento {
	case "DNI":
		return IdentDNI
	case "RUC":
		return IdentRUC
	default:
		return IdentSinDoc
	}
}

// InvoiceDocCode decide el tipo de comprobante a emitir: factura ("01") si el
// cliente tiene RUC, boleta ("03") en cualquier otro caso.
func InvoiceDocCode(tipoDocumento string) string {
	if tipoDocumento == "RUC" {
		return DocFactura
	}
	return DocBoleta
}

// =============================================================================
// Moneda (ISO 4217) y nombre legal para la leyenda 1000
// =============================================================================

const (
	CurrencyPEN = "PEN"
	CurrencyUSD = "USD"
)

// CurrencyCode mapea la moneda de la cotización ("SOLES"/"DOLARES") al código
// ISO que espera el proveedor.
func CurrencyCode(moneda string) string {
	if moneda == "SOLES" {
		return CurrencyPEN
	}
	return CurrencyUSD
}

// CurrencyLegalName nombre de la moneda en la leyenda de importe en letras.
func CurrencyLegalName(currencyCode string) string {
	if currencyCode == CurrencyPEN {
		return "SOLES"
	}
	return "DÓLARES AMERICANOS"
}

// =============================================================================
// Geografía por defecto (cuando el cliente no especifica la suya)
// =============================================================================

const (
	DefaultProvincia    = "LIMA"
	DefaultDepartamento = "LIMA"
	DefaultDistrito     = "LIMA"
	DefaultUbigeo       = "150101"
)

// =============================================================================
// Fechas: SUNAT exige hora local de Perú (UTC-5 fijo, sin horario de verano)
// con offset ISO-8601 con dos puntos ("-05:00").
// =============================================================================

// LimaZone zona horaria fija de Perú.
var LimaZone = time.FixedZone("-05:00", -5*60*60)

// FormatFechaEmision da formato a una fecha de emisión en hora de Lima,
// ISO-8601 con offset "-05:00" (el layout -07:00 de Go ya incluye los dos puntos).
func FormatFechaEmision(t time.Time) string {
	return t.In(LimaZone).Format("2006-01-02T15:04:05-07:00")
}
