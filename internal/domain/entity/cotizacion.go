package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Monedas aceptadas en cotizaciones (valor libre del cliente web original).
const (
	MonedaSoles   = "SOLES"
	MonedaDolares = "DOLARES"
)

// Cotizacion es una oferta comercial en borrador. El número es global
// (no por dueño), con relleno de ceros a 4 dígitos: "0001", "0002", …
type Cotizacion struct {
	ID               int64
	Numero           string
	NombreCliente    string
	DireccionCliente string
	TipoDocumento    string // "DNI", "RUC", otro
	NroDocumento     string
	Moneda           string
	MontoTotal       decimal.Decimal // suma de líneas, sin IGV
	FechaCreacion    time.Time
	OwnerID          string

	Productos []Producto

	// ComprobanteID referencia al comprobante emitido desde esta cotización
	// (a lo sumo uno). Cero si aún no se facturó.
	ComprobanteID int64
}

// Producto es una línea de cotización. Las líneas se reemplazan completas
// en cada actualización (delete-all + reinsert, dentro de una transacción).
type Producto struct {
	ID             int64
	Descripcion    string
	Unidades       int
	PrecioUnitario decimal.Decimal
	Total          decimal.Decimal // sin IGV
	CotizacionID   int64
}

// SumaLineas devuelve la suma de los totales de línea.
func (c *Cotizacion) SumaLineas() decimal.Decimal {
	sum := decimal.Zero
	for _, p := range c.Productos {
		sum = sum.Add(p.Total)
	}
	return sum
}
