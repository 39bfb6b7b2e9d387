package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/cotizaperu/cotiza-api/internal/domain/entity"
)

// ProductoRequest línea de cotización tal como la envía el cliente web.
type ProductoRequest struct {
	Descripcion    string  `json:"descripcion" validate:"required"`
	Unidades       int     `json:"unidades" validate:"required,gt=0"`
	PrecioUnitario float64 `json:"precio_unitario" validate:"gte=0"`
	Total          float64 `json:"total" validate:"gte=0"`
}

// CotizacionRequest alta o reemplazo completo de una cotización.
// MontoTotal debe coincidir con la suma de líneas (tolerancia de un centavo);
// esa verificación es del caso de uso, no del validador.
type CotizacionRequest struct {
	NombreCliente    string            `json:"nombre_cliente" validate:"required"`
	DireccionCliente string            `json:"direccion_cliente"`
	TipoDocumento    string            `json:"tipo_documento" validate:"required"`
	NroDocumento     string            `json:"nro_documento" validate:"required"`
	Moneda           string            `json:"moneda" validate:"required,oneof=SOLES DOLARES"`
	MontoTotal       float64           `json:"monto_total" validate:"gte=0"`
	Productos        []ProductoRequest `json:"productos" validate:"required,min=1,dive"`
}

// ToEntity convierte el request en la entidad de dominio (sin número ni IDs).
func (r CotizacionRequest) ToEntity(ownerID string) *entity.Cotizacion {
	productos := make([]entity.Producto, 0, len(r.Productos))
	for _, p := range r.Productos {
		productos = append(productos, entity.Producto{
			Descripcion:    p.Descripcion,
			Unidades:       p.Unidades,
			PrecioUnitario: decimal.NewFromFloat(p.PrecioUnitario),
			Total:          decimal.NewFromFloat(p.Total),
		})
	}
	return &entity.Cotizacion{
		NombreCliente:    r.NombreCliente,
		DireccionCliente: r.DireccionCliente,
		TipoDocumento:    r.TipoDocumento,
		NroDocumento:     r.NroDocumento,
		Moneda:           r.Moneda,
		MontoTotal:       decimal.NewFromFloat(r.MontoTotal),
		OwnerID:          ownerID,
		Productos:        productos,
	}
}

// ProductoResponse línea de cotización en las respuestas.
type ProductoResponse struct {
	ID             int64   `json:"id"`
	Descripcion    string  `json:"descripcion"`
	Unidades       int     `json:"unidades"`
	PrecioUnitario float64 `json:"precio_unitario"`
	Total          float64 `json:"total"`
}

// CotizacionResponse vista completa de una cotización.
type CotizacionResponse struct {
	ID            int64              `json:"id"`
	Numero        string             `json:"numero"`
	NombreCliente string             `json:"nombre_cliente"`
	Direccion     string             `json:"direccion_cliente"`
	TipoDocumento string             `json:"tipo_documento"`
	NroDocumento  string             `json:"nro_documento"`
	Moneda        string             `json:"moneda"`
	MontoTotal    float64            `json:"monto_total"`
	FechaCreacion time.Time          `json:"fecha_creacion"`
	ComprobanteID int64              `json:"comprobante_id,omitempty"`
	Productos     []ProductoResponse `json:"productos"`
}

// NewCotizacionResponse arma la respuesta a partir de la entidad.
func NewCotizacionResponse(c *entity.Cotizacion) CotizacionResponse {
	productos := make([]ProductoResponse, 0, len(c.Productos))
	for _, p := range c.Productos {
		productos = append(productos, ProductoResponse{
			ID:             p.ID,
			Descripcion:    p.Descripcion,
			Unidades:       p.Unidades,
			PrecioUnitario: p.PrecioUnitario.InexactFloat64(),
			Total:          p.Total.InexactFloat64(),
		})
	}
	return CotizacionResponse{
		ID:            c.ID,
		Numero:        c.Numero,
		NombreCliente: c.NombreCliente,
		Direccion:     c.DireccionCliente,
		TipoDocumento: c.TipoDocumento,
		NroDocumento:  c.NroDocumento,
		Moneda:        c.Moneda,
		MontoTotal:    c.MontoTotal.InexactFloat64(),
		FechaCreacion: c.FechaCreacion,
		ComprobanteID: c.ComprobanteID,
		Productos:     productos,
	}
}
