package entity

import "time"

// Tipos de documento SUNAT.
const (
	TipoDocFactura = "01"
	TipoDocBoleta  = "03"
	TipoDocGuia    = "09"
)

// Comprobante es un documento fiscal emitido (factura o boleta). Una vez
// creado se trata como registro histórico inmutable: el payload enviado
// persistido es la fuente de verdad para regenerar el PDF y las descargas,
// sin recalcular impuestos.
type Comprobante struct {
	ID             int64
	TipoDoc        string // "01" factura, "03" boleta
	Serie          string // ej. "F001", "B001"
	Correlativo    string // numérico guardado como texto, por (owner, serie, tipo_doc)
	FechaEmision   time.Time
	Exito          bool
	SunatResponse  []byte // respuesta completa del proveedor, JSON literal
	Hash           string // hash de la firma digital devuelto por el proveedor
	PayloadEnviado []byte // payload exacto enviado al proveedor, JSON literal
	OwnerID        string
	CotizacionID   int64 // cotización de origen; cero si fue emitido suelto
}
