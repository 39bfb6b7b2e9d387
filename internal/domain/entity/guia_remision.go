package entity

import "time"

// Modalidades de traslado SUNAT para guías de remisión.
const (
	TrasladoPublico = "01" // transporte público: bloque transportista
	TrasladoPrivado = "02" // transporte privado: choferes y vehículo
)

// GuiaRemision es una guía de remisión remitente emitida al proveedor.
// Numerada por (owner, serie), correlativo sin relleno.
type GuiaRemision struct {
	ID             int64
	Serie          string
	Correlativo    string
	FechaEmision   time.Time
	Destinatario   string // razón social del destinatario
	Exito          bool
	SunatResponse  []byte
	Hash           string
	PayloadEnviado []byte
	OwnerID        string
}
