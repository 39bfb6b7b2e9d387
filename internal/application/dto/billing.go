package dto

import (
	"time"

	"github.com/cotizaperu/cotiza-api/internal/domain/entity"
)

// EmitirRequest parámetros para facturar una cotización.
type EmitirRequest struct {
	Serie string `json:"serie" validate:"required"`
}

// ComprobanteResponse vista de un comprobante emitido.
type ComprobanteResponse struct {
	ID           int64     `json:"id"`
	TipoDoc      string    `json:"tipo_doc"`
	Serie        string    `json:"serie"`
	Correlativo  string    `json:"correlativo"`
	FechaEmision time.Time `json:"fecha_emision"`
	Exito        bool      `json:"exito"`
	Hash         string    `json:"hash,omitempty"`
	CotizacionID int64     `json:"cotizacion_id,omitempty"`
}

// NewComprobanteResponse arma la respuesta a partir de la entidad.
func NewComprobanteResponse(c *entity.Comprobante) ComprobanteResponse {
	return ComprobanteResponse{
		ID:           c.ID,
		TipoDoc:      c.TipoDoc,
		Serie:        c.Serie,
		Correlativo:  c.Correlativo,
		FechaEmision: c.FechaEmision,
		Exito:        c.Exito,
		Hash:         c.Hash,
		CotizacionID: c.CotizacionID,
	}
}

// ── Guías de remisión ─────────────────────────────────────────────────────────

// GuiaPuntoRequest punto de partida o llegada.
type GuiaPuntoRequest struct {
	Ubigeo    string `json:"ubigeo" validate:"required,len=6,numeric"`
	Direccion string `json:"direccion" validate:"required"`
}

// GuiaTransportistaRequest datos del transportista (modalidad pública) o la
// placa del vehículo propio (modalidad privada).
type GuiaTransportistaRequest struct {
	TipoDoc   string `json:"tipo_doc"`
	NumDoc    string `json:"num_doc"`
	RznSocial string `json:"rzn_social"`
	Placa     string `json:"placa"`
}

// GuiaChoferRequest conductor en modalidad privada.
type GuiaChoferRequest struct {
	TipoDoc   string `json:"tipo_doc" validate:"required"`
	NroDoc    string `json:"nro_doc" validate:"required"`
	Licencia  string `json:"licencia" validate:"required"`
	Nombres   string `json:"nombres" validate:"required"`
	Apellidos string `json:"apellidos" validate:"required"`
}

// GuiaBienRequest bien transportado.
type GuiaBienRequest struct {
	Cantidad    float64 `json:"cantidad" validate:"required,gt=0"`
	Unidad      string  `json:"unidad" validate:"required"`
	Descripcion string  `json:"descripcion" validate:"required"`
	Codigo      string  `json:"codigo"`
}

// GuiaRequest alta de una guía de remisión. La modalidad decide qué bloques
// son obligatorios: "01" exige transportista, "02" exige chofer.
type GuiaRequest struct {
	Serie                 string                    `json:"serie" validate:"required"`
	DestinatarioTipoDoc   string                    `json:"destinatario_tipo_doc" validate:"required"`
	DestinatarioNumDoc    string                    `json:"destinatario_num_doc" validate:"required"`
	DestinatarioRznSocial string                    `json:"destinatario_rzn_social" validate:"required"`
	ModTraslado           string                    `json:"mod_traslado" validate:"required,oneof=01 02"`
	CodTraslado           string                    `json:"cod_traslado" validate:"required"`
	FecTraslado           time.Time                 `json:"fec_traslado" validate:"required"`
	PesoTotal             float64                   `json:"peso_total" validate:"required,gt=0"`
	Partida               GuiaPuntoRequest          `json:"partida" validate:"required"`
	Llegada               GuiaPuntoRequest          `json:"llegada" validate:"required"`
	Transportista         *GuiaTransportistaRequest `json:"transportista" validate:"required_if=ModTraslado 01"`
	Chofer                *GuiaChoferRequest        `json:"chofer" validate:"required_if=ModTraslado 02"`
	Bienes                []GuiaBienRequest         `json:"bienes" validate:"required,min=1,dive"`
}

// GuiaResponse vista de una guía emitida.
type GuiaResponse struct {
	ID           int64     `json:"id"`
	Serie        string    `json:"serie"`
	Correlativo  string    `json:"correlativo"`
	FechaEmision time.Time `json:"fecha_emision"`
	Destinatario string    `json:"destinatario"`
	Exito        bool      `json:"exito"`
	Hash         string    `json:"hash,omitempty"`
}

// NewGuiaResponse arma la respuesta a partir de la entidad.
func NewGuiaResponse(g *entity.GuiaRemision) GuiaResponse {
	return GuiaResponse{
		ID:           g.ID,
		Serie:        g.Serie,
		Correlativo:  g.Correlativo,
		FechaEmision: g.FechaEmision,
		Destinatario: g.Destinatario,
		Exito:        g.Exito,
		Hash:         g.Hash,
	}
}
