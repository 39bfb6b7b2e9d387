// Package facturacion construye los payloads que espera Apis Perú para
// comprobantes (factura/boleta) y guías de remisión, con el desglose de IGV
// y la leyenda de importe en letras que consume también el render del PDF.
//
// Los structs de este archivo son el esquema de alambre del proveedor: los
// nombres JSON (incluido "ubigueo", así escrito en la API) deben coincidir
// byte a byte con lo que el endpoint valida. Los montos viajan como números
// JSON, por eso los campos son float64; toda la aritmética previa se hace
// con decimal y se convierte al final.
package facturacion

// Address dirección según el esquema del proveedor.
type Address struct {
	Direccion    string `json:"direccion"`
	Provincia    string `json:"provincia"`
	Departamento string `json:"departamento"`
	Distrito     string `json:"distrito"`
	Ubigueo      string `json:"ubigueo"`
}

// Client adquiriente del comprobante.
type Client struct {
	TipoDoc   string  `json:"tipoDoc"`
	NumDoc    string  `json:"numDoc"`
	RznSocial string  `json:"rznSocial"`
	Address   Address `json:"address"`
}

// Company emisor del comprobante.
type Company struct {
	Ruc             string  `json:"ruc"`
	RazonSocial     string  `json:"razonSocial"`
	NombreComercial string  `json:"nombreComercial"`
	Address         Address `json:"address"`
}

// FormaPago siempre "Contado" en este sistema.
type FormaPago struct {
	Moneda string `json:"moneda"`
	Tipo   string `json:"tipo"`
}

// Detail línea del comprobante con el desglose de IGV.
type Detail struct {
	CodProducto       string  `json:"codProducto"`
	Unidad            string  `json:"unidad"`
	Descripcion       string  `json:"descripcion"`
	Cantidad          float64 `json:"cantidad"`
	MtoValorUnitario  float64 `json:"mtoValorUnitario"`
	MtoValorVenta     float64 `json:"mtoValorVenta"`
	MtoBaseIgv        float64 `json:"mtoBaseIgv"`
	PorcentajeIgv     int     `json:"porcentajeIgv"`
	Igv               float64 `json:"igv"`
	TipAfeIgv         int     `json:"tipAfeIgv"`
	TotalImpuestos    float64 `json:"totalImpuestos"`
	MtoPrecioUnitario float64 `json:"mtoPrecioUnitario"`
}

// Legend leyenda del comprobante; el código 1000 es el importe en letras.
type Legend struct {
	Code  string `json:"code"`
	Value string `json:"value"`
}

// InvoicePayload payload completo de /invoice/send.
type InvoicePayload struct {
	UblVersion      string    `json:"ublVersion"`
	TipoOperacion   string    `json:"tipoOperacion"`
	TipoDoc         string    `json:"tipoDoc"`
	Serie           string    `json:"serie"`
	Correlativo     string    `json:"correlativo"`
	FechaEmision    string    `json:"fechaEmision"`
	FormaPago       FormaPago `json:"formaPago"`
	TipoMoneda      string    `json:"tipoMoneda"`
	Client          Client    `json:"client"`
	Company         Company   `json:"company"`
	MtoOperGravadas float64   `json:"mtoOperGravadas"`
	MtoIGV          float64   `json:"mtoIGV"`
	ValorVenta      float64   `json:"valorVenta"`
	TotalImpuestos  float64   `json:"totalImpuestos"`
	SubTotal        float64   `json:"subTotal"`
	MtoImpVenta     float64   `json:"mtoImpVenta"`
	Details         []Detail  `json:"details"`
	Legends         []Legend  `json:"legends"`
}

// ── Guía de remisión ──────────────────────────────────────────────────────────

// Destinatario receptor de la mercadería.
type Destinatario struct {
	TipoDoc   string `json:"tipoDoc"`
	NumDoc    string `json:"numDoc"`
	RznSocial string `json:"rznSocial"`
}

// GuiaPunto punto de partida o llegada del traslado.
type GuiaPunto struct {
	Ubigueo   string `json:"ubigueo"`
	Direccion string `json:"direccion"`
}

// Transportista empresa de transporte (modalidad pública) o dueño del
// vehículo (la placa se usa en modalidad privada).
type Transportista struct {
	TipoDoc   string `json:"tipoDoc"`
	NumDoc    string `json:"numDoc"`
	RznSocial string `json:"rznSocial"`
	Placa     string `json:"placa,omitempty"`
}

// Chofer conductor en modalidad de transporte privado.
type Chofer struct {
	Tipo      string `json:"tipo"`
	TipoDoc   string `json:"tipoDoc"`
	NroDoc    string `json:"nroDoc"`
	Licencia  string `json:"licencia"`
	Nombres   string `json:"nombres"`
	Apellidos string `json:"apellidos"`
}

// Vehiculo del traslado (modalidad privada, si hay placa).
type Vehiculo struct {
	Placa string `json:"placa"`
}

// Envio datos del traslado. Los bloques transportista / choferes / vehiculo
// se incluyen según la modalidad (ver BuildGuiaPayload).
type Envio struct {
	ModTraslado   string         `json:"modTraslado"`
	CodTraslado   string         `json:"codTraslado"`
	DesTraslado   string         `json:"desTraslado"`
	FecTraslado   string         `json:"fecTraslado"`
	PesoTotal     float64        `json:"pesoTotal"`
	UndPesoTotal  string         `json:"undPesoTotal"`
	Partida       GuiaPunto      `json:"partida"`
	Llegada       GuiaPunto      `json:"llegada"`
	Transportista *Transportista `json:"transportista,omitempty"`
	Choferes      []Chofer       `json:"choferes,omitempty"`
	Vehiculo      *Vehiculo      `json:"vehiculo,omitempty"`
}

// GuiaDetail bien transportado. Cantidad viaja como número JSON (el
// proveedor rechaza cantidades enteras serializadas como string).
type GuiaDetail struct {
	Cantidad    float64 `json:"cantidad"`
	Unidad      string  `json:"unidad"`
	Descripcion string  `json:"descripcion"`
	Codigo      string  `json:"codigo,omitempty"`
}

// GuiaPayload payload completo de /despatch/send.
type GuiaPayload struct {
	Version      string       `json:"version"`
	TipoDoc      string       `json:"tipoDoc"`
	Serie        string       `json:"serie"`
	Correlativo  string       `json:"correlativo"`
	FechaEmision string       `json:"fechaEmision"`
	Company      Company      `json:"company"`
	Destinatario Destinatario `json:"destinatario"`
	Envio        Envio        `json:"envio"`
	Details      []GuiaDetail `json:"details"`
}
