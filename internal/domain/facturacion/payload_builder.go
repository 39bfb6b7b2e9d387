package facturacion

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cotizaperu/cotiza-api/internal/domain"
	"github.com/cotizaperu/cotiza-api/internal/domain/entity"
	"github.com/cotizaperu/cotiza-api/pkg/sunat"
)

// Tasa de IGV peruana. Regla de negocio fija, no configuración.
var (
	igvRate   = decimal.NewFromFloat(0.18)
	igvFactor = decimal.NewFromFloat(1.18)
)

// Convención de montos: el total de línea persistido (Producto.Total) NO
// incluye IGV. Es la base imponible de la línea; el impuesto y el precio
// con IGV se derivan aquí y en ningún otro lugar.

// BuildInvoicePayload convierte una cotización y el perfil del emisor en el
// payload exacto de /invoice/send. Valida antes de construir: perfil completo,
// no auto-facturación, al menos una línea. Cualquier error ocurre antes de
// tocar la red (fail fast, nunca se envía un payload parcial).
func BuildInvoicePayload(c *entity.Cotizacion, u *entity.User, serie, correlativo string, now time.Time) (*InvoicePayload, error) {
	if !u.HasCompleteBusinessProfile() {
		return nil, domain.ErrIncompleteBusinessProfile
	}
	if c.NroDocumento == u.BusinessRUC {
		return nil, domain.ErrSelfBilling
	}
	if len(c.Productos) == 0 {
		return nil, fmt.Errorf("%w: la cotización no tiene productos", domain.ErrInvalidInput)
	}

	details := make([]Detail, 0, len(c.Productos))
	mtoOperGravadas := decimal.Zero
	mtoIGV := decimal.Zero
	for _, p := range c.Productos {
		valorUnitario := p.PrecioUnitario
		mtoBaseIgv := p.Total
		igv := mtoBaseIgv.Mul(igvRate).Round(2)
		mtoValorVenta := p.Total.Round(2)
		precioConIgv := valorUnitario.Mul(igvFactor).Round(5)

		details = append(details, Detail{
			CodProducto:       fmt.Sprintf("P%d", p.ID),
			Unidad:            "NIU",
			Descripcion:       p.Descripcion,
			Cantidad:          float64(p.Unidades),
			MtoValorUnitario:  valorUnitario.Round(2).InexactFloat64(),
			MtoValorVenta:     mtoValorVenta.InexactFloat64(),
			MtoBaseIgv:        mtoBaseIgv.Round(2).InexactFloat64(),
			PorcentajeIgv:     18,
			Igv:               igv.InexactFloat64(),
			TipAfeIgv:         10,
			TotalImpuestos:    igv.InexactFloat64(),
			MtoPrecioUnitario: precioConIgv.InexactFloat64(),
		})
		mtoOperGravadas = mtoOperGravadas.Add(mtoValorVenta)
		mtoIGV = mtoIGV.Add(igv)
	}
	totalVenta := mtoOperGravadas.Add(mtoIGV)

	tipoMoneda := sunat.CurrencyCode(c.Moneda)
	legend := Legend{
		Code:  LegendCodeImporteEnLetras,
		Value: ImporteEnLetras(totalVenta, tipoMoneda),
	}

	return &InvoicePayload{
		UblVersion:    "2.1",
		TipoOperacion: "0101",
		TipoDoc:       sunat.InvoiceDocCode(c.TipoDocumento),
		Serie:         serie,
		Correlativo:   correlativo,
		FechaEmision:  sunat.FormatFechaEmision(now),
		FormaPago:     FormaPago{Moneda: tipoMoneda, Tipo: "Contado"},
		TipoMoneda:    tipoMoneda,
		Client: Client{
			TipoDoc:   sunat.ClientDocCode(c.TipoDocumento),
			NumDoc:    c.NroDocumento,
			RznSocial: c.NombreCliente,
			Address:   limaAddress(c.DireccionCliente),
		},
		Company:         companyBlock(u),
		MtoOperGravadas: mtoOperGravadas.Round(2).InexactFloat64(),
		MtoIGV:          mtoIGV.Round(2).InexactFloat64(),
		ValorVenta:      mtoOperGravadas.Round(2).InexactFloat64(),
		TotalImpuestos:  mtoIGV.Round(2).InexactFloat64(),
		SubTotal:        totalVenta.Round(2).InexactFloat64(),
		MtoImpVenta:     totalVenta.Round(2).InexactFloat64(),
		Details:         details,
		Legends:         []Legend{legend},
	}, nil
}

// GuiaData entrada para construir una guía de remisión (viene del request,
// ya validado en la capa HTTP).
type GuiaData struct {
	Destinatario  Destinatario
	ModTraslado   string // "01" público, "02" privado
	CodTraslado   string
	FecTraslado   time.Time
	PesoTotal     decimal.Decimal
	Partida       GuiaPunto
	Llegada       GuiaPunto
	Transportista *Transportista
	Conductor     *Chofer
	Bienes        []GuiaDetail
}

// BuildGuiaPayload arma el payload de /despatch/send. La modalidad decide los
// sub-bloques: transporte público lleva transportista; transporte privado
// lleva choferes y, si hay placa, vehículo.
func BuildGuiaPayload(g *GuiaData, u *entity.User, serie, correlativo string, now time.Time) (*GuiaPayload, error) {
	if !u.HasCompleteBusinessProfile() {
		return nil, domain.ErrIncompleteBusinessProfile
	}
	if len(g.Bienes) == 0 {
		return nil, fmt.Errorf("%w: la guía no tiene bienes", domain.ErrInvalidInput)
	}

	envio := Envio{
		ModTraslado:  g.ModTraslado,
		CodTraslado:  g.CodTraslado,
		DesTraslado:  "VENTA",
		FecTraslado:  g.FecTraslado.Format("2006-01-02"),
		PesoTotal:    g.PesoTotal.InexactFloat64(),
		UndPesoTotal: "KGM",
		Partida:      g.Partida,
		Llegada:      g.Llegada,
	}
	switch g.ModTraslado {
	case entity.TrasladoPublico:
		if g.Transportista != nil {
			envio.Transportista = g.Transportista
		}
	case entity.TrasladoPrivado:
		if g.Conductor != nil {
			envio.Choferes = []Chofer{*g.Conductor}
		}
		if g.Transportista != nil && g.Transportista.Placa != "" {
			envio.Vehiculo = &Vehiculo{Placa: g.Transportista.Placa}
		}
	}

	return &GuiaPayload{
		Version:      "2022",
		TipoDoc:      sunat.DocGuia,
		Serie:        serie,
		Correlativo:  correlativo,
		FechaEmision: sunat.FormatFechaEmision(now),
		Company:      companyBlock(u),
		Destinatario: g.Destinatario,
		Envio:        envio,
		Details:      g.Bienes,
	}, nil
}

func companyBlock(u *entity.User) Company {
	return Company{
		Ruc:             u.BusinessRUC,
		RazonSocial:     u.BusinessName,
		NombreComercial: u.BusinessName,
		Address:         limaAddress(u.BusinessAddress),
	}
}

// limaAddress completa la geografía con los valores por defecto de Lima.
func limaAddress(direccion string) Address {
	return Address{
		Direccion:    direccion,
		Provincia:    sunat.DefaultProvincia,
		Departamento: sunat.DefaultDepartamento,
		Distrito:     sunat.DefaultDistrito,
		Ubigueo:      sunat.DefaultUbigeo,
	}
}
