package facturacion_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cotizaperu/cotiza-api/internal/domain"
	"github.com/cotizaperu/cotiza-api/internal/domain/entity"
	"github.com/cotizaperu/cotiza-api/internal/domain/facturacion"
)

// ──────────────────────────────────────────────────────────────────────────────
// BuildInvoicePayload: el desglose de IGV y los redondeos son los que valida
// el proveedor. Caso de referencia: 2 unidades a 100.00 sin IGV.
//   base 200.00 → igv 36.00, precio con IGV 118.00000, total 236.00.
// ──────────────────────────────────────────────────────────────────────────────

func emisorCompleto() *entity.User {
	return &entity.User{
		ID:              "owner-1",
		BusinessName:    "ACME PERU S.A.C.",
		BusinessAddress: "AV. AREQUIPA 123, LIMA",
		BusinessRUC:     "20123456789",
	}
}

func cotizacionRUC() *entity.Cotizacion {
	return &entity.Cotizacion{
		ID:               7,
		Numero:           "0007",
		NombreCliente:    "CLIENTE INDUSTRIAL S.A.",
		DireccionCliente: "JR. UNION 456",
		TipoDocumento:    "RUC",
		NroDocumento:     "20987654321",
		Moneda:           entity.MonedaSoles,
		Productos: []entity.Producto{
			{
				ID:             31,
				Descripcion:    "Servicio de mantenimiento",
				Unidades:       2,
				PrecioUnitario: decimal.NewFromFloat(100.00),
				Total:          decimal.NewFromFloat(200.00),
			},
		},
	}
}

func TestBuildInvoicePayload_DesgloseIGV(t *testing.T) {
	now := time.Date(2026, 3, 15, 20, 30, 0, 0, time.UTC)

	p, err := facturacion.BuildInvoicePayload(cotizacionRUC(), emisorCompleto(), "F001", "12", now)
	require.NoError(t, err)

	assert.Equal(t, "2.1", p.UblVersion)
	assert.Equal(t, "0101", p.TipoOperacion)
	assert.Equal(t, "01", p.TipoDoc) // cliente con RUC → factura
	assert.Equal(t, "F001", p.Serie)
	assert.Equal(t, "12", p.Correlativo)
	// 20:30 UTC es 15:30 en Lima; el offset lleva dos puntos.
	assert.Equal(t, "2026-03-15T15:30:00-05:00", p.FechaEmision)
	assert.Equal(t, "PEN", p.TipoMoneda)
	assert.Equal(t, facturacion.FormaPago{Moneda: "PEN", Tipo: "Contado"}, p.FormaPago)

	require.Len(t, p.Details, 1)
	d := p.Details[0]
	assert.Equal(t, "P31", d.CodProducto)
	assert.Equal(t, "NIU", d.Unidad)
	assert.Equal(t, 2.0, d.Cantidad)
	assert.Equal(t, 100.00, d.MtoValorUnitario)
	assert.Equal(t, 200.00, d.MtoValorVenta)
	assert.Equal(t, 200.00, d.MtoBaseIgv)
	assert.Equal(t, 18, d.PorcentajeIgv)
	assert.Equal(t, 36.00, d.Igv)
	assert.Equal(t, 10, d.TipAfeIgv)
	assert.Equal(t, 36.00, d.TotalImpuestos)
	assert.Equal(t, 118.00, d.MtoPrecioUnitario) // redondeado a 5 decimales

	assert.Equal(t, 200.00, p.MtoOperGravadas)
	assert.Equal(t, 36.00, p.MtoIGV)
	assert.Equal(t, 200.00, p.ValorVenta)
	assert.Equal(t, 36.00, p.TotalImpuestos)
	assert.Equal(t, 236.00, p.SubTotal)
	assert.Equal(t, 236.00, p.MtoImpVenta)

	require.Len(t, p.Legends, 1)
	assert.Equal(t, "1000", p.Legends[0].Code)
	assert.Equal(t, "SON DOSCIENTOS TREINTA Y SEIS CON 00/100 SOLES", p.Legends[0].Value)
}

func TestBuildInvoicePayload_ClienteDNIEmiteBoleta(t *testing.T) {
	c := cotizacionRUC()
	c.TipoDocumento = "DNI"
	c.NroDocumento = "45678912"

	p, err := facturacion.BuildInvoicePayload(c, emisorCompleto(), "B001", "3", time.Now())
	require.NoError(t, err)

	assert.Equal(t, "03", p.TipoDoc)
	assert.Equal(t, "1", p.Client.TipoDoc)
	assert.Equal(t, "45678912", p.Client.NumDoc)
}

func TestBuildInvoicePayload_DireccionConUbigeoPorDefecto(t *testing.T) {
	p, err := facturacion.BuildInvoicePayload(cotizacionRUC(), emisorCompleto(), "F001", "1", time.Now())
	require.NoError(t, err)

	assert.Equal(t, "150101", p.Client.Address.Ubigueo)
	assert.Equal(t, "LIMA", p.Client.Address.Distrito)
	assert.Equal(t, "JR. UNION 456", p.Client.Address.Direccion)
	assert.Equal(t, "150101", p.Company.Address.Ubigueo)
	assert.Equal(t, "ACME PERU S.A.C.", p.Company.RazonSocial)
}

func TestBuildInvoicePayload_RedondeoPorLinea(t *testing.T) {
	// 3 × 33.333333 → base de línea 99.999999; el IGV se calcula sobre la
	// base de línea y se redondea por línea, los totales suman lo redondeado.
	c := cotizacionRUC()
	c.Productos = []entity.Producto{
		{
			ID:             1,
			Descripcion:    "Item fraccionario",
			Unidades:       3,
			PrecioUnitario: decimal.NewFromFloat(33.333333),
			Total:          decimal.NewFromFloat(99.999999),
		},
	}

	p, err := facturacion.BuildInvoicePayload(c, emisorCompleto(), "F001", "1", time.Now())
	require.NoError(t, err)

	d := p.Details[0]
	assert.Equal(t, 33.33, d.MtoValorUnitario)
	assert.Equal(t, 100.00, d.MtoValorVenta)
	assert.Equal(t, 18.00, d.Igv)
	assert.Equal(t, 39.33333, d.MtoPrecioUnitario) // 33.333333 × 1.18, 5 decimales
	assert.Equal(t, 118.00, p.MtoImpVenta)
}

func TestBuildInvoicePayload_PerfilIncompleto(t *testing.T) {
	u := emisorCompleto()
	u.BusinessRUC = ""

	_, err := facturacion.BuildInvoicePayload(cotizacionRUC(), u, "F001", "1", time.Now())
	assert.ErrorIs(t, err, domain.ErrIncompleteBusinessProfile)
}

func TestBuildInvoicePayload_AutoFacturacion(t *testing.T) {
	c := cotizacionRUC()
	c.NroDocumento = "20123456789" // el RUC del propio emisor

	_, err := facturacion.BuildInvoicePayload(c, emisorCompleto(), "F001", "1", time.Now())
	assert.ErrorIs(t, err, domain.ErrSelfBilling)
}

func TestBuildInvoicePayload_SinProductos(t *testing.T) {
	c := cotizacionRUC()
	c.Productos = nil

	_, err := facturacion.BuildInvoicePayload(c, emisorCompleto(), "F001", "1", time.Now())
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// BuildGuiaPayload: la modalidad de traslado decide los sub-bloques del envío.
// ──────────────────────────────────────────────────────────────────────────────

func guiaBase() *facturacion.GuiaData {
	return &facturacion.GuiaData{
		Destinatario: facturacion.Destinatario{
			TipoDoc: "6", NumDoc: "20987654321", RznSocial: "CLIENTE INDUSTRIAL S.A.",
		},
		CodTraslado: "01",
		FecTraslado: time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC),
		PesoTotal:   decimal.NewFromFloat(12.5),
		Partida:     facturacion.GuiaPunto{Ubigueo: "150101", Direccion: "AV. AREQUIPA 123"},
		Llegada:     facturacion.GuiaPunto{Ubigueo: "150122", Direccion: "JR. UNION 456"},
		Bienes: []facturacion.GuiaDetail{
			{Cantidad: 4, Unidad: "NIU", Descripcion: "Cajas de repuestos"},
		},
	}
}

func TestBuildGuiaPayload_TransportePublico(t *testing.T) {
	g := guiaBase()
	g.ModTraslado = entity.TrasladoPublico
	g.Transportista = &facturacion.Transportista{
		TipoDoc: "6", NumDoc: "20555555551", RznSocial: "TRANSPORTES RAPIDOS S.A.",
	}

	p, err := facturacion.BuildGuiaPayload(g, emisorCompleto(), "T001", "5", time.Now())
	require.NoError(t, err)

	assert.Equal(t, "09", p.TipoDoc)
	assert.Equal(t, "2022", p.Version)
	assert.Equal(t, "01", p.Envio.ModTraslado)
	require.NotNil(t, p.Envio.Transportista)
	assert.Equal(t, "TRANSPORTES RAPIDOS S.A.", p.Envio.Transportista.RznSocial)
	assert.Nil(t, p.Envio.Vehiculo)
	assert.Empty(t, p.Envio.Choferes)
	assert.Equal(t, "2026-03-16", p.Envio.FecTraslado)
	assert.Equal(t, 12.5, p.Envio.PesoTotal)
	assert.Equal(t, "KGM", p.Envio.UndPesoTotal)
}

func TestBuildGuiaPayload_TransportePrivadoConPlaca(t *testing.T) {
	g := guiaBase()
	g.ModTraslado = entity.TrasladoPrivado
	g.Conductor = &facturacion.Chofer{
		Tipo: "Principal", TipoDoc: "1", NroDoc: "45678912",
		Licencia: "Q45678912", Nombres: "JUAN", Apellidos: "PEREZ",
	}
	g.Transportista = &facturacion.Transportista{Placa: "ABC-123"}

	p, err := facturacion.BuildGuiaPayload(g, emisorCompleto(), "T001", "6", time.Now())
	require.NoError(t, err)

	assert.Nil(t, p.Envio.Transportista)
	require.Len(t, p.Envio.Choferes, 1)
	assert.Equal(t, "JUAN", p.Envio.Choferes[0].Nombres)
	require.NotNil(t, p.Envio.Vehiculo)
	assert.Equal(t, "ABC-123", p.Envio.Vehiculo.Placa)
}

func TestBuildGuiaPayload_TransportePrivadoSinPlaca(t *testing.T) {
	g := guiaBase()
	g.ModTraslado = entity.TrasladoPrivado
	g.Conductor = &facturacion.Chofer{Tipo: "Principal", TipoDoc: "1", NroDoc: "45678912"}

	p, err := facturacion.BuildGuiaPayload(g, emisorCompleto(), "T001", "7", time.Now())
	require.NoError(t, err)

	assert.Nil(t, p.Envio.Vehiculo)
}

func TestBuildGuiaPayload_SinBienes(t *testing.T) {
	g := guiaBase()
	g.ModTraslado = entity.TrasladoPublico
	g.Bienes = nil

	_, err := facturacion.BuildGuiaPayload(g, emisorCompleto(), "T001", "1", time.Now())
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
