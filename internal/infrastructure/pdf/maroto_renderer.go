// Package pdf implementa la generación local de PDFs con Maroto v2: la
// cotización comercial y la representación impresa del comprobante, ambas con
// la identidad visual configurada por cada negocio.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Logo  │  Razón Social + RUC + Dir  │  N° + Fecha   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  CLIENTE: Nombre + Documento + Dirección                    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Cant | Descripción | P.Unit | Total                 │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES (comprobante: Gravado / IGV / Importe Total)       │
//	│  LEYENDA: importe en letras (solo comprobante)              │
//	│  ─────────────────────────────────────────────────────────  │
//	│  NOTAS + CUENTAS BANCARIAS │ QR + HASH (solo comprobante)   │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/image"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	appbilling "github.com/cotizaperu/cotiza-api/internal/application/billing"
	"github.com/cotizaperu/cotiza-api/internal/domain/entity"
	"github.com/cotizaperu/cotiza-api/internal/domain/facturacion"
	"github.com/cotizaperu/cotiza-api/pkg/sunat"
)

// ── Paleta por defecto (el negocio puede cambiar el color primario) ───────────

var (
	defaultPrimary = &props.Color{Red: 13, Green: 71, Blue: 161}
	colorGray      = &props.Color{Red: 100, Green: 100, Blue: 100}
)

var _ appbilling.Renderer = (*MarotoRenderer)(nil)

// MarotoRenderer implementa billing.Renderer usando Maroto v2.
type MarotoRenderer struct {
	logoDir string
}

// NewMarotoRenderer construye el generador. logoDir es el directorio donde el
// almacén de logos guarda los archivos subidos.
func NewMarotoRenderer(logoDir string) *MarotoRenderer {
	return &MarotoRenderer{logoDir: logoDir}
}

// RenderCotizacion genera el PDF de una cotización.
func (g *MarotoRenderer) RenderCotizacion(c *entity.Cotizacion, u *entity.User) ([]byte, error) {
	primary := parseHexColor(u.PrimaryColor, defaultPrimary)
	m := g.newDocument("Cotización "+c.Numero, u)

	m.AddRows(g.headerRow(u, primary, "COTIZACIÓN", "N° "+c.Numero, c.FechaCreacion.In(sunat.LimaZone).Format("02/01/2006")))
	m.AddRows(line.NewRow(1, props.Line{Color: primary, Thickness: 0.5}))
	m.AddRows(clientRow(primary, c.NombreCliente, c.TipoDocumento+": "+c.NroDocumento, c.DireccionCliente))
	m.AddRows(line.NewRow(1, props.Line{Color: primary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow(primary))
	for _, p := range c.Productos {
		m.AddRows(detailRow(
			strconv.Itoa(p.Unidades),
			p.Descripcion,
			p.PrecioUnitario.StringFixed(2),
			p.Total.StringFixed(2),
		))
	}

	m.AddRows(line.NewRow(1, props.Line{Color: primary, Thickness: 0.3}))
	simbolo := currencySymbol(c.Moneda)
	m.AddRows(totalsRow(primary, []totalLine{
		{label: "TOTAL:", value: simbolo + " " + c.MontoTotal.StringFixed(2), grand: true},
	}))

	for _, r := range g.footerRows(u, primary) {
		m.AddRows(r)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar cotización: %w", err)
	}
	return doc.GetBytes(), nil
}

// RenderComprobante genera la representación impresa de un comprobante a
// partir del payload persistido: los montos salen tal cual se declararon,
// nunca se recalculan.
func (g *MarotoRenderer) RenderComprobante(cmp *entity.Comprobante, payload *facturacion.InvoicePayload, u *entity.User) ([]byte, error) {
	primary := parseHexColor(u.PrimaryColor, defaultPrimary)
	titulo := "BOLETA DE VENTA ELECTRÓNICA"
	if cmp.TipoDoc == entity.TipoDocFactura {
		titulo = "FACTURA ELECTRÓNICA"
	}
	numero := cmp.Serie + "-" + cmp.Correlativo

	m := g.newDocument(titulo+" "+numero, u)

	m.AddRows(g.headerRow(u, primary, titulo, numero, cmp.FechaEmision.In(sunat.LimaZone).Format("02/01/2006")))
	m.AddRows(line.NewRow(1, props.Line{Color: primary, Thickness: 0.5}))
	m.AddRows(clientRow(primary, payload.Client.RznSocial,
		"Doc: "+payload.Client.NumDoc, payload.Client.Address.Direccion))
	m.AddRows(line.NewRow(1, props.Line{Color: primary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow(primary))
	for _, d := range payload.Details {
		m.AddRows(detailRow(
			decimal.NewFromFloat(d.Cantidad).StringFixed(0),
			d.Descripcion,
			decimal.NewFromFloat(d.MtoValorUnitario).StringFixed(2),
			decimal.NewFromFloat(d.MtoValorVenta).StringFixed(2),
		))
	}

	m.AddRows(line.NewRow(1, props.Line{Color: primary, Thickness: 0.3}))
	simbolo := currencySymbol(payload.TipoMoneda)
	m.AddRows(totalsRow(primary, []totalLine{
		{label: "Op. Gravada:", value: simbolo + " " + decimal.NewFromFloat(payload.MtoOperGravadas).StringFixed(2)},
		{label: "IGV (18%):", value: simbolo + " " + decimal.NewFromFloat(payload.MtoIGV).StringFixed(2)},
		{label: "IMPORTE TOTAL:", value: simbolo + " " + decimal.NewFromFloat(payload.MtoImpVenta).StringFixed(2), grand: true},
	}))

	for _, l := range payload.Legends {
		m.AddRows(row.New(6).Add(col.New(12).Add(
			text.New(l.Value, props.Text{Size: 8, Style: fontstyle.Italic, Top: 1, Color: colorGray}),
		)))
	}

	for _, r := range g.sunatFooterRows(cmp, payload, u) {
		m.AddRows(r)
	}
	for _, r := range g.footerRows(u, primary) {
		m.AddRows(r)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar comprobante: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func (g *MarotoRenderer) newDocument(title string, u *entity.User) core.Maroto {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(title, true).
		WithAuthor(u.BusinessName, true).
		Build()
	return maroto.New(cfg)
}

// headerRow: logo (izq), datos del emisor (centro) y documento + fecha (der).
func (g *MarotoRenderer) headerRow(u *entity.User, primary *props.Color, titulo, numero, fecha string) core.Row {
	logoCol := col.New(3)
	if u.LogoFilename != "" {
		logoCol.Add(image.NewFromFile(filepath.Join(g.logoDir, u.LogoFilename), props.Rect{
			Percent: 90,
		}))
	}

	return row.New(22).Add(
		logoCol,
		col.New(5).Add(
			text.New(u.BusinessName, props.Text{
				Style: fontstyle.Bold, Size: 12, Color: primary, Top: 1,
			}),
			text.New("RUC: "+u.BusinessRUC, props.Text{Size: 9, Top: 8, Color: colorGray}),
			text.New(u.BusinessAddress, props.Text{Size: 8, Top: 13, Color: colorGray}),
			text.New("Tel: "+u.BusinessPhone, props.Text{Size: 8, Top: 18, Color: colorGray}),
		),
		col.New(4).Add(
			text.New(titulo, props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Right, Color: primary, Top: 1,
			}),
			text.New(numero, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 8,
			}),
			text.New("Fecha: "+fecha, props.Text{
				Size: 8, Align: align.Right, Top: 15, Color: colorGray,
			}),
		),
	)
}

func clientRow(primary *props.Color, nombre, documento, direccion string) core.Row {
	return row.New(14).Add(
		col.New(12).Add(
			text.New("CLIENTE", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: primary, Top: 1,
			}),
			text.New(nombre, props.Text{Style: fontstyle.Bold, Size: 10, Top: 6}),
			text.New(documento+"   |   "+nonEmpty(direccion, "—"), props.Text{
				Size: 8, Top: 12, Color: colorGray,
			}),
		),
	)
}

func tableHeaderRow(primary *props.Color) core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: primary, Top: 2,
		}))
	}
	return row.New(8).Add(
		h("Cant.", 1, align.Center),
		h("Descripción", 6, align.Left),
		h("P. Unitario", 2, align.Right),
		h("Total", 3, align.Right),
	)
}

func detailRow(cantidad, descripcion, precio, total string) core.Row {
	return row.New(7).Add(
		col.New(1).Add(text.New(cantidad, props.Text{Size: 8, Align: align.Center, Top: 1})),
		col.New(6).Add(text.New(descripcion, props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1})),
		col.New(2).Add(text.New(precio, props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		col.New(3).Add(text.New(total, props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
	)
}

type totalLine struct {
	label string
	value string
	grand bool
}

func totalsRow(primary *props.Color, lines []totalLine) core.Row {
	labels := col.New(3)
	values := col.New(3)
	top := 0.0
	for _, l := range lines {
		labelProps := props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2, Top: top}
		valueProps := props.Text{Size: 9, Align: align.Right, Right: 1, Top: top}
		if l.grand {
			labelProps.Size, labelProps.Color = 10, primary
			valueProps.Size, valueProps.Color, valueProps.Style = 10, primary, fontstyle.Bold
		}
		labels.Add(text.New(l.label, labelProps))
		values.Add(text.New(l.value, valueProps))
		top += 6
	}
	return row.New(float64(6*len(lines)+4)).Add(col.New(6), labels, values)
}

// sunatFooterRows: QR de validación + hash de la firma digital.
func (g *MarotoRenderer) sunatFooterRows(cmp *entity.Comprobante, payload *facturacion.InvoicePayload, u *entity.User) []core.Row {
	qr := strings.Join([]string{
		u.BusinessRUC, cmp.TipoDoc, cmp.Serie, cmp.Correlativo,
		decimal.NewFromFloat(payload.MtoIGV).StringFixed(2),
		decimal.NewFromFloat(payload.MtoImpVenta).StringFixed(2),
		cmp.FechaEmision.In(sunat.LimaZone).Format("2006-01-02"),
		payload.Client.TipoDoc, payload.Client.NumDoc,
	}, "|")

	rows := []core.Row{
		row.New(3),
		row.New(30).Add(
			col.New(3).Add(code.NewQr(qr, props.Rect{Percent: 95, Center: true})),
			col.New(9).Add(
				text.New("Representación impresa del comprobante electrónico.", props.Text{
					Size: 7.5, Top: 3, Left: 2, Color: colorGray,
				}),
				text.New("Consulte su documento en el portal de SUNAT.", props.Text{
					Size: 7.5, Top: 8, Left: 2, Color: colorGray,
				}),
			),
		),
	}
	if cmp.Hash != "" {
		rows = append(rows, row.New(5).Add(col.New(12).Add(
			text.New("Hash: "+cmp.Hash, props.Text{Size: 6.5, Color: colorGray, Top: 1}),
		)))
	}
	return rows
}

// footerRows: notas configurables del negocio y cuentas bancarias.
func (g *MarotoRenderer) footerRows(u *entity.User, primary *props.Color) []core.Row {
	var rows []core.Row

	if u.PDFNote1 != "" {
		noteColor := parseHexColor(u.PDFNote1Color, primary)
		rows = append(rows, row.New(6).Add(col.New(12).Add(
			text.New(u.PDFNote1, props.Text{Style: fontstyle.Bold, Size: 8, Top: 2, Color: noteColor}),
		)))
	}
	if u.PDFNote2 != "" {
		rows = append(rows, row.New(6).Add(col.New(12).Add(
			text.New(u.PDFNote2, props.Text{Size: 8, Top: 1, Color: colorGray}),
		)))
	}

	if len(u.BankAccounts) > 0 {
		rows = append(rows,
			row.New(2),
			row.New(5).Add(col.New(12).Add(
				text.New("CUENTAS BANCARIAS", props.Text{
					Style: fontstyle.Bold, Size: 8, Color: primary, Top: 1,
				}),
			)),
		)
		for _, a := range u.BankAccounts {
			linea := a.Banco
			if a.Moneda != "" {
				linea += " (" + a.Moneda + ")"
			}
			linea += ": " + a.Cuenta
			if a.CCI != "" {
				linea += "   CCI: " + a.CCI
			}
			rows = append(rows, row.New(4).Add(col.New(12).Add(
				text.New(linea, props.Text{Size: 7.5, Color: colorGray, Top: 0.5}),
			)))
		}
	}
	return rows
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

func currencySymbol(moneda string) string {
	switch moneda {
	case entity.MonedaSoles, sunat.CurrencyPEN:
		return "S/"
	default:
		return "$"
	}
}

// parseHexColor convierte "#RRGGBB" al color de maroto; fallback si el valor
// no es un hex válido.
func parseHexColor(hex string, fallback *props.Color) *props.Color {
	hex = strings.TrimPrefix(strings.TrimSpace(hex), "#")
	if len(hex) != 6 {
		return fallback
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return fallback
	}
	return &props.Color{
		Red:   int(v >> 16 & 0xFF),
		Green: int(v >> 8 & 0xFF),
		Blue:  int(v & 0xFF),
	}
}
