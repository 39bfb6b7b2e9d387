// Package excel genera las exportaciones XLSX con excelize.
package excel

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/cotizaperu/cotiza-api/internal/application/reports"
	"github.com/cotizaperu/cotiza-api/internal/domain/entity"
	"github.com/cotizaperu/cotiza-api/pkg/sunat"
)

var _ reports.Exporter = (*ExcelizeExporter)(nil)

// ExcelizeExporter implementa reports.Exporter.
type ExcelizeExporter struct{}

// NewExcelizeExporter crea el exportador.
func NewExcelizeExporter() *ExcelizeExporter {
	return &ExcelizeExporter{}
}

const sheetName = "Cotizaciones"

var headers = []string{"Número", "Cliente", "Tipo Doc.", "N° Documento", "Moneda", "Total", "Fecha", "Facturada"}

// CotizacionesXLSX arma la hoja con una fila por cotización.
func (e *ExcelizeExporter) CotizacionesXLSX(list []*entity.Cotizacion) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, fmt.Errorf("excel: creando hoja: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("excel: eliminando hoja por defecto: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("excel: creando estilo: %w", err)
	}

	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, h)
		f.SetCellStyle(sheetName, cell, cell, bold)
	}

	for i, c := range list {
		row := i + 2
		facturada := "No"
		if c.ComprobanteID != 0 {
			facturada = "Sí"
		}
		values := []any{
			c.Numero,
			c.NombreCliente,
			c.TipoDocumento,
			c.NroDocumento,
			c.Moneda,
			c.MontoTotal.InexactFloat64(),
			c.FechaCreacion.In(sunat.LimaZone).Format("02/01/2006"),
			facturada,
		}
		for j, v := range values {
			cell, _ := excelize.CoordinatesToCellName(j+1, row)
			f.SetCellValue(sheetName, cell, v)
		}
	}

	if err := f.SetColWidth(sheetName, "B", "B", 32); err != nil {
		return nil, fmt.Errorf("excel: ajustando columnas: %w", err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("excel: escribiendo archivo: %w", err)
	}
	return buf.Bytes(), nil
}
