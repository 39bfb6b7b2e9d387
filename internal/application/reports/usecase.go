// Package reports genera exportaciones tabulares para el usuario (listado de
// cotizaciones en Excel).
package reports

import (
	"context"
	"fmt"
	"time"

	"github.com/cotizaperu/cotiza-api/internal/domain/entity"
	"github.com/cotizaperu/cotiza-api/internal/domain/repository"
	"github.com/cotizaperu/cotiza-api/pkg/logger"
)

// Exporter puerto de generación de hojas de cálculo.
type Exporter interface {
	CotizacionesXLSX(list []*entity.Cotizacion) ([]byte, error)
}

// UseCase casos de uso de reportes.
type UseCase struct {
	quotes   repository.CotizacionRepository
	exporter Exporter
	log      *logger.Logger
}

// New crea el caso de uso.
func New(quotes repository.CotizacionRepository, exporter Exporter, log *logger.Logger) *UseCase {
	return &UseCase{quotes: quotes, exporter: exporter, log: log}
}

// ExportCotizaciones genera el Excel con todas las cotizaciones del dueño.
func (uc *UseCase) ExportCotizaciones(ctx context.Context, ownerID string) (data []byte, filename string, err error) {
	list, err := uc.quotes.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, "", fmt.Errorf("reports: listando cotizaciones: %w", err)
	}
	data, err = uc.exporter.CotizacionesXLSX(list)
	if err != nil {
		return nil, "", fmt.Errorf("reports: generando Excel: %w", err)
	}
	filename = fmt.Sprintf("cotizaciones-%s.xlsx", time.Now().Format("2006-01-02"))
	uc.log.Info().Str("user_id", ownerID).Int("filas", len(list)).Msg("exportación de cotizaciones generada")
	return data, filename, nil
}
