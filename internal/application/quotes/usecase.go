// Package quotes implementa el ciclo de vida de las cotizaciones: creación
// con numeración atómica, lectura, reemplazo completo y borrado.
package quotes

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/cotizaperu/cotiza-api/internal/application/dto"
	"github.com/cotizaperu/cotiza-api/internal/domain"
	"github.com/cotizaperu/cotiza-api/internal/domain/repository"
	"github.com/cotizaperu/cotiza-api/internal/domain/sequence"
	"github.com/cotizaperu/cotiza-api/pkg/logger"
)

// Tolerancia entre el total declarado y la suma de líneas (un centavo, por
// redondeos del cliente web).
var totalTolerance = decimal.NewFromFloat(0.01)

// Reintentos ante conflicto de numeración antes de rendirse.
const maxSequenceRetries = 3

// UseCase casos de uso de cotizaciones.
type UseCase struct {
	quotes    repository.CotizacionRepository
	sequences repository.SequenceRepository
	log       *logger.Logger
}

// New crea el caso de uso.
func New(quotes repository.CotizacionRepository, sequences repository.SequenceRepository, log *logger.Logger) *UseCase {
	return &UseCase{quotes: quotes, sequences: sequences, log: log}
}

// Create valida, asigna el siguiente número global y persiste cabecera y
// líneas. Un conflicto de numeración se reintenta con un número nuevo.
func (uc *UseCase) Create(ctx context.Context, ownerID string, req dto.CotizacionRequest) (*dto.CotizacionResponse, error) {
	if err := dto.Validate(req); err != nil {
		return nil, err
	}
	c := req.ToEntity(ownerID)
	if err := uc.checkTotal(c.MontoTotal, c.SumaLineas()); err != nil {
		return nil, err
	}

	scope := sequence.CotizacionScope()
	var lastErr error
	for i := 0; i < maxSequenceRetries; i++ {
		n, err := uc.sequences.Next(ctx, scope)
		if err != nil {
			return nil, fmt.Errorf("quotes: asignando número: %w", err)
		}
		c.Numero = scope.Format(n)

		err = uc.quotes.Create(ctx, c)
		if err == nil {
			uc.log.Info().Int64("cotizacion_id", c.ID).Str("numero", c.Numero).Msg("cotización creada")
			resp := dto.NewCotizacionResponse(c)
			return &resp, nil
		}
		if !errors.Is(err, domain.ErrSequenceConflict) {
			return nil, fmt.Errorf("quotes: creando cotización: %w", err)
		}
		lastErr = err
		uc.log.Warn().Str("numero", c.Numero).Msg("número de cotización en conflicto, reintentando")
	}
	return nil, fmt.Errorf("quotes: numeración agotó reintentos: %w", lastErr)
}

// Get carga una cotización del dueño con sus líneas.
func (uc *UseCase) Get(ctx context.Context, id int64, ownerID string) (*dto.CotizacionResponse, error) {
	c, err := uc.quotes.GetByID(ctx, id, ownerID)
	if err != nil {
		return nil, fmt.Errorf("quotes: consultando cotización: %w", err)
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	resp := dto.NewCotizacionResponse(c)
	return &resp, nil
}

// List lista las cotizaciones del dueño, más reciente primero.
func (uc *UseCase) List(ctx context.Context, ownerID string) ([]dto.CotizacionResponse, error) {
	list, err := uc.quotes.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("quotes: listando cotizaciones: %w", err)
	}
	out := make([]dto.CotizacionResponse, 0, len(list))
	for _, c := range list {
		out = append(out, dto.NewCotizacionResponse(c))
	}
	return out, nil
}

// Update reemplaza cabecera y líneas. El número asignado no cambia.
func (uc *UseCase) Update(ctx context.Context, id int64, ownerID string, req dto.CotizacionRequest) (*dto.CotizacionResponse, error) {
	if err := dto.Validate(req); err != nil {
		return nil, err
	}
	current, err := uc.quotes.GetByID(ctx, id, ownerID)
	if err != nil {
		return nil, fmt.Errorf("quotes: consultando cotización: %w", err)
	}
	if current == nil {
		return nil, domain.ErrNotFound
	}

	c := req.ToEntity(ownerID)
	if err := uc.checkTotal(c.MontoTotal, c.SumaLineas()); err != nil {
		return nil, err
	}
	c.ID = current.ID
	c.Numero = current.Numero
	c.FechaCreacion = current.FechaCreacion
	c.ComprobanteID = current.ComprobanteID

	if err := uc.quotes.Update(ctx, c); err != nil {
		return nil, fmt.Errorf("quotes: actualizando cotización: %w", err)
	}
	uc.log.Info().Int64("cotizacion_id", c.ID).Msg("cotización actualizada")
	resp := dto.NewCotizacionResponse(c)
	return &resp, nil
}

// Delete borra la cotización, sus líneas y el comprobante vinculado si lo hay.
func (uc *UseCase) Delete(ctx context.Context, id int64, ownerID string) error {
	if err := uc.quotes.Delete(ctx, id, ownerID); err != nil {
		return fmt.Errorf("quotes: borrando cotización: %w", err)
	}
	uc.log.Info().Int64("cotizacion_id", id).Msg("cotización borrada")
	return nil
}

func (uc *UseCase) checkTotal(declared, sum decimal.Decimal) error {
	if declared.Sub(sum).Abs().GreaterThan(totalTolerance) {
		return fmt.Errorf("%w: monto_total %s no coincide con la suma de líneas %s",
			domain.ErrInvalidInput, declared.StringFixed(2), sum.StringFixed(2))
	}
	return nil
}
