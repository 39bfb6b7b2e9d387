package billing

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/cotizaperu/cotiza-api/internal/application/dto"
	"github.com/cotizaperu/cotiza-api/internal/domain"
	"github.com/cotizaperu/cotiza-api/internal/domain/entity"
	"github.com/cotizaperu/cotiza-api/internal/domain/facturacion"
	"github.com/cotizaperu/cotiza-api/internal/domain/repository"
	"github.com/cotizaperu/cotiza-api/internal/domain/sequence"
	"github.com/cotizaperu/cotiza-api/pkg/logger"
	"github.com/cotizaperu/cotiza-api/pkg/secrets"
	"github.com/cotizaperu/cotiza-api/pkg/sunat"
)

// UseCase casos de uso de facturación electrónica.
type UseCase struct {
	users        repository.UserRepository
	quotes       repository.CotizacionRepository
	comprobantes repository.ComprobanteRepository
	guias        repository.GuiaRepository
	sequences    repository.SequenceRepository
	gateway      Gateway
	renderer     Renderer
	box          *secrets.Box
	log          *logger.Logger
	now          func() time.Time
}

// New crea el caso de uso.
func New(
	users repository.UserRepository,
	quotes repository.CotizacionRepository,
	comprobantes repository.ComprobanteRepository,
	guias repository.GuiaRepository,
	sequences repository.SequenceRepository,
	gateway Gateway,
	renderer Renderer,
	box *secrets.Box,
	log *logger.Logger,
) *UseCase {
	return &UseCase{
		users:        users,
		quotes:       quotes,
		comprobantes: comprobantes,
		guias:        guias,
		sequences:    sequences,
		gateway:      gateway,
		renderer:     renderer,
		box:          box,
		log:          log,
		now:          time.Now,
	}
}

// Facturar emite el comprobante de una cotización: factura si el cliente
// tiene RUC, boleta en cualquier otro caso. El payload enviado y la respuesta
// del proveedor se persisten literales; el comprobante queda enlazado a la
// cotización (a lo sumo uno por cotización).
func (uc *UseCase) Facturar(ctx context.Context, ownerID string, cotizacionID int64, req dto.EmitirRequest) (*dto.ComprobanteResponse, error) {
	if err := dto.Validate(req); err != nil {
		return nil, err
	}

	user, err := uc.users.GetByID(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("billing: consultando usuario: %w", err)
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}

	c, err := uc.quotes.GetByID(ctx, cotizacionID, ownerID)
	if err != nil {
		return nil, fmt.Errorf("billing: consultando cotización: %w", err)
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	if c.ComprobanteID != 0 {
		return nil, fmt.Errorf("%w: la cotización %s ya tiene comprobante", domain.ErrInvalidInput, c.Numero)
	}

	tipoDoc := sunat.InvoiceDocCode(c.TipoDocumento)
	scope := sequence.ComprobanteScope(ownerID, req.Serie, tipoDoc)
	n, err := uc.sequences.Next(ctx, scope)
	if err != nil {
		return nil, fmt.Errorf("billing: asignando correlativo: %w", err)
	}
	correlativo := scope.Format(n)

	emision := uc.now()
	payload, err := facturacion.BuildInvoicePayload(c, user, req.Serie, correlativo, emision)
	if err != nil {
		return nil, err
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("billing: serializando payload: %w", err)
	}

	token, err := uc.providerToken(ctx, user)
	if err != nil {
		return nil, err
	}
	result, err := uc.gateway.SendInvoice(ctx, token, payload)
	if err != nil {
		return nil, err
	}

	cmp := &entity.Comprobante{
		TipoDoc:        tipoDoc,
		Serie:          req.Serie,
		Correlativo:    correlativo,
		FechaEmision:   emision,
		Exito:          result.Success,
		SunatResponse:  result.Raw,
		Hash:           result.Hash,
		PayloadEnviado: raw,
		OwnerID:        ownerID,
		CotizacionID:   c.ID,
	}
	if err := uc.comprobantes.Create(ctx, cmp); err != nil {
		return nil, fmt.Errorf("billing: guardando comprobante: %w", err)
	}

	uc.log.Info().
		Str("user_id", ownerID).
		Str("documento", fmt.Sprintf("%s-%s-%s", tipoDoc, req.Serie, correlativo)).
		Bool("exito", result.Success).
		Msg("comprobante emitido")

	resp := dto.NewComprobanteResponse(cmp)
	return &resp, nil
}

// ListComprobantes lista los comprobantes del dueño; tipoDoc filtra por
// "01"/"03" si no está vacío.
func (uc *UseCase) ListComprobantes(ctx context.Context, ownerID, tipoDoc string) ([]dto.ComprobanteResponse, error) {
	list, err := uc.comprobantes.ListByOwner(ctx, ownerID, tipoDoc)
	if err != nil {
		return nil, fmt.Errorf("billing: listando comprobantes: %w", err)
	}
	out := make([]dto.ComprobanteResponse, 0, len(list))
	for _, c := range list {
		out = append(out, dto.NewComprobanteResponse(c))
	}
	return out, nil
}

// GetComprobante carga un comprobante del dueño.
func (uc *UseCase) GetComprobante(ctx context.Context, id int64, ownerID string) (*dto.ComprobanteResponse, error) {
	cmp, err := uc.comprobantes.GetByID(ctx, id, ownerID)
	if err != nil {
		return nil, fmt.Errorf("billing: consultando comprobante: %w", err)
	}
	if cmp == nil {
		return nil, domain.ErrNotFound
	}
	resp := dto.NewComprobanteResponse(cmp)
	return &resp, nil
}
