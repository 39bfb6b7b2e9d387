package billing

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/cotizaperu/cotiza-api/internal/application/dto"
	"github.com/cotizaperu/cotiza-api/internal/domain"
	"github.com/cotizaperu/cotiza-api/internal/domain/entity"
	"github.com/cotizaperu/cotiza-api/internal/domain/facturacion"
	"github.com/cotizaperu/cotiza-api/internal/domain/sequence"
)

// CrearGuia emite una guía de remisión remitente. La numeración es por
// (dueño, serie); la modalidad de traslado decide los bloques del envío.
func (uc *UseCase) CrearGuia(ctx context.Context, ownerID string, req dto.GuiaRequest) (*dto.GuiaResponse, error) {
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

	scope := sequence.GuiaScope(ownerID, req.Serie)
	n, err := uc.sequences.Next(ctx, scope)
	if err != nil {
		return nil, fmt.Errorf("billing: asignando correlativo de guía: %w", err)
	}
	correlativo := scope.Format(n)

	emision := uc.now()
	payload, err := facturacion.BuildGuiaPayload(guiaData(req), user, req.Serie, correlativo, emision)
	if err != nil {
		return nil, err
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("billing: serializando payload de guía: %w", err)
	}

	token, err := uc.providerToken(ctx, user)
	if err != nil {
		return nil, err
	}
	result, err := uc.gateway.SendGuia(ctx, token, payload)
	if err != nil {
		return nil, err
	}

	g := &entity.GuiaRemision{
		Serie:          req.Serie,
		Correlativo:    correlativo,
		FechaEmision:   emision,
		Destinatario:   req.DestinatarioRznSocial,
		Exito:          result.Success,
		SunatResponse:  result.Raw,
		Hash:           result.Hash,
		PayloadEnviado: raw,
		OwnerID:        ownerID,
	}
	if err := uc.guias.Create(ctx, g); err != nil {
		return nil, fmt.Errorf("billing: guardando guía: %w", err)
	}

	uc.log.Info().
		Str("user_id", ownerID).
		Str("documento", fmt.Sprintf("09-%s-%s", req.Serie, correlativo)).
		Bool("exito", result.Success).
		Msg("guía de remisión emitida")

	resp := dto.NewGuiaResponse(g)
	return &resp, nil
}

// ListGuias lista las guías del dueño.
func (uc *UseCase) ListGuias(ctx context.Context, ownerID string) ([]dto.GuiaResponse, error) {
	list, err := uc.guias.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("billing: listando guías: %w", err)
	}
	out := make([]dto.GuiaResponse, 0, len(list))
	for _, g := range list {
		out = append(out, dto.NewGuiaResponse(g))
	}
	return out, nil
}

// guiaData traduce el request al insumo del constructor de payloads.
func guiaData(req dto.GuiaRequest) *facturacion.GuiaData {
	bienes := make([]facturacion.GuiaDetail, 0, len(req.Bienes))
	for _, b := range req.Bienes {
		bienes = append(bienes, facturacion.GuiaDetail{
			Cantidad:    b.Cantidad,
			Unidad:      b.Unidad,
			Descripcion: b.Descripcion,
			Codigo:      b.Codigo,
		})
	}
	data := &facturacion.GuiaData{
		Destinatario: facturacion.Destinatario{
			TipoDoc:   req.DestinatarioTipoDoc,
			NumDoc:    req.DestinatarioNumDoc,
			RznSocial: req.DestinatarioRznSocial,
		},
		ModTraslado: req.ModTraslado,
		CodTraslado: req.CodTraslado,
		FecTraslado: req.FecTraslado,
		PesoTotal:   decimal.NewFromFloat(req.PesoTotal),
		Partida:     facturacion.GuiaPunto{Ubigueo: req.Partida.Ubigeo, Direccion: req.Partida.Direccion},
		Llegada:     facturacion.GuiaPunto{Ubigueo: req.Llegada.Ubigeo, Direccion: req.Llegada.Direccion},
		Bienes:      bienes,
	}
	if req.Transportista != nil {
		data.Transportista = &facturacion.Transportista{
			TipoDoc:   req.Transportista.TipoDoc,
			NumDoc:    req.Transportista.NumDoc,
			RznSocial: req.Transportista.RznSocial,
			Placa:     req.Transportista.Placa,
		}
	}
	if req.Chofer != nil {
		data.Conductor = &facturacion.Chofer{
			Tipo:      "Principal",
			TipoDoc:   req.Chofer.TipoDoc,
			NroDoc:    req.Chofer.NroDoc,
			Licencia:  req.Chofer.Licencia,
			Nombres:   req.Chofer.Nombres,
			Apellidos: req.Chofer.Apellidos,
		}
	}
	return data
}
