package billing

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/cotizaperu/cotiza-api/internal/domain"
	"github.com/cotizaperu/cotiza-api/internal/domain/facturacion"
)

// Artifact descarga lista para servir.
type Artifact struct {
	Data        []byte
	Filename    string
	ContentType string
}

// Tipos de descarga de un comprobante.
const (
	ArtifactPDF = "pdf"
	ArtifactXML = "xml"
	ArtifactCDR = "cdr"
)

// DescargarComprobante entrega un artefacto del comprobante. El XML y el PDF
// se piden al proveedor reenviando el payload persistido (idempotente: no
// vuelve a declarar ante SUNAT); el CDR se extrae de la respuesta guardada
// sin tocar la red.
func (uc *UseCase) DescargarComprobante(ctx context.Context, ownerID string, id int64, kind string) (*Artifact, error) {
	cmp, err := uc.comprobantes.GetByID(ctx, id, ownerID)
	if err != nil {
		return nil, fmt.Errorf("billing: consultando comprobante: %w", err)
	}
	if cmp == nil {
		return nil, domain.ErrNotFound
	}
	user, err := uc.users.GetByID(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("billing: consultando usuario: %w", err)
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}

	base := fmt.Sprintf("%s-%s-%s-%s", user.BusinessRUC, cmp.TipoDoc, cmp.Serie, cmp.Correlativo)

	switch kind {
	case ArtifactPDF, ArtifactXML:
		token, err := uc.providerToken(ctx, user)
		if err != nil {
			return nil, err
		}
		data, err := uc.gateway.FetchInvoiceArtifact(ctx, token, kind, cmp.PayloadEnviado)
		if err != nil {
			return nil, err
		}
		if kind == ArtifactPDF {
			return &Artifact{Data: data, Filename: base + ".pdf", ContentType: "application/pdf"}, nil
		}
		return &Artifact{Data: data, Filename: base + ".xml", ContentType: "application/xml"}, nil

	case ArtifactCDR:
		zipBytes, status, err := extractCDR(cmp.SunatResponse)
		if err != nil {
			return nil, err
		}
		uc.log.Debug().
			Str("documento", base).
			Str("cdr_code", status.Code).
			Msg("CDR extraído de la respuesta persistida")
		return &Artifact{Data: zipBytes, Filename: "R-" + base + ".zip", ContentType: "application/zip"}, nil

	default:
		return nil, fmt.Errorf("%w: descarga desconocida %q", domain.ErrInvalidInput, kind)
	}
}

// RenderCotizacionPDF genera el PDF local de una cotización.
func (uc *UseCase) RenderCotizacionPDF(ctx context.Context, ownerID string, cotizacionID int64) (*Artifact, error) {
	c, err := uc.quotes.GetByID(ctx, cotizacionID, ownerID)
	if err != nil {
		return nil, fmt.Errorf("billing: consultando cotización: %w", err)
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	user, err := uc.users.GetByID(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("billing: consultando usuario: %w", err)
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}

	data, err := uc.renderer.RenderCotizacion(c, user)
	if err != nil {
		return nil, fmt.Errorf("billing: generando PDF de cotización: %w", err)
	}
	return &Artifact{
		Data:        data,
		Filename:    fmt.Sprintf("cotizacion-%s.pdf", c.Numero),
		ContentType: "application/pdf",
	}, nil
}

// RenderComprobantePDF genera localmente la representación impresa de un
// comprobante a partir del payload persistido (alternativa al PDF del
// proveedor, con la identidad visual del negocio).
func (uc *UseCase) RenderComprobantePDF(ctx context.Context, ownerID string, id int64) (*Artifact, error) {
	cmp, err := uc.comprobantes.GetByID(ctx, id, ownerID)
	if err != nil {
		return nil, fmt.Errorf("billing: consultando comprobante: %w", err)
	}
	if cmp == nil {
		return nil, domain.ErrNotFound
	}
	user, err := uc.users.GetByID(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("billing: consultando usuario: %w", err)
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}

	var payload facturacion.InvoicePayload
	if err := json.Unmarshal(cmp.PayloadEnviado, &payload); err != nil {
		return nil, fmt.Errorf("billing: payload persistido corrupto: %w", err)
	}
	data, err := uc.renderer.RenderComprobante(cmp, &payload, user)
	if err != nil {
		return nil, fmt.Errorf("billing: generando PDF de comprobante: %w", err)
	}
	return &Artifact{
		Data:        data,
		Filename:    fmt.Sprintf("%s-%s-%s-%s.pdf", user.BusinessRUC, cmp.TipoDoc, cmp.Serie, cmp.Correlativo),
		ContentType: "application/pdf",
	}, nil
}
