// Package billing orquesta la emisión de comprobantes y guías de remisión
// contra el proveedor (Apis Perú): numeración, construcción del payload,
// envío, persistencia del resultado y descargas (PDF, XML, CDR).
package billing

import (
	"context"

	"github.com/cotizaperu/cotiza-api/internal/domain/entity"
	"github.com/cotizaperu/cotiza-api/internal/domain/facturacion"
)

// ProviderResult resultado de un envío aceptado por el proveedor (HTTP 2xx).
// Success refleja el campo sunatResponse.success del cuerpo; Raw es el JSON
// literal de la respuesta, que se persiste sin tocar.
type ProviderResult struct {
	Success bool
	Hash    string
	Raw     []byte
}

// Gateway puerto hacia el proveedor de facturación. Un rechazo HTTP se
// reporta como *domain.BillingProviderError con el mensaje ya extraído del
// cuerpo; los fallos de red van como error normal.
type Gateway interface {
	// Login canjea usuario y contraseña por un token JWT del proveedor.
	Login(ctx context.Context, username, password string) (string, error)
	SendInvoice(ctx context.Context, token string, payload *facturacion.InvoicePayload) (*ProviderResult, error)
	SendGuia(ctx context.Context, token string, payload *facturacion.GuiaPayload) (*ProviderResult, error)
	// FetchInvoiceArtifact reenvía un payload ya emitido a /invoice/{kind}
	// (kind: "pdf" | "xml") y devuelve los bytes del artefacto.
	FetchInvoiceArtifact(ctx context.Context, token, kind string, payload []byte) ([]byte, error)
}

// Renderer puerto de generación local de PDFs.
type Renderer interface {
	// RenderCotizacion genera el PDF de una cotización con la identidad
	// visual del negocio (logo, color, notas, cuentas bancarias).
	RenderCotizacion(c *entity.Cotizacion, u *entity.User) ([]byte, error)
	// RenderComprobante genera la representación impresa de un comprobante a
	// partir del payload persistido, sin recalcular montos.
	RenderComprobante(cmp *entity.Comprobante, payload *facturacion.InvoicePayload, u *entity.User) ([]byte, error)
}
