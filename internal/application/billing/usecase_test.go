package billing_test

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cotizaperu/cotiza-api/internal/application/billing"
	"github.com/cotizaperu/cotiza-api/internal/application/dto"
	"github.com/cotizaperu/cotiza-api/internal/domain"
	"github.com/cotizaperu/cotiza-api/internal/domain/entity"
	"github.com/cotizaperu/cotiza-api/internal/domain/facturacion"
	"github.com/cotizaperu/cotiza-api/internal/domain/sequence"
	"github.com/cotizaperu/cotiza-api/pkg/logger"
	"github.com/cotizaperu/cotiza-api/pkg/secrets"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria de los puertos que usa la emisión.
// ──────────────────────────────────────────────────────────────────────────────

type fakeUserRepo struct {
	user   *entity.User
	tokens int // cuántas veces se cacheó un token
}

func (r *fakeUserRepo) Create(context.Context, *entity.User) error { return nil }
func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	if r.user != nil && r.user.ID == id {
		cp := *r.user
		return &cp, nil
	}
	return nil, nil
}
func (r *fakeUserRepo) GetByEmail(context.Context, string) (*entity.User, error) { return nil, nil }
func (r *fakeUserRepo) UpdateProfile(context.Context, *entity.User) error        { return nil }
func (r *fakeUserRepo) UpdateLogo(context.Context, string, string) error         { return nil }
func (r *fakeUserRepo) UpdateProviderToken(_ context.Context, _ string, token string, expires time.Time) error {
	r.tokens++
	r.user.ApisPeruToken = token
	r.user.ApisPeruTokenExpires = expires
	return nil
}
func (r *fakeUserRepo) UpdateStatus(context.Context, string, bool, string) error { return nil }
func (r *fakeUserRepo) Delete(context.Context, string) error                     { return nil }
func (r *fakeUserRepo) ListWithQuoteCount(context.Context) ([]*entity.User, map[string]int, error) {
	return nil, nil, nil
}

type fakeQuoteRepo struct{ quote *entity.Cotizacion }

func (r *fakeQuoteRepo) Create(context.Context, *entity.Cotizacion) error { return nil }
func (r *fakeQuoteRepo) GetByID(_ context.Context, id int64, ownerID string) (*entity.Cotizacion, error) {
	if r.quote != nil && r.quote.ID == id && r.quote.OwnerID == ownerID {
		cp := *r.quote
		return &cp, nil
	}
	return nil, nil
}
func (r *fakeQuoteRepo) ListByOwner(context.Context, string) ([]*entity.Cotizacion, error) {
	return nil, nil
}
func (r *fakeQuoteRepo) Update(context.Context, *entity.Cotizacion) error { return nil }
func (r *fakeQuoteRepo) Delete(context.Context, int64, string) error {
	return nil
}

type fakeComprobanteRepo struct{ created []*entity.Comprobante }

func (r *fakeComprobanteRepo) Create(_ context.Context, c *entity.Comprobante) error {
	c.ID = int64(len(r.created) + 1)
	r.created = append(r.created, c)
	return nil
}
func (r *fakeComprobanteRepo) GetByID(_ context.Context, id int64, ownerID string) (*entity.Comprobante, error) {
	for _, c := range r.created {
		if c.ID == id && c.OwnerID == ownerID {
			return c, nil
		}
	}
	return nil, nil
}
func (r *fakeComprobanteRepo) ListByOwner(context.Context, string, string) ([]*entity.Comprobante, error) {
	return r.created, nil
}

type fakeGuiaRepo struct{ created []*entity.GuiaRemision }

func (r *fakeGuiaRepo) Create(_ context.Context, g *entity.GuiaRemision) error {
	g.ID = int64(len(r.created) + 1)
	r.created = append(r.created, g)
	return nil
}
func (r *fakeGuiaRepo) ListByOwner(context.Context, string) ([]*entity.GuiaRemision, error) {
	return r.created, nil
}

type fakeSequenceRepo struct{ counters map[string]int64 }

func (r *fakeSequenceRepo) Next(_ context.Context, scope sequence.Scope) (int64, error) {
	if r.counters == nil {
		r.counters = map[string]int64{}
	}
	r.counters[scope.Key()]++
	return r.counters[scope.Key()], nil
}

type fakeGateway struct {
	logins   int
	lastSent *facturacion.InvoicePayload
	result   *billing.ProviderResult
}

func (g *fakeGateway) Login(context.Context, string, string) (string, error) {
	g.logins++
	return "provider-token", nil
}
func (g *fakeGateway) SendInvoice(_ context.Context, _ string, p *facturacion.InvoicePayload) (*billing.ProviderResult, error) {
	g.lastSent = p
	if g.result != nil {
		return g.result, nil
	}
	raw, _ := json.Marshal(map[string]any{"sunatResponse": map[string]any{"success": true}})
	return &billing.ProviderResult{Success: true, Hash: "abc123hash", Raw: raw}, nil
}
func (g *fakeGateway) SendGuia(context.Context, string, *facturacion.GuiaPayload) (*billing.ProviderResult, error) {
	raw, _ := json.Marshal(map[string]any{"sunatResponse": map[string]any{"success": true}})
	return &billing.ProviderResult{Success: true, Hash: "guiahash", Raw: raw}, nil
}
func (g *fakeGateway) FetchInvoiceArtifact(context.Context, string, string, []byte) ([]byte, error) {
	return []byte("%PDF-fake"), nil
}

type fakeRenderer struct{}

func (fakeRenderer) RenderCotizacion(*entity.Cotizacion, *entity.User) ([]byte, error) {
	return []byte("%PDF-cotizacion"), nil
}
func (fakeRenderer) RenderComprobante(*entity.Comprobante, *facturacion.InvoicePayload, *entity.User) ([]byte, error) {
	return []byte("%PDF-comprobante"), nil
}

// ──────────────────────────────────────────────────────────────────────────────

func testBox(t *testing.T) *secrets.Box {
	t.Helper()
	raw := make([]byte, 32)
	box, err := secrets.New(base64.StdEncoding.EncodeToString(raw))
	require.NoError(t, err)
	return box
}

func testUser(t *testing.T, box *secrets.Box) *entity.User {
	t.Helper()
	cipher, err := box.Encrypt("provider-pass")
	require.NoError(t, err)
	return &entity.User{
		ID:               "owner-1",
		Email:            "demo@acme.pe",
		BusinessName:     "ACME PERU S.A.C.",
		BusinessAddress:  "AV. AREQUIPA 123",
		BusinessRUC:      "20123456789",
		ApisPeruUser:     "acme",
		ApisPeruPassword: cipher,
	}
}

func testQuote() *entity.Cotizacion {
	return &entity.Cotizacion{
		ID:            5,
		Numero:        "0005",
		NombreCliente: "CLIENTE S.A.",
		TipoDocumento: "RUC",
		NroDocumento:  "20987654321",
		Moneda:        "SOLES",
		MontoTotal:    decimal.NewFromFloat(200.00),
		OwnerID:       "owner-1",
		Productos: []entity.Producto{
			{ID: 1, Descripcion: "Servicio", Unidades: 2,
				PrecioUnitario: decimal.NewFromFloat(100.00), Total: decimal.NewFromFloat(200.00)},
		},
	}
}

type fixture struct {
	uc    *billing.UseCase
	users *fakeUserRepo
	cmps  *fakeComprobanteRepo
	gw    *fakeGateway
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	box := testBox(t)
	users := &fakeUserRepo{user: testUser(t, box)}
	cmps := &fakeComprobanteRepo{}
	gw := &fakeGateway{}
	log := logger.New(logger.Config{Env: "production", Level: "error"})
	uc := billing.New(users, &fakeQuoteRepo{quote: testQuote()}, cmps, &fakeGuiaRepo{},
		&fakeSequenceRepo{}, gw, fakeRenderer{}, box, log)
	return &fixture{uc: uc, users: users, cmps: cmps, gw: gw}
}

func TestFacturar(t *testing.T) {
	f := newFixture(t)

	resp, err := f.uc.Facturar(context.Background(), "owner-1", 5, dto.EmitirRequest{Serie: "F001"})
	require.NoError(t, err)

	assert.Equal(t, "01", resp.TipoDoc) // cliente con RUC → factura
	assert.Equal(t, "F001", resp.Serie)
	assert.Equal(t, "1", resp.Correlativo) // correlativo sin relleno
	assert.True(t, resp.Exito)
	assert.Equal(t, "abc123hash", resp.Hash)
	assert.Equal(t, int64(5), resp.CotizacionID)

	// El payload enviado se persiste literal y es el mismo que recibió el gateway.
	require.Len(t, f.cmps.created, 1)
	var persisted facturacion.InvoicePayload
	require.NoError(t, json.Unmarshal(f.cmps.created[0].PayloadEnviado, &persisted))
	assert.Equal(t, f.gw.lastSent.Serie, persisted.Serie)
	assert.Equal(t, f.gw.lastSent.MtoImpVenta, persisted.MtoImpVenta)
}

func TestFacturar_CotizacionYaFacturada(t *testing.T) {
	box := testBox(t)
	users := &fakeUserRepo{user: testUser(t, box)}
	quote := testQuote()
	quote.ComprobanteID = 9
	log := logger.New(logger.Config{Env: "production", Level: "error"})
	uc := billing.New(users, &fakeQuoteRepo{quote: quote}, &fakeComprobanteRepo{}, &fakeGuiaRepo{},
		&fakeSequenceRepo{}, &fakeGateway{}, fakeRenderer{}, box, log)

	_, err := uc.Facturar(context.Background(), "owner-1", 5, dto.EmitirRequest{Serie: "F001"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestFacturar_SinCredencialesDelProveedor(t *testing.T) {
	f := newFixture(t)
	f.users.user.ApisPeruPassword = ""

	_, err := f.uc.Facturar(context.Background(), "owner-1", 5, dto.EmitirRequest{Serie: "F001"})
	assert.ErrorIs(t, err, domain.ErrMissingProviderCredentials)
}

func TestFacturar_ReutilizaTokenCacheado(t *testing.T) {
	f := newFixture(t)
	f.users.user.ApisPeruToken = "token-vigente"
	f.users.user.ApisPeruTokenExpires = time.Now().Add(2 * time.Hour)

	_, err := f.uc.Facturar(context.Background(), "owner-1", 5, dto.EmitirRequest{Serie: "F001"})
	require.NoError(t, err)
	assert.Equal(t, 0, f.gw.logins)
}

func TestFacturar_TokenExpiradoHaceLogin(t *testing.T) {
	f := newFixture(t)
	f.users.user.ApisPeruToken = "token-vencido"
	f.users.user.ApisPeruTokenExpires = time.Now().Add(-time.Minute)

	_, err := f.uc.Facturar(context.Background(), "owner-1", 5, dto.EmitirRequest{Serie: "F001"})
	require.NoError(t, err)
	assert.Equal(t, 1, f.gw.logins)
	assert.Equal(t, 1, f.users.tokens) // el token nuevo quedó cacheado
}

func TestFacturar_CorrelativosIndependientesPorSerie(t *testing.T) {
	f := newFixture(t)

	resp, err := f.uc.Facturar(context.Background(), "owner-1", 5, dto.EmitirRequest{Serie: "F001"})
	require.NoError(t, err)
	assert.Equal(t, "1", resp.Correlativo)

	// Otra cotización del mismo dueño, serie distinta: arranca en 1.
	f2 := newFixture(t)
	resp2, err := f2.uc.Facturar(context.Background(), "owner-1", 5, dto.EmitirRequest{Serie: "F002"})
	require.NoError(t, err)
	assert.Equal(t, "1", resp2.Correlativo)
}

func TestDescargarComprobante_CDRInexistente(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.Facturar(context.Background(), "owner-1", 5, dto.EmitirRequest{Serie: "F001"})
	require.NoError(t, err)

	// La respuesta persistida del fake no trae cdrZip.
	_, err = f.uc.DescargarComprobante(context.Background(), "owner-1", 1, billing.ArtifactCDR)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDescargarComprobante_PDFDelProveedor(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.Facturar(context.Background(), "owner-1", 5, dto.EmitirRequest{Serie: "F001"})
	require.NoError(t, err)

	art, err := f.uc.DescargarComprobante(context.Background(), "owner-1", 1, billing.ArtifactPDF)
	require.NoError(t, err)
	assert.Equal(t, "20123456789-01-F001-1.pdf", art.Filename)
	assert.Equal(t, "application/pdf", art.ContentType)
}
