// Package apisperu implementa el cliente HTTP del proveedor de facturación
// electrónica (facturacion.apisperu.com). El proveedor firma los documentos y
// los declara ante SUNAT; este cliente solo arma requests JSON autenticados
// con el token JWT de cada negocio.
package apisperu

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/cotizaperu/cotiza-api/internal/application/billing"
	"github.com/cotizaperu/cotiza-api/internal/domain"
	"github.com/cotizaperu/cotiza-api/internal/domain/facturacion"
	"github.com/cotizaperu/cotiza-api/pkg/logger"
)

var _ billing.Gateway = (*Client)(nil)

// Client cliente del API REST de Apis Perú.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        *logger.Logger
}

// NewClient construye el cliente. baseURL sin slash final
// (ej. https://facturacion.apisperu.com/api/v1).
func NewClient(baseURL string, log *logger.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 60 * time.Second, // la declaración ante SUNAT puede tardar
		},
		log: log,
	}
}

// Login canjea usuario y contraseña por un token JWT del proveedor.
func (c *Client) Login(ctx context.Context, username, password string) (string, error) {
	body, err := c.post(ctx, "/auth/login", "", map[string]string{
		"username": username,
		"password": password,
	})
	if err != nil {
		return "", err
	}
	var resp struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("apisperu: respuesta de login inválida: %w", err)
	}
	if resp.Token == "" {
		return "", fmt.Errorf("apisperu: login sin token en la respuesta")
	}
	return resp.Token, nil
}

// SendInvoice declara una factura o boleta.
func (c *Client) SendInvoice(ctx context.Context, token string, payload *facturacion.InvoicePayload) (*billing.ProviderResult, error) {
	return c.send(ctx, "/invoice/send", token, payload)
}

// SendGuia declara una guía de remisión.
func (c *Client) SendGuia(ctx context.Context, token string, payload *facturacion.GuiaPayload) (*billing.ProviderResult, error) {
	return c.send(ctx, "/despatch/send", token, payload)
}

func (c *Client) send(ctx context.Context, path, token string, payload any) (*billing.ProviderResult, error) {
	raw, err := c.post(ctx, path, token, payload)
	if err != nil {
		return nil, err
	}
	var resp struct {
		Hash          string `json:"hash"`
		SunatResponse struct {
			Success bool `json:"success"`
		} `json:"sunatResponse"`
	}
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, fmt.Errorf("apisperu: respuesta de envío inválida: %w", err)
	}
	return &billing.ProviderResult{
		Success: resp.SunatResponse.Success,
		Hash:    resp.Hash,
		Raw:     raw,
	}, nil
}

// FetchInvoiceArtifact reenvía un payload ya emitido a /invoice/{kind}
// ("pdf" | "xml") y devuelve los bytes. No vuelve a declarar ante SUNAT.
func (c *Client) FetchInvoiceArtifact(ctx context.Context, token, kind string, payload []byte) ([]byte, error) {
	return c.postRaw(ctx, "/invoice/"+kind, token, payload)
}

func (c *Client) post(ctx context.Context, path, token string, payload any) ([]byte, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("apisperu: serializando request: %w", err)
	}
	return c.postRaw(ctx, path, token, raw)
}

func (c *Client) postRaw(ctx context.Context, path, token string, body []byte) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("apisperu: armando request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("apisperu: enviando request a %s: %w", path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("apisperu: leyendo respuesta de %s: %w", path, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		perr := providerError(resp.StatusCode, data)
		c.log.Warn().Int("status", resp.StatusCode).Str("path", path).Str("detalle", perr.Message).
			Msg("el proveedor rechazó el request")
		return nil, perr
	}
	return data, nil
}

// providerError extrae el mensaje del cuerpo de error del proveedor, que no
// tiene forma fija: puede ser un objeto {"message"} / {"error"} / {"detail"}
// o una lista de errores de validación por campo.
func providerError(status int, body []byte) *domain.BillingProviderError {
	msg := extractMessage(body)
	if msg == "" {
		msg = http.StatusText(status)
	}
	return &domain.BillingProviderError{Status: status, Message: msg}
}

func extractMessage(body []byte) string {
	var obj map[string]any
	if err := json.Unmarshal(body, &obj); err == nil {
		return messageFromObject(obj)
	}
	var list []map[string]any
	if err := json.Unmarshal(body, &list); err != nil {
		return ""
	}
	// Errores de validación: uno por campo, todos relevantes para el usuario.
	var parts []string
	for _, item := range list {
		msg := messageFromObject(item)
		if msg == "" {
			continue
		}
		if field, ok := item["field"].(string); ok && field != "" {
			msg = field + ": " + msg
		}
		parts = append(parts, msg)
	}
	return strings.Join(parts, "; ")
}

func messageFromObject(obj map[string]any) string {
	for _, key := range []string{"message", "error", "detail"} {
		if v, ok := obj[key].(string); ok && v != "" {
			return v
		}
	}
	return ""
}
