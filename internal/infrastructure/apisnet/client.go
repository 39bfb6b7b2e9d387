// Package apisnet implementa la consulta de padrones de identidad contra
// apis.net.pe (RENIEC para DNI, SUNAT para RUC).
package apisnet

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/cotizaperu/cotiza-api/internal/application/lookup"
	"github.com/cotizaperu/cotiza-api/pkg/logger"
)

var _ lookup.Directory = (*Client)(nil)

// Client cliente del API v2 de apis.net.pe. Usa un único token de aplicación
// (APIS_NET_TOKEN), no credenciales por usuario.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	log        *logger.Logger
}

// NewClient construye el cliente con la URL de producción.
func NewClient(token string, log *logger.Logger) *Client {
	return &Client{
		baseURL:    "https://api.apis.net.pe/v2",
		token:      token,
		httpClient: &http.Client{Timeout: 15 * time.Second},
		log:        log,
	}
}

// NewClientWithBaseURL variante para tests.
func NewClientWithBaseURL(baseURL, token string, log *logger.Logger) *Client {
	c := NewClient(token, log)
	c.baseURL = baseURL
	return c
}

// FindPersonByDNI consulta el padrón RENIEC; nil si el DNI no existe.
func (c *Client) FindPersonByDNI(ctx context.Context, dni string) (*lookup.Person, error) {
	var resp struct {
		Nombres         string `json:"nombres"`
		ApellidoPaterno string `json:"apellidoPaterno"`
		ApellidoMaterno string `json:"apellidoMaterno"`
		NumeroDocumento string `json:"numeroDocumento"`
	}
	found, err := c.get(ctx, "/reniec/dni", dni, &resp)
	if err != nil || !found {
		return nil, err
	}
	return &lookup.Person{
		Nombres:         resp.Nombres,
		ApellidoPaterno: resp.ApellidoPaterno,
		ApellidoMaterno: resp.ApellidoMaterno,
		NumeroDocumento: resp.NumeroDocumento,
	}, nil
}

// FindBusinessByRUC consulta el padrón SUNAT; nil si el RUC no existe.
func (c *Client) FindBusinessByRUC(ctx context.Context, ruc string) (*lookup.Business, error) {
	var resp struct {
		RazonSocial     string `json:"nombre"`
		NumeroDocumento string `json:"numeroDocumento"`
		Direccion       string `json:"direccion"`
		Estado          string `json:"estado"`
		Condicion       string `json:"condicion"`
	}
	found, err := c.get(ctx, "/sunat/ruc", ruc, &resp)
	if err != nil || !found {
		return nil, err
	}
	return &lookup.Business{
		RazonSocial:     resp.RazonSocial,
		NumeroDocumento: resp.NumeroDocumento,
		Direccion:       resp.Direccion,
		Estado:          resp.Estado,
		Condicion:       resp.Condicion,
	}, nil
}

// get ejecuta la consulta; found=false cuando el padrón no tiene el número
// (el servicio responde 404 o 422 en ese caso).
func (c *Client) get(ctx context.Context, path, numero string, out any) (bool, error) {
	u := c.baseURL + path + "?numero=" + url.QueryEscape(numero)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return false, fmt.Errorf("apisnet: armando request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false, fmt.Errorf("apisnet: consultando %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusUnprocessableEntity {
		return false, nil
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		c.log.Warn().Int("status", resp.StatusCode).Str("path", path).Msg("apis.net.pe devolvió error")
		return false, fmt.Errorf("apisnet: %s respondió %d: %s", path, resp.StatusCode, body)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return false, fmt.Errorf("apisnet: respuesta inválida de %s: %w", path, err)
	}
	return true, nil
}
