package billing

import (
	"archive/zip"
	"bytes"
	"encoding/base64"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cotizaperu/cotiza-api/internal/domain"
)

const applicationResponseXML = `<?xml version="1.0" encoding="UTF-8"?>
<ar:ApplicationResponse xmlns:ar="urn:oasis:names:specification:ubl:schema:xsd:ApplicationResponse-2"
  xmlns:cac="urn:oasis:names:specification:ubl:schema:xsd:CommonAggregateComponents-2"
  xmlns:cbc="urn:oasis:names:specification:ubl:schema:xsd:CommonBasicComponents-2">
  <cac:DocumentResponse>
    <cac:Response>
      <cbc:ResponseCode>0</cbc:ResponseCode>
      <cbc:Description>La Factura numero F001-12, ha sido aceptada</cbc:Description>
    </cac:Response>
  </cac:DocumentResponse>
</ar:ApplicationResponse>`

func cdrResponseBody(t *testing.T, xmlContent string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("R-20123456789-01-F001-12.xml")
	require.NoError(t, err)
	_, err = w.Write([]byte(xmlContent))
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	body, err := json.Marshal(map[string]any{
		"sunatResponse": map[string]any{
			"success": true,
			"cdrZip":  base64.StdEncoding.EncodeToString(buf.Bytes()),
		},
	})
	require.NoError(t, err)
	return body
}

func TestExtractCDR(t *testing.T) {
	zipBytes, status, err := extractCDR(cdrResponseBody(t, applicationResponseXML))
	require.NoError(t, err)

	assert.Equal(t, "0", status.Code)
	assert.Contains(t, status.Description, "aceptada")

	// El zip devuelto debe ser el original, utilizable tal cual.
	zr, err := zip.NewReader(bytes.NewReader(zipBytes), int64(len(zipBytes)))
	require.NoError(t, err)
	require.Len(t, zr.File, 1)
	assert.Equal(t, "R-20123456789-01-F001-12.xml", zr.File[0].Name)
}

func TestExtractCDR_SinCdrZip(t *testing.T) {
	body := []byte(`{"sunatResponse":{"success":false,"error":{"message":"rechazado"}}}`)

	_, _, err := extractCDR(body)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestExtractCDR_RespuestaCorrupta(t *testing.T) {
	_, _, err := extractCDR([]byte("no es json"))
	assert.Error(t, err)
}

func TestParseCDRZip_SinXML(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("readme.txt")
	require.NoError(t, err)
	_, err = w.Write([]byte("nada"))
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	_, err = parseCDRZip(buf.Bytes())
	assert.Error(t, err)
}
