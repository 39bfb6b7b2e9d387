package billing

import (
	"archive/zip"
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/beevik/etree"

	"github.com/cotizaperu/cotiza-api/internal/domain"
)

// CDRStatus veredicto de SUNAT dentro del ApplicationResponse.
type CDRStatus struct {
	Code        string // "0" = aceptado
	Description string
}

// extractCDR saca la constancia de recepción (CDR) de la respuesta persistida
// del proveedor: sunatResponse.cdrZip viene en base64 y contiene un zip con el
// ApplicationResponse XML. Devuelve el zip tal cual (para la descarga) y el
// estado parseado del XML.
func extractCDR(sunatResponse []byte) ([]byte, *CDRStatus, error) {
	var body struct {
		SunatResponse struct {
			CdrZip string `json:"cdrZip"`
		} `json:"sunatResponse"`
	}
	if err := json.Unmarshal(sunatResponse, &body); err != nil {
		return nil, nil, fmt.Errorf("billing: respuesta persistida corrupta: %w", err)
	}
	if body.SunatResponse.CdrZip == "" {
		return nil, nil, fmt.Errorf("%w: el comprobante no tiene CDR", domain.ErrNotFound)
	}

	zipBytes, err := base64.StdEncoding.DecodeString(body.SunatResponse.CdrZip)
	if err != nil {
		return nil, nil, fmt.Errorf("billing: cdrZip no es base64 válido: %w", err)
	}

	status, err := parseCDRZip(zipBytes)
	if err != nil {
		return nil, nil, err
	}
	return zipBytes, status, nil
}

// parseCDRZip localiza el ApplicationResponse dentro del zip y lee el código
// y la descripción de la respuesta.
func parseCDRZip(zipBytes []byte) (*CDRStatus, error) {
	zr, err := zip.NewReader(bytes.NewReader(zipBytes), int64(len(zipBytes)))
	if err != nil {
		return nil, fmt.Errorf("billing: CDR no es un zip válido: %w", err)
	}
	for _, f := range zr.File {
		if !strings.HasSuffix(strings.ToLower(f.Name), ".xml") {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("billing: leyendo %s del CDR: %w", f.Name, err)
		}
		raw, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, fmt.Errorf("billing: leyendo %s del CDR: %w", f.Name, err)
		}
		return parseApplicationResponse(raw)
	}
	return nil, fmt.Errorf("billing: el zip del CDR no contiene XML")
}

func parseApplicationResponse(raw []byte) (*CDRStatus, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(raw); err != nil {
		return nil, fmt.Errorf("billing: ApplicationResponse inválido: %w", err)
	}
	// El CDR de SUNAT usa siempre los prefijos cac/cbc de UBL.
	status := &CDRStatus{}
	if e := doc.FindElement("//cac:DocumentResponse/cac:Response/cbc:ResponseCode"); e != nil {
		status.Code = strings.TrimSpace(e.Text())
	}
	if e := doc.FindElement("//cac:DocumentResponse/cac:Response/cbc:Description"); e != nil {
		status.Description = strings.TrimSpace(e.Text())
	}
	return status, nil
}
