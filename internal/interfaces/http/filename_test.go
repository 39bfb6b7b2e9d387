package http

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAsciiFilename(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"cotizacion-0001.pdf", "cotizacion-0001.pdf"},
		{"cotización-0001.pdf", "cotizacion-0001.pdf"},
		{"20123456789-01-F001-1.pdf", "20123456789-01-F001-1.pdf"},
		{"guía año 2026.xlsx", "guia_ano_2026.xlsx"},
		{`peligroso"nombre.pdf`, "peligroso_nombre.pdf"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, asciiFilename(c.in), "entrada: %s", c.in)
	}
}
