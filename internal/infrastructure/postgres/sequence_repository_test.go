package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cotizaperu/cotiza-api/internal/domain"
	"github.com/cotizaperu/cotiza-api/internal/domain/sequence"
)

// ──────────────────────────────────────────────────────────────────────────────
// seedFromLegacy
// ──────────────────────────────────────────────────────────────────────────────

func TestSeedFromLegacy_NumeroConCeros(t *testing.T) {
	n, err := seedFromLegacy("0012", sequence.CotizacionScope())
	require.NoError(t, err)
	assert.Equal(t, int64(12), n)
}

func TestSeedFromLegacy_CorrelativoSinRelleno(t *testing.T) {
	n, err := seedFromLegacy("7", sequence.ComprobanteScope("owner-1", "F001", "01"))
	require.NoError(t, err)
	assert.Equal(t, int64(7), n)
}

func TestSeedFromLegacy_CampoVacioSiembraEnCero(t *testing.T) {
	for _, stored := range []string{"", "   ", "\t"} {
		n, err := seedFromLegacy(stored, sequence.ComprobanteScope("owner-1", "F001", "01"))
		require.NoError(t, err)
		assert.Zero(t, n, "valor almacenado %q", stored)
	}
}

func TestSeedFromLegacy_NoNumericoDetiene(t *testing.T) {
	_, err := seedFromLegacy("F001-12", sequence.GuiaScope("owner-1", "T001"))
	assert.ErrorIs(t, err, domain.ErrInvalidSequenceState)
}
