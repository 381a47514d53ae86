package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanPrice_European(t *testing.T) {
	v, err := CleanPrice("1.234,56")
	require.NoError(t, err)
	assert.InDelta(t, 1234.56, v, 0.0001)
}

func TestCleanPrice_EuroSymbol(t *testing.T) {
	v, err := CleanPrice("2.450,00 €")
	require.NoError(t, err)
	assert.InDelta(t, 2450.0, v, 0.0001)
}

func TestCleanPrice_Plain(t *testing.T) {
	v, err := CleanPrice("890")
	require.NoError(t, err)
	assert.Equal(t, 890.0, v)

	v, err = CleanPrice("890.50")
	require.NoError(t, err)
	assert.InDelta(t, 890.50, v, 0.0001)
}

func TestCleanPrice_LoneCommaIsDecimal(t *testing.T) {
	// Matches the legacy cleaning rule: a lone comma reads as a decimal
	// point, so "$1,234" is 1.234 — callers that care must not feed US
	// thousands separators through here.
	v, err := CleanPrice("$1,234")
	require.NoError(t, err)
	assert.InDelta(t, 1.234, v, 0.0001)
}

func TestCleanPrice_Unparsable(t *testing.T) {
	for _, raw := range []string{"", "N/A", "precio a consultar", "€"} {
		_, err := CleanPrice(raw)
		require.Error(t, err, "raw=%q", raw)

		var perr *UnparsablePriceError
		require.ErrorAs(t, err, &perr)
		assert.Equal(t, raw, perr.Raw)
	}
}

func TestCleanPrice_StraySymbols(t *testing.T) {
	v, err := CleanPrice("  EUR 3.100,00 aprox ")
	require.NoError(t, err)
	assert.InDelta(t, 3100.0, v, 0.0001)
}
