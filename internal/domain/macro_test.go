package domain

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRNG(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed))
}

func TestGenerateMacroContext_Baseline(t *testing.T) {
	// trend 1.0, hype 1.0, 30 days: econ clustered around 1.0 ± 0.2,
	// hype inside the clamp band.
	series := GenerateMacroContext(testRNG(42), 30, 1.0, 1.0)
	require.Len(t, series, 30)

	for _, day := range series {
		assert.InDelta(t, 1.0, day.EconomicIndex, 0.2, "day %s", day.Date)
		assert.GreaterOrEqual(t, day.LuxuryHype, 0.6)
		assert.LessOrEqual(t, day.LuxuryHype, 1.8)
	}
}

func TestGenerateMacroContext_HypeClamped(t *testing.T) {
	// Extreme volatility still respects the [0.6, 1.8] clamp.
	series := GenerateMacroContext(testRNG(7), 365, 1.0, 10.0)
	for _, day := range series {
		assert.GreaterOrEqual(t, day.LuxuryHype, 0.6)
		assert.LessOrEqual(t, day.LuxuryHype, 1.8)
	}
}

func TestGenerateMacroContext_TrendBias(t *testing.T) {
	crisis := GenerateMacroContext(testRNG(1), 90, 0.8, 1.0)
	boom := GenerateMacroContext(testRNG(1), 90, 1.2, 1.0)

	avg := func(s []MacroDay) float64 {
		total := 0.0
		for _, d := range s {
			total += d.EconomicIndex
		}
		return total / float64(len(s))
	}
	assert.Less(t, avg(crisis), avg(boom))
}

func TestGenerateMacroContext_Deterministic(t *testing.T) {
	a := GenerateMacroContext(testRNG(99), 60, 1.0, 1.0)
	b := GenerateMacroContext(testRNG(99), 60, 1.0, 1.0)
	for i := range a {
		assert.Equal(t, a[i].EconomicIndex, b[i].EconomicIndex)
		assert.Equal(t, a[i].LuxuryHype, b[i].LuxuryHype)
	}
}

func TestGenerateMacroContext_ZeroDays(t *testing.T) {
	assert.Nil(t, GenerateMacroContext(testRNG(1), 0, 1.0, 1.0))
}

func TestGenerateMacroContext_DatesEndToday(t *testing.T) {
	series := GenerateMacroContext(testRNG(3), 10, 1.0, 1.0)
	require.Len(t, series, 10)
	// Consecutive calendar days, oldest first.
	for i := 1; i < len(series); i++ {
		assert.Equal(t, series[i-1].Date.AddDate(0, 0, 1), series[i].Date)
	}
}
