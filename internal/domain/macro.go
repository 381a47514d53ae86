package domain

import (
	"math"
	"math/rand/v2"
	"time"
)

const (
	// Economic cycle: one full sine period every 3 years, ±15% amplitude.
	cycleYears     = 3
	cycleAmplitude = 0.15
	econNoiseStd   = 0.02

	// Hype walk: volatility per step, mean reversion pull toward 1.0,
	// hard clamp so a lucky streak cannot run away.
	hypeStepStd   = 0.05
	hypeReversion = 0.03
	hypeFloor     = 0.6
	hypeCeil      = 1.8
)

// MacroDay is one day of the synthetic economic context.
type MacroDay struct {
	Date          time.Time
	EconomicIndex float64
	LuxuryHype    float64
}

// GenerateMacroContext produces the full macro series for a run, one row per
// simulated day ending today.
//
//   - trendBias < 1.0 forces a downturn, > 1.0 a boom.
//   - hypeBias scales the volatility of the viral-demand walk.
//
// The series is drawn once and immutable afterwards; all randomness comes
// from the given rng so runs are reproducible.
func GenerateMacroContext(rng *rand.Rand, days int, trendBias, hypeBias float64) []MacroDay {
	if days <= 0 {
		return nil
	}

	start := time.Now().UTC().Truncate(24 * time.Hour).AddDate(0, 0, -(days - 1))

	series := make([]MacroDay, 0, days)
	hype := 1.0
	for t := 0; t < days; t++ {
		cycle := (1.0 + cycleAmplitude*math.Sin(2*math.Pi*float64(t)/(cycleYears*365))) * trendBias
		econ := cycle + rng.NormFloat64()*econNoiseStd

		hype += rng.NormFloat64() * hypeStepStd * hypeBias
		hype += (1.0 - hype) * hypeReversion
		hype = math.Max(hypeFloor, math.Min(hypeCeil, hype))

		series = append(series, MacroDay{
			Date:          start.AddDate(0, 0, t),
			EconomicIndex: econ,
			LuxuryHype:    hype,
		})
	}
	return series
}
