package domain

import "strings"

// Affinity scoring constants. The threshold has narrow headroom against the
// max attainable score ((45+40)×1.15 = 97.75), so the binary brand bonus
// dominates acceptance — keep these together so that coupling stays visible.
const (
	BaseAffinity = 45.0 // flat score for any affordable item
	BrandBonus   = 40.0 // product brand appears in the client's affinity field

	// Psych multipliers by macro state.
	PsychResilient = 1.15 // downturn, Tier-1 brand: flight to quality
	PsychPullback  = 0.65 // downturn, everything else
	PsychNormal    = 1.05 // normal-to-good economy

	// EconomicIndex below this counts as a downturn.
	DownturnIndex = 0.9

	// DefaultAcceptThreshold is the score a (client, item) pair must exceed
	// (strictly) to transact. Overridable via config.
	DefaultAcceptThreshold = 52.0
)

// DefaultTier1Brands are the top luxury houses that get the macro-resilience
// treatment in a downturn.
var DefaultTier1Brands = []string{"Hermès", "Chanel", "Dior"}

// TierSet answers Tier-1 membership for the affinity scorer.
type TierSet map[string]bool

// NewTierSet builds a TierSet from a brand list.
func NewTierSet(brands []string) TierSet {
	set := make(TierSet, len(brands))
	for _, b := range brands {
		set[b] = true
	}
	return set
}

// PsychFactor returns the macro multiplier for a brand under the given
// economic index.
func PsychFactor(econIdx float64, tier1 bool) float64 {
	if econIdx < DownturnIndex {
		if tier1 {
			return PsychResilient
		}
		return PsychPullback
	}
	return PsychNormal
}

// AffinityScore computes the purchase-propensity score for a client looking
// at an item under the given economic index.
//
// Hard gate first: an item the client cannot afford scores 0 regardless of
// brand or macro state. Otherwise base + brand bonus, scaled by the psych
// factor. Boundary values resolve by strict inequality at the caller
// (score > threshold, price > budget), so draws are deterministic.
func AffinityScore(client Client, item InventoryItem, econIdx float64, tier1 TierSet) float64 {
	if item.CurrentPrice > client.CurrentBudget {
		return 0
	}

	score := BaseAffinity
	if item.Brand != "" && strings.Contains(client.BrandAffinity, item.Brand) {
		score += BrandBonus
	}

	return score * PsychFactor(econIdx, tier1[item.Brand])
}
