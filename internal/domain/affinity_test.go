package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var tier1 = NewTierSet(DefaultTier1Brands)

func TestAffinityScore_HardGate(t *testing.T) {
	// Tier-1 item at 5000 against a 4000 budget scores 0 no matter what.
	client := Client{CurrentBudget: 4000, BrandAffinity: "Hermès, Chanel"}
	item := InventoryItem{Brand: "Hermès", CurrentPrice: 5000}

	assert.Equal(t, 0.0, AffinityScore(client, item, 0.7, tier1))
	assert.Equal(t, 0.0, AffinityScore(client, item, 1.2, tier1))
}

func TestAffinityScore_BudgetExactlyEqualPrice(t *testing.T) {
	// Gate uses strict inequality: price == budget is still affordable.
	client := Client{CurrentBudget: 5000}
	item := InventoryItem{Brand: "Prada", CurrentPrice: 5000}
	assert.Greater(t, AffinityScore(client, item, 1.0, tier1), 0.0)
}

func TestAffinityScore_DownturnResilience(t *testing.T) {
	client := Client{CurrentBudget: 10000, BrandAffinity: "Hermès"}
	item := InventoryItem{Brand: "Hermès", CurrentPrice: 6000}

	// Downturn + Tier-1 + brand match: (45+40) × 1.15 = 97.75
	assert.InDelta(t, 97.75, AffinityScore(client, item, 0.7, tier1), 0.0001)
	// Normal economy: (45+40) × 1.05 = 89.25
	assert.InDelta(t, 89.25, AffinityScore(client, item, 1.0, tier1), 0.0001)

	// Both clear the default threshold — the resilience multiplier alone
	// does not flip the outcome at these inputs.
	assert.Greater(t, AffinityScore(client, item, 0.7, tier1), DefaultAcceptThreshold)
	assert.Greater(t, AffinityScore(client, item, 1.0, tier1), DefaultAcceptThreshold)
}

func TestAffinityScore_DownturnPullback(t *testing.T) {
	// Non-Tier-1 in a downturn without brand match: 45 × 0.65 = 29.25,
	// below threshold.
	client := Client{CurrentBudget: 10000, BrandAffinity: "Chanel"}
	item := InventoryItem{Brand: "Gucci", CurrentPrice: 2000}

	score := AffinityScore(client, item, 0.7, tier1)
	assert.InDelta(t, 29.25, score, 0.0001)
	assert.Less(t, score, DefaultAcceptThreshold)
}

func TestAffinityScore_NoBrandMatchNormalEconomy(t *testing.T) {
	// 45 × 1.05 = 47.25: affordable but below the 52 threshold. Acceptance
	// hinges on the brand bonus.
	client := Client{CurrentBudget: 10000, BrandAffinity: "Dior"}
	item := InventoryItem{Brand: "Loewe", CurrentPrice: 900}

	score := AffinityScore(client, item, 1.0, tier1)
	assert.InDelta(t, 47.25, score, 0.0001)
	assert.Less(t, score, DefaultAcceptThreshold)
}

func TestAffinityScore_BrandSubstringMatch(t *testing.T) {
	// Affinity is free text; a contained brand name counts.
	client := Client{CurrentBudget: 10000, BrandAffinity: "Chanel, Louis Vuitton"}
	item := InventoryItem{Brand: "Louis Vuitton", CurrentPrice: 1500}

	assert.InDelta(t, (BaseAffinity+BrandBonus)*PsychNormal,
		AffinityScore(client, item, 1.0, tier1), 0.0001)
}

func TestPsychFactor(t *testing.T) {
	assert.Equal(t, PsychResilient, PsychFactor(0.89, true))
	assert.Equal(t, PsychPullback, PsychFactor(0.89, false))
	assert.Equal(t, PsychNormal, PsychFactor(0.9, true)) // boundary: 0.9 is not a downturn
	assert.Equal(t, PsychNormal, PsychFactor(1.3, false))
}
