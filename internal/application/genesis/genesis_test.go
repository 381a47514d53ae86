package genesis

import (
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/avelaine/luxesim/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRNG(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed))
}

func TestBuildCatalog_ParsablePrices(t *testing.T) {
	catalog := BuildCatalog(testRNG(1))
	require.NotEmpty(t, catalog)

	for _, tpl := range catalog {
		v, err := domain.CleanPrice(tpl.RawPrice)
		require.NoError(t, err, "template %s price %q", tpl.ID, tpl.RawPrice)
		assert.Greater(t, v, 0.0)
	}
}

func TestBuildCatalog_UniqueIDs(t *testing.T) {
	catalog := BuildCatalog(testRNG(2))
	seen := make(map[string]bool)
	for _, tpl := range catalog {
		assert.False(t, seen[tpl.ID], "duplicate id %s", tpl.ID)
		seen[tpl.ID] = true
		assert.NotEmpty(t, tpl.Brand)
		assert.NotEmpty(t, tpl.Name)
	}
}

func TestBuildCatalog_CoversTier1(t *testing.T) {
	catalog := BuildCatalog(testRNG(3))
	brands := make(map[string]bool)
	for _, tpl := range catalog {
		brands[tpl.Brand] = true
	}
	for _, b := range domain.DefaultTier1Brands {
		assert.True(t, brands[b], "missing tier-1 brand %s", b)
	}
}

func TestBuildCatalog_Deterministic(t *testing.T) {
	assert.Equal(t, BuildCatalog(testRNG(9)), BuildCatalog(testRNG(9)))
}

func TestEuroPrice(t *testing.T) {
	assert.Equal(t, "6.200,00 €", euroPrice(6200))
	assert.Equal(t, "890,00 €", euroPrice(890))
	assert.Equal(t, "12.500,50 €", euroPrice(12500.50))
	assert.Equal(t, "1.234.567,00 €", euroPrice(1234567))
}

func TestBuildCensus_Shape(t *testing.T) {
	households := BuildCensus(testRNG(4))
	require.Len(t, households, len(zoneSeeds)*householdsPerZone)

	for _, h := range households {
		assert.GreaterOrEqual(t, h.GrossIncome, float64(incomeFloor))
		assert.GreaterOrEqual(t, h.FashionWallet, 0.0)
		assert.Greater(t, h.Percentile, 0.0)
		assert.LessOrEqual(t, h.Percentile, 1.0)
		assert.NotEmpty(t, h.Profile)
	}
}

func TestBuildCensus_JetsetOutspendsMiddleClass(t *testing.T) {
	households := BuildCensus(testRNG(5))

	avg := func(profile string) float64 {
		total, n := 0.0, 0
		for _, h := range households {
			if h.Profile == profile {
				total += h.FashionWallet
				n++
			}
		}
		require.Greater(t, n, 0)
		return total / float64(n)
	}

	assert.Greater(t, avg("Global_Jetset"), avg("Middle_Class"))
}

func TestDeriveClients(t *testing.T) {
	households := BuildCensus(testRNG(6))
	clients := DeriveClients(testRNG(7), households, 500)
	require.Len(t, clients, 500)

	tiers := make(map[string]int)
	seen := make(map[string]bool)
	for _, c := range clients {
		assert.False(t, seen[c.ClientID])
		seen[c.ClientID] = true
		assert.NotEmpty(t, c.BrandAffinity)
		assert.NotEmpty(t, c.City)
		tiers[c.Tier]++

		// Seed carries no budget: the ledger stratifies wallets later.
		assert.Zero(t, c.FashionWallet)
		assert.Zero(t, c.CurrentBudget)

		for _, b := range strings.Split(c.BrandAffinity, ", ") {
			assert.NotEmpty(t, b)
		}
	}

	assert.Greater(t, tiers[TierVIP], 0)
	assert.Greater(t, tiers[TierAspirational], 0)
}

func TestDeriveClients_Empty(t *testing.T) {
	assert.Nil(t, DeriveClients(testRNG(1), nil, 10))
	assert.Nil(t, DeriveClients(testRNG(1), BuildCensus(testRNG(2)), 0))
}
