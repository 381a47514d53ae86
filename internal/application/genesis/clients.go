package genesis

import (
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/avelaine/luxesim/internal/domain"
)

// Client tiers as seeded in the client table. Wallets are assigned later by
// the budget ledger; the seed only carries identity, city, tier and taste.
const (
	TierAspirational = "Aspirational"
	TierRecurrent    = "Recurrent"
	TierVIP          = "VIP"
)

// affinityPool lists the houses a profile gravitates to, most likely first.
var affinityPool = map[string][]string{
	"Elite":                  {"Hermès", "Chanel", "Bottega Veneta"},
	"Aristocracy":            {"Hermès", "Dior", "Loewe"},
	"Global_Jetset":          {"Hermès", "Chanel", "Dior", "Louis Vuitton"},
	"Industrial_Wealth":      {"Chanel", "Loewe", "Celine"},
	"Old_Money_Conservative": {"Hermès", "Loewe", "Celine"},
	"Bourgeoisie":            {"Chanel", "Celine", "Saint Laurent"},
	"Fashion_Exec":           {"Dior", "Bottega Veneta", "Prada"},
	"Young_High_Pro":         {"Saint Laurent", "Gucci", "Prada", "Dior"},
	"Urban_Sophisticated":    {"Celine", "Loewe", "Fendi"},
	"Expat_Wealth":           {"Louis Vuitton", "Gucci", "Chanel"},
	"Agro_Wealth":            {"Louis Vuitton", "Gucci"},
	"Aspirational":           {"Louis Vuitton", "Gucci", "Saint Laurent"},
	"Middle_Class":           {"Louis Vuitton", "Gucci"},
}

// profileTier maps sociological profiles onto the three client tiers.
func profileTier(profile string) string {
	switch profile {
	case "Elite", "Global_Jetset", "Aristocracy":
		return TierVIP
	case "Industrial_Wealth", "Old_Money_Conservative", "Bourgeoisie", "Fashion_Exec", "Expat_Wealth":
		return TierRecurrent
	default:
		return TierAspirational
	}
}

// DeriveClients samples n census households into the client seed table.
// Brand affinity is free text: one to three houses from the profile's pool,
// comma separated, the way a CRM export would carry it.
func DeriveClients(rng *rand.Rand, households []domain.CensusHousehold, n int) []domain.Client {
	if len(households) == 0 || n <= 0 {
		return nil
	}

	clients := make([]domain.Client, 0, n)
	for i := 0; i < n; i++ {
		h := households[rng.IntN(len(households))]
		clients = append(clients, domain.Client{
			ClientID:      fmt.Sprintf("C-%05d", i+1),
			BrandAffinity: drawAffinity(rng, h.Profile),
			City:          h.City,
			Tier:          profileTier(h.Profile),
		})
	}
	return clients
}

// drawAffinity picks 1-3 brands from the profile pool without repeats.
func drawAffinity(rng *rand.Rand, profile string) string {
	pool := affinityPool[profile]
	if len(pool) == 0 {
		pool = []string{"Louis Vuitton"}
	}

	count := 1 + rng.IntN(3)
	if count > len(pool) {
		count = len(pool)
	}

	picked := make([]string, len(pool))
	copy(picked, pool)
	rng.Shuffle(len(picked), func(i, j int) { picked[i], picked[j] = picked[j], picked[i] })

	return strings.Join(picked[:count], ", ")
}
