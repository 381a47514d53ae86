package genesis

import (
	"math"
	"math/rand/v2"
	"sort"

	"github.com/avelaine/luxesim/internal/domain"
)

// zoneSeed is one strategic zone the census expands into households.
type zoneSeed struct {
	postalCode string
	province   string
	city       string
	district   string
	multiplier float64 // zone income vs province baseline
	profile    string
	volatility float64 // lognormal sigma of the zone
}

// provinceBaselines are calibrated gross household incomes per province.
var provinceBaselines = map[string]float64{
	"Madrid": 62300, "Barcelona": 56200, "Sevilla": 41100, "Málaga": 40800,
	"Baleares": 53000, "Murcia": 41700, "Coruña": 45000, "Vizcaya": 53500,
	"Guipúzcoa": 56000, "Valencia": 44000, "Zaragoza": 46000, "Ourense": 35000,
	"Asturias": 42000, "Alicante": 41000,
}

var zoneSeeds = []zoneSeed{
	{"28109", "Madrid", "Alcobendas", "La Moraleja", 3.8, "Elite", 0.6},
	{"28001", "Madrid", "Madrid", "Salamanca", 2.1, "Aristocracy", 0.45},
	{"28010", "Madrid", "Madrid", "Chamberí", 1.4, "Young_High_Pro", 0.3},
	{"28925", "Madrid", "Alcorcón", "Las Retamas", 0.85, "Aspirational", 0.2},
	{"28905", "Madrid", "Getafe", "El Bercial", 0.88, "Middle_Class", 0.2},
	{"32003", "Ourense", "Ourense", "Centro", 1.5, "Old_Money_Conservative", 0.2},
	{"48992", "Vizcaya", "Getxo", "Neguri", 2.3, "Industrial_Wealth", 0.35},
	{"33004", "Asturias", "Oviedo", "Uría", 1.4, "Old_Money_Conservative", 0.25},
	{"29660", "Málaga", "Marbella", "Puerto Banús", 3.5, "Global_Jetset", 0.7},
	{"07013", "Baleares", "Palma", "Son Vida", 3.0, "Global_Jetset", 0.65},
	{"03590", "Alicante", "Altea", "Altea Hills", 2.2, "Expat_Wealth", 0.5},
	{"08017", "Barcelona", "Barcelona", "Sarrià", 2.2, "Bourgeoisie", 0.4},
	{"46004", "Valencia", "Valencia", "Pla del Remei", 1.9, "Urban_Sophisticated", 0.3},
	{"30001", "Murcia", "Murcia", "Catedral", 1.6, "Agro_Wealth", 0.4},
	{"15173", "Coruña", "Oleiros", "Icaria", 2.2, "Fashion_Exec", 0.3},
}

const (
	householdsPerZone = 200
	macroGrowth       = 1.08  // inflation + wage growth projection
	incomeFloor       = 16000 // no simulated household below this
	basicLivingCost   = 22000
)

// shadowMultiplier estimates unreported capacity by profile: capital rents,
// accumulated savings, cash economies.
func shadowMultiplier(profile string) float64 {
	switch profile {
	case "Elite", "Global_Jetset":
		return 1.6
	case "Agro_Wealth":
		return 1.4
	case "Old_Money_Conservative":
		return 1.3
	default:
		return 1.0
	}
}

// effectiveTaxRate is a coarse progressive schedule.
func effectiveTaxRate(grossReal float64) float64 {
	switch {
	case grossReal > 150000:
		return 0.45
	case grossReal > 60000:
		return 0.30
	default:
		return 0.20
	}
}

// luxuryPropensity is the share of discretionary income a profile puts into
// this category.
func luxuryPropensity(profile string) float64 {
	switch profile {
	case "Global_Jetset":
		return 0.50
	case "Young_High_Pro", "Aspirational", "Fashion_Exec":
		return 0.35
	default:
		return 0.15
	}
}

// housingPenalty inflates basic living costs in overheated provinces.
func housingPenalty(province string) float64 {
	switch province {
	case "Madrid", "Barcelona", "Baleares", "Málaga":
		return 1.25
	default:
		return 1.0
	}
}

// BuildCensus expands the zone seed matrix into synthetic households:
// lognormal gross income per zone, shadow-wealth and tax adjustment, housing
// cost subtraction, and a profile-dependent luxury propensity that yields
// the fashion wallet. The percentile column ranks official income across the
// whole census.
func BuildCensus(rng *rand.Rand) []domain.CensusHousehold {
	households := make([]domain.CensusHousehold, 0, len(zoneSeeds)*householdsPerZone)

	for _, seed := range zoneSeeds {
		baseline, ok := provinceBaselines[seed.province]
		if !ok {
			baseline = 45000
		}
		target := baseline * seed.multiplier * macroGrowth
		mu := math.Log(target)

		for n := 0; n < householdsPerZone; n++ {
			gross := math.Exp(mu + seed.volatility*rng.NormFloat64())
			if gross < incomeFloor {
				gross = incomeFloor
			}

			grossReal := gross * shadowMultiplier(seed.profile)
			netReal := grossReal * (1 - effectiveTaxRate(grossReal))

			discretionary := netReal - basicLivingCost*housingPenalty(seed.province)
			if discretionary < 0 {
				discretionary = 0
			}
			wallet := discretionary * luxuryPropensity(seed.profile)

			households = append(households, domain.CensusHousehold{
				PostalCode:    seed.postalCode,
				Province:      seed.province,
				City:          seed.city,
				District:      seed.district,
				Profile:       seed.profile,
				GrossIncome:   math.Floor(gross),
				RealCapacity:  math.Floor(netReal),
				FashionWallet: math.Floor(wallet),
			})
		}
	}

	rankPercentiles(households)
	return households
}

// rankPercentiles fills the national income percentile per household.
func rankPercentiles(households []domain.CensusHousehold) {
	idx := make([]int, len(households))
	for i := range idx {
		idx[i] = i
	}
	sort.Slice(idx, func(a, b int) bool {
		return households[idx[a]].GrossIncome < households[idx[b]].GrossIncome
	})
	n := float64(len(households))
	for rank, i := range idx {
		households[i].Percentile = float64(rank+1) / n
	}
}
