// Package genesis builds the synthetic seed data the simulator consumes: the
// product catalog, the wealth census, and the client table derived from it.
package genesis

import (
	"fmt"
	"math/rand/v2"
	"sort"
	"strings"

	"github.com/avelaine/luxesim/internal/domain"
)

// bagModel is one iconic silhouette with its base resale price in EUR.
type bagModel struct {
	name  string
	price float64
}

// iconicBags maps each house to the silhouettes the procedural generator
// expands into colorways.
var iconicBags = map[string][]bagModel{
	"Hermès":         {{"Birkin 30", 14500}, {"Kelly 28", 12500}, {"Constance 24", 8900}, {"Evelyne PM", 2950}},
	"Chanel":         {{"Classic Flap Medium", 6900}, {"Boy Bag", 5400}, {"19 Bag", 5100}, {"2.55 Reissue", 7200}},
	"Dior":           {{"Lady Dior Medium", 4800}, {"Saddle Bag", 3400}, {"Book Tote", 2700}},
	"Louis Vuitton":  {{"Capucines MM", 5600}, {"Neverfull MM", 1650}, {"Speedy 25", 1350}, {"Pochette Métis", 2100}},
	"Gucci":          {{"Jackie 1961", 2400}, {"Dionysus Small", 2100}, {"Horsebit 1955", 2300}},
	"Saint Laurent":  {{"Sac de Jour", 2500}, {"Loulou Medium", 1950}},
	"Prada":          {{"Galleria Saffiano", 2900}, {"Re-Edition 2005", 1400}},
	"Bottega Veneta": {{"Cassette", 2600}, {"Jodie Mini", 1900}},
	"Celine":         {{"Luggage Micro", 2800}, {"Triomphe", 2400}},
	"Loewe":          {{"Puzzle Small", 2500}, {"Hammock", 2200}},
	"Fendi":          {{"Baguette", 2900}, {"Peekaboo ISeeU", 4100}},
}

var bagMaterials = []string{"Calfskin", "Lambskin", "Caviar Leather", "Canvas", "Saffiano", "Togo Leather"}

var basicColors = []string{"Black", "Gold", "Beige"}
var funColors = []string{"Red", "Pink", "Green", "Blue", "Silver"}

// collectorPieces are curated one-offs injected on top of the procedural
// matrix: vintage and collector items with their own pricing.
var collectorPieces = []domain.CatalogTemplate{
	{Brand: "Chanel", Name: "Vintage Coco Mark Round Earrings", Category: "Jewelry", Material: "Gold Plated", RawPrice: "449,00 €"},
	{Brand: "Chanel", Name: "Vintage Gripoix Brooch", Category: "Jewelry", Material: "Poured Glass", RawPrice: "1.200,00 €"},
	{Brand: "Chanel", Name: "Vintage Chain & Leather Belt", Category: "Adornment", Material: "Leather", RawPrice: "850,00 €"},
	{Brand: "Hermès", Name: "Kelly Dog Bracelet (Black/Gold)", Category: "Jewelry", Material: "Leather", RawPrice: "550,00 €"},
	{Brand: "Hermès", Name: "Farandole Necklace 120cm", Category: "Jewelry", Material: "Sterling Silver", RawPrice: "1.400,00 €"},
	{Brand: "Dior", Name: "J'Adior Choker (Antique Gold)", Category: "Jewelry", Material: "Brass", RawPrice: "420,00 €"},
}

// BuildCatalog produces the raw product catalog: curated collector pieces
// plus a procedural matrix of iconic bags in basic colorways, with a 50%
// chance of one seasonal colorway per silhouette. Prices are written in the
// European format the price-cleaning boundary expects from real source data.
func BuildCatalog(rng *rand.Rand) []domain.CatalogTemplate {
	catalog := make([]domain.CatalogTemplate, 0, 256)
	catalog = append(catalog, collectorPieces...)

	for _, brand := range sortedBrands() {
		for _, model := range iconicBags[brand] {
			material := bagMaterials[rng.IntN(len(bagMaterials))]

			for _, color := range basicColors {
				if brand == "Hermès" && color == "Gold" {
					color = "Etoupe" // house naming
				}
				catalog = append(catalog, domain.CatalogTemplate{
					Brand:    brand,
					Name:     fmt.Sprintf("%s (%s)", model.name, color),
					Category: "Bags",
					Material: material,
					RawPrice: euroPrice(model.price + float64(rng.IntN(3)-1)*10),
				})
			}

			if rng.Float64() > 0.5 {
				color := funColors[rng.IntN(len(funColors))]
				catalog = append(catalog, domain.CatalogTemplate{
					Brand:    brand,
					Name:     fmt.Sprintf("%s (%s, Seasonal)", model.name, color),
					Category: "Bags",
					Material: material,
					RawPrice: euroPrice(model.price + 120),
				})
			}
		}
	}

	for i := range catalog {
		catalog[i].ID = catalogID(catalog[i], i)
	}
	return catalog
}

// IconicModels returns the brand/silhouette pairs, brands in stable order.
// The market monitor quotes these against live marketplaces.
func IconicModels() [][2]string {
	pairs := make([][2]string, 0, 32)
	for _, brand := range sortedBrands() {
		for _, model := range iconicBags[brand] {
			pairs = append(pairs, [2]string{brand, model.name})
		}
	}
	return pairs
}

// sortedBrands returns the brand keys in stable order so a seeded rng yields
// the same catalog every time.
func sortedBrands() []string {
	brands := make([]string, 0, len(iconicBags))
	for b := range iconicBags {
		brands = append(brands, b)
	}
	sort.Strings(brands)
	return brands
}

// catalogID mints the CAT-BRA-0001 style id used by the raw files.
func catalogID(t domain.CatalogTemplate, i int) string {
	pre := func(s string, n int) string {
		s = strings.ToUpper(strings.Map(func(r rune) rune {
			if r >= 'A' && r <= 'Z' || r >= 'a' && r <= 'z' {
				return r
			}
			return -1
		}, s))
		if len(s) < n {
			return (s + "XXX")[:n]
		}
		return s[:n]
	}
	return fmt.Sprintf("%s-%s-%04d", pre(t.Category, 3), pre(t.Brand, 3), i+1)
}

// euroPrice formats a value the way the raw catalog files carry it:
// "6.200,00 €".
func euroPrice(v float64) string {
	whole := int(v)
	cents := int((v-float64(whole))*100 + 0.5)

	s := fmt.Sprintf("%d", whole)
	var b strings.Builder
	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(r)
	}
	return fmt.Sprintf("%s,%02d €", b.String(), cents)
}
