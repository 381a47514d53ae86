package domain

// Client is one seeded shopper. CurrentBudget only ever decreases during a
// run (no replenishment): 0 ≤ CurrentBudget ≤ FashionWallet holds throughout.
type Client struct {
	ClientID       string
	BrandAffinity  string
	City           string
	Tier           string
	FashionWallet  float64
	CurrentBudget  float64
	PurchasesCount int
}
