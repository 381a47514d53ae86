package domain

// CensusHousehold is one synthetic household from the wealth census: official
// income, estimated real capacity after shadow wealth and tax, and the slice
// of it available for this category.
type CensusHousehold struct {
	PostalCode    string
	Province      string
	City          string
	District      string
	Profile       string
	GrossIncome   float64
	RealCapacity  float64
	FashionWallet float64
	Percentile    float64
}
