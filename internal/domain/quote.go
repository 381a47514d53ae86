package domain

import "time"

// CompetitorQuote is one observed market price for a brand/model pair,
// collected by the price monitor.
type CompetitorQuote struct {
	Brand     string
	Model     string
	Price     float64
	Source    string
	FetchedAt time.Time
}
