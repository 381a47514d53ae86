package ports

import (
	"github.com/avelaine/luxesim/internal/domain"
)

// Notifier presents run results to the user. The console implementation
// prints formatted tables.
type Notifier interface {
	// RunReport prints the exit summary for a finished simulation run.
	RunReport(run domain.RunSummary, brands []domain.BrandPerformance, tail []domain.DailyMetric)

	// Quotes prints competitor price observations.
	Quotes(quotes []domain.CompetitorQuote)
}
