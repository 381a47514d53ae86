package ports

import (
	"context"
	"time"

	"github.com/avelaine/luxesim/internal/domain"
)

// Archive keeps the cross-run history: one summary row per simulation run,
// per-brand rollups, and competitor quotes from the price monitor.
type Archive interface {
	// SaveRun persists the run summary and upserts its brand breakdown.
	SaveRun(ctx context.Context, run domain.RunSummary, brands []domain.BrandPerformance) error

	// SaveQuote records one competitor price observation.
	SaveQuote(ctx context.Context, quote domain.CompetitorQuote) error

	// GetRuns returns run summaries started in the given range, newest first.
	GetRuns(ctx context.Context, from, to time.Time) ([]domain.RunSummary, error)

	// GetBrandPerformance returns the all-time brand rollup, best first.
	GetBrandPerformance(ctx context.Context) ([]domain.BrandPerformance, error)

	Close() error
}
