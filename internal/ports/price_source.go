package ports

import "context"

// PriceSource looks up what the competition charges for a product right now.
// Best-effort collaborator: the simulator core never depends on it.
type PriceSource interface {
	// CompetitorPrice returns the observed market price for a brand/model
	// pair, or 0 with a nil error when nothing usable was found.
	CompetitorPrice(ctx context.Context, brand, model string) (float64, error)
}
