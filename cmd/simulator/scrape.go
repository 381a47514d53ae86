package main

import (
	"context"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/avelaine/luxesim/internal/adapters/market"
	"github.com/avelaine/luxesim/internal/adapters/notify"
	"github.com/avelaine/luxesim/internal/adapters/storage"
	"github.com/avelaine/luxesim/internal/application/genesis"
	"github.com/avelaine/luxesim/internal/domain"
)

// runScrape queries live marketplaces for the iconic silhouettes and stores
// whatever quotes come back. Failures on individual models are logged and
// skipped; the sweep keeps going.
func runScrape(ctx context.Context, searchBase string, rng *rand.Rand,
	archive *storage.SQLiteArchive, notifier *notify.Console) error {

	monitor := market.NewPriceMonitor(searchBase, rng)
	models := genesis.IconicModels()
	slog.Info("=== MARKET SWEEP: quoting iconic models ===", "models", len(models))

	var quotes []domain.CompetitorQuote
	for _, pair := range models {
		brand, model := pair[0], pair[1]

		price, err := monitor.CompetitorPrice(ctx, brand, model)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			slog.Warn("quote failed", "brand", brand, "model", model, "err", err)
			continue
		}
		if price == 0 {
			continue
		}

		q := domain.CompetitorQuote{
			Brand:     brand,
			Model:     model,
			Price:     price,
			Source:    "duckduckgo",
			FetchedAt: time.Now().UTC(),
		}
		if err := archive.SaveQuote(ctx, q); err != nil {
			slog.Warn("could not archive quote", "brand", brand, "err", err)
		}
		quotes = append(quotes, q)
	}

	notifier.Quotes(quotes)
	return nil
}
