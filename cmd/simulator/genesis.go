package main

import (
	"fmt"
	"log/slog"
	"math/rand/v2"

	"github.com/avelaine/luxesim/internal/adapters/storage"
	"github.com/avelaine/luxesim/internal/application/genesis"
)

// runGenesis rebuilds the seed data from scratch: the product catalog, the
// wealth census and the client table derived from it. Existing run state in
// the processed directory is left alone.
func runGenesis(store *storage.CSVStore, rng *rand.Rand, clients int) error {
	slog.Info("=== GENESIS: regenerating seed data ===")

	catalog := genesis.BuildCatalog(rng)
	if err := store.SaveCatalog(catalog); err != nil {
		return fmt.Errorf("save catalog: %w", err)
	}
	slog.Info("catalog written", "templates", len(catalog))

	census := genesis.BuildCensus(rng)
	if err := store.SaveCensus(census); err != nil {
		return fmt.Errorf("save census: %w", err)
	}
	slog.Info("census written", "households", len(census))

	derived := genesis.DeriveClients(rng, census, clients)
	if err := store.SaveClientSeed(derived); err != nil {
		return fmt.Errorf("save client seed: %w", err)
	}
	slog.Info("client seed written", "clients", len(derived))

	return nil
}
