package ports

import (
	"github.com/avelaine/luxesim/internal/domain"
)

// StateStore persists the simulator's working state between runs: flat
// tabular files with a header row, reload-on-next-invocation semantics.
type StateStore interface {
	// LoadCatalog reads the raw product-template table. Missing or
	// unreadable seed data is fatal at construction time.
	LoadCatalog() ([]domain.CatalogTemplate, error)

	// LoadClients prefers persisted client state and falls back to the
	// client seed table. The bool reports whether persisted state was used.
	LoadClients() ([]domain.Client, bool, error)

	// LoadInventory returns the persisted inventory, or an empty slice when
	// no state file exists yet.
	LoadInventory() ([]domain.InventoryItem, error)

	// SaveState overwrites inventory, client and daily-metric state.
	SaveState(inventory []domain.InventoryItem, clients []domain.Client, metrics []domain.DailyMetric) error

	// SaveSales appends nothing: the sales history is rewritten whole each
	// run, matching the overwrite semantics of the rest of the state.
	SaveSales(sales []domain.SaleRecord) error

	// SaveMacro persists the macro series consumed by downstream tooling.
	SaveMacro(series []domain.MacroDay) error
}
