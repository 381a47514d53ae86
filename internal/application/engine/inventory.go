package engine

import (
	"log/slog"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/avelaine/luxesim/internal/domain"
	"github.com/google/uuid"
)

// Inventory is the in-memory stock book. Rows are append-and-mutate: nothing
// is ever removed, Sold never reverts to Available. An index of available
// rows is kept alongside so per-visitor draws stay cheap as the table grows.
type Inventory struct {
	items     []domain.InventoryItem
	available []int // indices into items with Status == Available
	templates []domain.CatalogTemplate
	rng       *rand.Rand
	cogsRate  float64

	added int // rows created this run
	sold  int // rows sold this run
}

// NewInventory wraps persisted inventory (possibly empty) plus the catalog
// templates restocks draw from.
func NewInventory(templates []domain.CatalogTemplate, existing []domain.InventoryItem, rng *rand.Rand, cogsRate float64) *Inventory {
	inv := &Inventory{
		items:     existing,
		templates: templates,
		rng:       rng,
		cogsRate:  cogsRate,
	}
	for i, it := range inv.items {
		if it.Available() {
			inv.available = append(inv.available, i)
		}
	}
	return inv
}

// Restock appends volume new items sampled with replacement from the catalog
// templates. Templates whose price field cannot be parsed are skipped and
// logged rather than priced at zero — free inventory would quietly corrupt
// every downstream number. Returns how many items were actually added.
func (inv *Inventory) Restock(date time.Time, volume int) int {
	if len(inv.templates) == 0 {
		return 0
	}

	added := 0
	for n := 0; n < volume; n++ {
		tpl := inv.templates[inv.rng.IntN(len(inv.templates))]

		price, err := domain.CleanPrice(tpl.RawPrice)
		if err != nil {
			slog.Warn("restock: skipping template with bad price",
				"template", tpl.ID, "brand", tpl.Brand, "raw", tpl.RawPrice)
			continue
		}

		inv.items = append(inv.items, domain.InventoryItem{
			SerialID:     newSerial(),
			Brand:        tpl.Brand,
			Name:         tpl.Name,
			Category:     tpl.Category,
			Material:     tpl.Material,
			CurrentPrice: price,
			COGS:         price * inv.cogsRate,
			Status:       domain.StatusAvailable,
			DateAdded:    date,
			DaysOnMarket: 0,
		})
		inv.available = append(inv.available, len(inv.items)-1)
		added++
	}
	inv.added += added
	return added
}

// Age advances DaysOnMarket by one for every available item. Sold rows stop
// aging.
func (inv *Inventory) Age() {
	for _, idx := range inv.available {
		inv.items[idx].DaysOnMarket++
	}
}

// DrawAvailable picks one random available row. ok is false when the shelf
// is empty, which short-circuits the rest of the day's visitors.
func (inv *Inventory) DrawAvailable() (idx int, ok bool) {
	if len(inv.available) == 0 {
		return 0, false
	}
	return inv.available[inv.rng.IntN(len(inv.available))], true
}

// MarkSold flips a row to Sold and drops it from the available index.
func (inv *Inventory) MarkSold(idx int) {
	if !inv.items[idx].Available() {
		return
	}
	inv.items[idx].Status = domain.StatusSold
	inv.sold++
	for i, a := range inv.available {
		if a == idx {
			inv.available[i] = inv.available[len(inv.available)-1]
			inv.available = inv.available[:len(inv.available)-1]
			return
		}
	}
}

// Item returns the row at idx.
func (inv *Inventory) Item(idx int) domain.InventoryItem {
	return inv.items[idx]
}

// Items exposes the full table for persistence.
func (inv *Inventory) Items() []domain.InventoryItem {
	return inv.items
}

// AvailableCount returns how many rows are currently sellable.
func (inv *Inventory) AvailableCount() int {
	return len(inv.available)
}

// Added and Sold report this run's stock movement.
func (inv *Inventory) Added() int { return inv.added }
func (inv *Inventory) Sold() int  { return inv.sold }

// newSerial mints a unique serial id for a restocked unit.
func newSerial() string {
	raw := strings.ReplaceAll(uuid.New().String(), "-", "")
	return "SN-" + strings.ToUpper(raw[:12])
}
