package domain

import "time"

// ItemStatus is the sellable state of an inventory row.
type ItemStatus string

const (
	StatusAvailable ItemStatus = "Available"
	StatusSold      ItemStatus = "Sold"
)

// CatalogTemplate is one row of the raw product catalog. RawPrice keeps the
// price exactly as it appears in the source file ("1.234,56 €", "$1,234"...)
// so the cleaning step stays an explicit, testable boundary.
type CatalogTemplate struct {
	ID       string
	Brand    string
	Name     string
	Category string
	Material string
	RawPrice string
}

// InventoryItem is a concrete sellable unit created at a restock event.
// Rows are never deleted: the inventory table is an append-and-mutate log.
type InventoryItem struct {
	SerialID     string
	Brand        string
	Name         string
	Category     string
	Material     string
	CurrentPrice float64
	COGS         float64
	Status       ItemStatus
	DateAdded    time.Time
	DaysOnMarket int
}

// Available reports whether the item can still be sold.
func (i InventoryItem) Available() bool {
	return i.Status == StatusAvailable
}
