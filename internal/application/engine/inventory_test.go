package engine

import (
	"math/rand/v2"
	"testing"
	"time"

	"github.com/avelaine/luxesim/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRNG(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed))
}

func testTemplates() []domain.CatalogTemplate {
	return []domain.CatalogTemplate{
		{ID: "LEA-CHA-0001", Brand: "Chanel", Name: "Classic Flap", Category: "Bags", RawPrice: "6.200,00 €"},
		{ID: "LEA-HER-0002", Brand: "Hermès", Name: "Kelly 28", Category: "Bags", RawPrice: "12.500,00 €"},
		{ID: "LEA-GUC-0003", Brand: "Gucci", Name: "Jackie 1961", Category: "Bags", RawPrice: "2.400,00 €"},
	}
}

func TestInventory_RestockAddsAvailableItems(t *testing.T) {
	inv := NewInventory(testTemplates(), nil, testRNG(1), 0.55)
	date := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

	added := inv.Restock(date, 10)
	assert.Equal(t, 10, added)
	assert.Equal(t, 10, inv.AvailableCount())

	seen := make(map[string]bool)
	for _, it := range inv.Items() {
		require.Equal(t, domain.StatusAvailable, it.Status)
		assert.Equal(t, 0, it.DaysOnMarket)
		assert.Equal(t, date, it.DateAdded)
		assert.Greater(t, it.CurrentPrice, 0.0)
		assert.InDelta(t, it.CurrentPrice*0.55, it.COGS, 0.0001)
		assert.False(t, seen[it.SerialID], "duplicate serial %s", it.SerialID)
		seen[it.SerialID] = true
	}
}

func TestInventory_RestockSkipsUnparsablePrices(t *testing.T) {
	templates := []domain.CatalogTemplate{
		{ID: "BAD-0001", Brand: "Chanel", Name: "Mystery", RawPrice: "a consultar"},
	}
	inv := NewInventory(templates, nil, testRNG(1), 0.55)

	added := inv.Restock(time.Now(), 5)
	assert.Equal(t, 0, added)
	assert.Empty(t, inv.Items())
}

func TestInventory_RestockEmptyCatalog(t *testing.T) {
	inv := NewInventory(nil, nil, testRNG(1), 0.55)
	assert.Equal(t, 0, inv.Restock(time.Now(), 15))
}

func TestInventory_AgeOnlyAvailable(t *testing.T) {
	inv := NewInventory(testTemplates(), nil, testRNG(2), 0.55)
	inv.Restock(time.Now(), 5)

	idx, ok := inv.DrawAvailable()
	require.True(t, ok)
	inv.MarkSold(idx)

	inv.Age()
	inv.Age()

	for i, it := range inv.Items() {
		if i == idx {
			assert.Equal(t, 0, it.DaysOnMarket, "sold rows stop aging")
		} else {
			assert.Equal(t, 2, it.DaysOnMarket)
		}
	}
}

func TestInventory_SoldNeverReverts(t *testing.T) {
	inv := NewInventory(testTemplates(), nil, testRNG(3), 0.55)
	inv.Restock(time.Now(), 3)

	idx, ok := inv.DrawAvailable()
	require.True(t, ok)
	inv.MarkSold(idx)
	inv.MarkSold(idx) // idempotent

	assert.Equal(t, domain.StatusSold, inv.Item(idx).Status)
	assert.Equal(t, 1, inv.Sold())
	assert.Equal(t, 2, inv.AvailableCount())

	// A sold row is never drawn again.
	for n := 0; n < 50; n++ {
		drawn, ok := inv.DrawAvailable()
		require.True(t, ok)
		assert.NotEqual(t, idx, drawn)
	}
}

func TestInventory_DrawOnEmptyShelf(t *testing.T) {
	inv := NewInventory(testTemplates(), nil, testRNG(4), 0.55)
	inv.Restock(time.Now(), 2)

	for inv.AvailableCount() > 0 {
		idx, ok := inv.DrawAvailable()
		require.True(t, ok)
		inv.MarkSold(idx)
	}

	_, ok := inv.DrawAvailable()
	assert.False(t, ok)
}

func TestInventory_ResumeFromPersistedState(t *testing.T) {
	existing := []domain.InventoryItem{
		{SerialID: "SN-A", Brand: "Dior", CurrentPrice: 3000, Status: domain.StatusAvailable, DaysOnMarket: 12},
		{SerialID: "SN-B", Brand: "Chanel", CurrentPrice: 5000, Status: domain.StatusSold, DaysOnMarket: 4},
	}
	inv := NewInventory(testTemplates(), existing, testRNG(5), 0.55)

	assert.Equal(t, 1, inv.AvailableCount())
	idx, ok := inv.DrawAvailable()
	require.True(t, ok)
	assert.Equal(t, "SN-A", inv.Item(idx).SerialID)
}
