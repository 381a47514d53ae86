package engine

import (
	"fmt"
	"testing"

	"github.com/avelaine/luxesim/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedClients(n int) []domain.Client {
	clients := make([]domain.Client, n)
	for i := range clients {
		clients[i] = domain.Client{ClientID: fmt.Sprintf("C-%04d", i), BrandAffinity: "Chanel"}
	}
	return clients
}

func TestLedger_StratifiedWallets(t *testing.T) {
	l := NewLedger(seedClients(2000), false, testRNG(11), 800, false)

	var aspirational, recurrent, vip int
	for _, c := range l.Clients() {
		require.Equal(t, c.FashionWallet, c.CurrentBudget)
		require.Equal(t, 0, c.PurchasesCount)

		switch {
		case c.FashionWallet >= 3500 && c.FashionWallet <= 9000:
			aspirational++
		case c.FashionWallet >= 15000 && c.FashionWallet <= 40000:
			recurrent++
		case c.FashionWallet >= 60000 && c.FashionWallet <= 200000:
			vip++
		default:
			t.Fatalf("wallet %v outside every tier", c.FashionWallet)
		}
	}

	// Rough shares: 65 / 27 / 8 with generous slack for 2000 draws.
	assert.InDelta(t, 0.65, float64(aspirational)/2000, 0.05)
	assert.InDelta(t, 0.27, float64(recurrent)/2000, 0.05)
	assert.InDelta(t, 0.08, float64(vip)/2000, 0.03)
}

func TestLedger_ResumedKeepsBudgets(t *testing.T) {
	clients := []domain.Client{
		{ClientID: "C-1", FashionWallet: 20000, CurrentBudget: 12500, PurchasesCount: 3},
	}
	l := NewLedger(clients, true, testRNG(12), 800, false)

	c := l.Client(0)
	assert.Equal(t, 12500.0, c.CurrentBudget)
	assert.Equal(t, 20000.0, c.FashionWallet)
	assert.Equal(t, 3, c.PurchasesCount)
}

func TestLedger_ActiveFloorIsStrict(t *testing.T) {
	clients := []domain.Client{
		{ClientID: "C-1", CurrentBudget: 500},
		{ClientID: "C-2", CurrentBudget: 800}, // exactly at the floor: inactive
		{ClientID: "C-3", CurrentBudget: 801},
	}
	l := NewLedger(clients, true, testRNG(13), 800, false)

	active := l.ActiveIdx()
	require.Len(t, active, 1)
	assert.Equal(t, "C-3", l.Client(active[0]).ClientID)
}

func TestLedger_DebitFullPriceOnReturn(t *testing.T) {
	clients := []domain.Client{{ClientID: "C-1", FashionWallet: 10000, CurrentBudget: 10000}}
	l := NewLedger(clients, true, testRNG(14), 800, false)

	l.Debit(0, 4000, true) // returned, no refund policy
	assert.Equal(t, 6000.0, l.Client(0).CurrentBudget)
	assert.Equal(t, 1, l.Client(0).PurchasesCount)
}

func TestLedger_RefundOnReturnPolicy(t *testing.T) {
	clients := []domain.Client{{ClientID: "C-1", FashionWallet: 10000, CurrentBudget: 10000}}
	l := NewLedger(clients, true, testRNG(15), 800, true)

	l.Debit(0, 4000, true)
	assert.Equal(t, 10000.0, l.Client(0).CurrentBudget, "returned sale leaves the budget untouched")

	l.Debit(0, 4000, false)
	assert.Equal(t, 6000.0, l.Client(0).CurrentBudget, "completed sale still debits")
}
