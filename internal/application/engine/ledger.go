package engine

import (
	"math/rand/v2"

	"github.com/avelaine/luxesim/internal/domain"
)

// Wallet stratification: three client tiers drawn at initialization when no
// persisted budget exists.
const (
	aspirationalShare = 0.65 // [3500, 9000]
	recurrentShare    = 0.92 // cumulative; [15000, 40000]
	// remaining 8%: VIP, [60000, 200000]

	aspirationalMin, aspirationalMax = 3500, 9000
	recurrentMin, recurrentMax       = 15000, 40000
	vipMin, vipMax                   = 60000, 200000
)

// Ledger tracks per-client remaining budget. Budgets only move down during a
// run; whether a returned sale refunds the client is an explicit policy
// switch, not an accident.
type Ledger struct {
	clients        []domain.Client
	rng            *rand.Rand
	floor          float64
	refundOnReturn bool
}

// NewLedger wraps the loaded client table. When the table came from seed
// data rather than persisted state, every client gets a stratified wallet.
func NewLedger(clients []domain.Client, resumed bool, rng *rand.Rand, floor float64, refundOnReturn bool) *Ledger {
	l := &Ledger{
		clients:        clients,
		rng:            rng,
		floor:          floor,
		refundOnReturn: refundOnReturn,
	}
	if !resumed {
		for i := range l.clients {
			wallet := l.drawWallet()
			l.clients[i].FashionWallet = wallet
			l.clients[i].CurrentBudget = wallet
			l.clients[i].PurchasesCount = 0
		}
	}
	return l
}

// drawWallet picks a budget from the three-tier distribution:
// 65% aspirational, 27% recurrent luxury, 8% VIP.
func (l *Ledger) drawWallet() float64 {
	r := l.rng.Float64()
	switch {
	case r < aspirationalShare:
		return float64(aspirationalMin + l.rng.IntN(aspirationalMax-aspirationalMin+1))
	case r < recurrentShare:
		return float64(recurrentMin + l.rng.IntN(recurrentMax-recurrentMin+1))
	default:
		return float64(vipMin + l.rng.IntN(vipMax-vipMin+1))
	}
}

// ActiveIdx returns indices of clients able to transact today: budget
// strictly above the floor.
func (l *Ledger) ActiveIdx() []int {
	var active []int
	for i, c := range l.clients {
		if c.CurrentBudget > l.floor {
			active = append(active, i)
		}
	}
	return active
}

// Debit charges a matched transaction. The full price is taken regardless
// of return status unless refund-on-return is enabled. The affinity gate
// already guarantees price ≤ budget, so the balance never goes negative.
func (l *Ledger) Debit(idx int, price float64, returned bool) {
	l.clients[idx].PurchasesCount++
	if returned && l.refundOnReturn {
		return
	}
	l.clients[idx].CurrentBudget -= price
}

// Client returns the row at idx.
func (l *Ledger) Client(idx int) domain.Client {
	return l.clients[idx]
}

// Clients exposes the full table for persistence.
func (l *Ledger) Clients() []domain.Client {
	return l.clients
}
