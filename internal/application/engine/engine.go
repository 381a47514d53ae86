package engine

// engine.go — the day-stepped retail simulator.
//
// One run = one pass over the macro series, strictly sequential:
// restock → age → traffic draw → visitor sampling → match loop → daily metric.
// All randomness flows through a single seeded rng, so a (seed, config) pair
// reproduces the run exactly. State is loaded at construction and persisted
// once at the end; empty stock or an empty active-client pool degrades a day
// to zero sales instead of failing the run.

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"

	"github.com/avelaine/luxesim/internal/domain"
	"github.com/avelaine/luxesim/internal/ports"
)

// Config controls one simulation run.
type Config struct {
	Days              int
	TrafficMean       float64
	TrafficStd        float64
	AcceptThreshold   float64
	ActiveBudgetFloor float64
	ReturnRate        float64
	COGSRate          float64
	RestockMin        int
	RestockMax        int
	InitialRestock    int
	RefundOnReturn    bool
	Tier1Brands       []string
}

// DefaultConfig returns the calibrated demo parameters.
func DefaultConfig() Config {
	return Config{
		Days:              365,
		TrafficMean:       90,
		TrafficStd:        4,
		AcceptThreshold:   domain.DefaultAcceptThreshold,
		ActiveBudgetFloor: 800,
		ReturnRate:        0.06,
		COGSRate:          0.55,
		RestockMin:        8,
		RestockMax:        18,
		InitialRestock:    350,
		Tier1Brands:       domain.DefaultTier1Brands,
	}
}

// Simulator owns all entities for the duration of one run.
type Simulator struct {
	cfg    Config
	store  ports.StateStore
	rng    *rand.Rand
	inv    *Inventory
	ledger *Ledger
	tier1  domain.TierSet

	metrics []domain.DailyMetric
	sales   []domain.SaleRecord
}

// New loads catalog, clients and any persisted inventory through the state
// store. Missing or unreadable seed data is fatal here; everything after
// construction degrades gracefully.
func New(cfg Config, store ports.StateStore, rng *rand.Rand) (*Simulator, error) {
	if cfg.RestockMax < cfg.RestockMin {
		return nil, fmt.Errorf("engine.New: restock bounds inverted: max %d < min %d",
			cfg.RestockMax, cfg.RestockMin)
	}

	templates, err := store.LoadCatalog()
	if err != nil {
		return nil, fmt.Errorf("engine.New: load catalog: %w", err)
	}

	clients, resumed, err := store.LoadClients()
	if err != nil {
		return nil, fmt.Errorf("engine.New: load clients: %w", err)
	}

	inventory, err := store.LoadInventory()
	if err != nil {
		return nil, fmt.Errorf("engine.New: load inventory: %w", err)
	}

	return &Simulator{
		cfg:    cfg,
		store:  store,
		rng:    rng,
		inv:    NewInventory(templates, inventory, rng, cfg.COGSRate),
		ledger: NewLedger(clients, resumed, rng, cfg.ActiveBudgetFloor, cfg.RefundOnReturn),
		tier1:  domain.NewTierSet(cfg.Tier1Brands),
	}, nil
}

// Run drives the day loop over the given macro series and persists the end
// state. Returns the sales log.
func (s *Simulator) Run(ctx context.Context, macro []domain.MacroDay) ([]domain.SaleRecord, error) {
	if len(macro) == 0 {
		return nil, fmt.Errorf("engine.Run: empty macro series")
	}

	days := s.cfg.Days
	if days > len(macro) {
		days = len(macro)
	}

	slog.Info("simulation starting",
		"days", days,
		"clients", len(s.ledger.Clients()),
		"traffic_mean", s.cfg.TrafficMean,
		"resume_inventory", len(s.inv.Items()),
	)

	// First run only: a resumed book keeps its history even when every
	// piece in it has sold.
	if len(s.inv.Items()) == 0 {
		added := s.inv.Restock(macro[0].Date, s.cfg.InitialRestock)
		slog.Info("initial restock", "added", added)
	}

	for i := 0; i < days; i++ {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("engine.Run: day %d: %w", i, err)
		}
		s.step(macro[i])
	}

	if err := s.persist(); err != nil {
		return nil, err
	}

	slog.Info("simulation finished",
		"sales", len(s.sales),
		"stock_added", s.inv.Added(),
		"stock_sold", s.inv.Sold(),
	)
	return s.sales, nil
}

// step executes one simulated day.
func (s *Simulator) step(day domain.MacroDay) {
	// Daily restock batch.
	volume := s.cfg.RestockMin + s.rng.IntN(s.cfg.RestockMax-s.cfg.RestockMin+1)
	s.inv.Restock(day.Date, volume)

	// Age the shelf before anyone walks in.
	s.inv.Age()

	// Traffic: hype-scaled gaussian, hard-banded around the mean so the
	// multiplier cannot run the footfall away.
	traffic := s.drawTraffic(day.LuxuryHype)

	// Visitors: sampled with replacement from clients above the budget
	// floor. The active pool is fixed at the start of the day.
	dailyRevenue := 0.0
	active := s.ledger.ActiveIdx()
	if len(active) > 0 {
		n := traffic
		if n > len(active) {
			n = len(active)
		}
		for v := 0; v < n; v++ {
			ci := active[s.rng.IntN(len(active))]

			// One random available item per visitor.
			idx, ok := s.inv.DrawAvailable()
			if !ok {
				break // shelf empty: the rest of the day transacts nothing
			}

			item := s.inv.Item(idx)
			score := domain.AffinityScore(s.ledger.Client(ci), item, day.EconomicIndex, s.tier1)
			if score <= s.cfg.AcceptThreshold {
				continue
			}

			returned := s.rng.Float64() < s.cfg.ReturnRate
			sale := domain.SaleRecord{
				Date:       day.Date,
				Brand:      item.Brand,
				NetRevenue: item.CurrentPrice,
				Status:     domain.SaleCompleted,
				Cluster:    domain.ClusterStandard,
			}
			if returned {
				sale.NetRevenue = -item.CurrentPrice
				sale.Status = domain.SaleReturned
			}
			if s.tier1[item.Brand] {
				sale.Cluster = domain.ClusterHighEnd
			}

			s.sales = append(s.sales, sale)
			dailyRevenue += sale.NetRevenue
			s.inv.MarkSold(idx)
			s.ledger.Debit(ci, item.CurrentPrice, returned)
		}
	}

	s.metrics = append(s.metrics, domain.DailyMetric{
		Date:    day.Date,
		Revenue: dailyRevenue,
		Traffic: traffic,
	})

	slog.Debug("day simulated",
		"date", day.Date.Format("2006-01-02"),
		"traffic", traffic,
		"revenue", fmt.Sprintf("%.0f", dailyRevenue),
		"stock", s.inv.AvailableCount(),
	)
}

// drawTraffic applies the hype multiplier to a gaussian draw and clamps the
// result to the [0.8×mean, 1.2×mean] band.
func (s *Simulator) drawTraffic(hype float64) int {
	traffic := int((s.rng.NormFloat64()*s.cfg.TrafficStd + s.cfg.TrafficMean) * hype)
	lo := int(s.cfg.TrafficMean * 0.8)
	hi := int(s.cfg.TrafficMean * 1.2)
	if traffic < lo {
		return lo
	}
	if traffic > hi {
		return hi
	}
	return traffic
}

// persist writes the terminal state: stock book, client ledger, metrics
// buffer and the run's sales log.
func (s *Simulator) persist() error {
	if err := s.store.SaveState(s.inv.Items(), s.ledger.Clients(), s.metrics); err != nil {
		return fmt.Errorf("engine.Run: save state: %w", err)
	}
	if err := s.store.SaveSales(s.sales); err != nil {
		return fmt.Errorf("engine.Run: save sales: %w", err)
	}
	return nil
}

// Metrics exposes the daily rollups of the finished run.
func (s *Simulator) Metrics() []domain.DailyMetric {
	return s.metrics
}

// Inventory and Clients expose end state for reporting.
func (s *Simulator) Inventory() []domain.InventoryItem { return s.inv.Items() }
func (s *Simulator) Clients() []domain.Client          { return s.ledger.Clients() }

// Summary folds the run into its archive row.
func (s *Simulator) Summary() domain.RunSummary {
	return domain.SummarizeRun(s.sales, s.metrics, s.inv.Added(), s.inv.Sold())
}
