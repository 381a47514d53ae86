package domain

import (
	"sort"
	"time"
)

// SaleStatus marks whether a matched transaction stuck or came back.
type SaleStatus string

const (
	SaleCompleted SaleStatus = "Completed"
	SaleReturned  SaleStatus = "Returned"
)

// Cluster buckets used by the downstream analytics tables.
const (
	ClusterHighEnd  = "High_End"
	ClusterStandard = "Standard"
)

// SaleRecord is one matched transaction. NetRevenue is signed: negative when
// the sale was flagged as returned.
type SaleRecord struct {
	Date       time.Time
	Brand      string
	NetRevenue float64
	Status     SaleStatus
	Cluster    string
}

// DailyMetric aggregates one simulated day.
type DailyMetric struct {
	Date    time.Time
	Revenue float64
	Traffic int
}

// RunSummary is the aggregate of a full simulation run, persisted to the
// archive and printed in the exit report.
type RunSummary struct {
	RunID       string
	StartedAt   time.Time
	Days        int
	Seed        uint64
	Scenario    string
	TotalSales  int
	Returns     int
	NetRevenue  float64
	AvgTraffic  float64
	StockAdded  int
	StockSold   int
	SellThrough float64 // sold / added, 0 when nothing was added
}

// BrandPerformance is the per-brand rollup of a run's sales log.
type BrandPerformance struct {
	Brand      string
	Units      int
	Returns    int
	NetRevenue float64
	BestDay    float64 // highest single-day net revenue for the brand
}

// SummarizeRun folds a sales log and metrics buffer into a RunSummary.
func SummarizeRun(sales []SaleRecord, metrics []DailyMetric, added, sold int) RunSummary {
	var s RunSummary
	s.TotalSales = len(sales)
	for _, sale := range sales {
		s.NetRevenue += sale.NetRevenue
		if sale.Status == SaleReturned {
			s.Returns++
		}
	}
	if len(metrics) > 0 {
		total := 0
		for _, m := range metrics {
			total += m.Traffic
		}
		s.AvgTraffic = float64(total) / float64(len(metrics))
		s.Days = len(metrics)
	}
	s.StockAdded = added
	s.StockSold = sold
	if added > 0 {
		s.SellThrough = float64(sold) / float64(added)
	}
	return s
}

// BrandBreakdown rolls the sales log up by brand, best first by net revenue.
func BrandBreakdown(sales []SaleRecord) []BrandPerformance {
	byBrand := make(map[string]*BrandPerformance)
	dayRevenue := make(map[string]map[time.Time]float64)

	for _, sale := range sales {
		bp, ok := byBrand[sale.Brand]
		if !ok {
			bp = &BrandPerformance{Brand: sale.Brand}
			byBrand[sale.Brand] = bp
			dayRevenue[sale.Brand] = make(map[time.Time]float64)
		}
		bp.Units++
		bp.NetRevenue += sale.NetRevenue
		if sale.Status == SaleReturned {
			bp.Returns++
		}
		day := sale.Date.Truncate(24 * time.Hour)
		dayRevenue[sale.Brand][day] += sale.NetRevenue
	}

	out := make([]BrandPerformance, 0, len(byBrand))
	for brand, bp := range byBrand {
		for _, rev := range dayRevenue[brand] {
			if rev > bp.BestDay {
				bp.BestDay = rev
			}
		}
		out = append(out, *bp)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].NetRevenue > out[j].NetRevenue })
	return out
}
