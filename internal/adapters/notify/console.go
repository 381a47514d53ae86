package notify

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/avelaine/luxesim/internal/domain"
	"github.com/olekukonko/tablewriter"
)

// Console implements ports.Notifier.
type Console struct {
	out   io.Writer
	table bool
}

// NewConsole creates a notifier that writes to stdout.
func NewConsole(table bool) *Console {
	return &Console{out: os.Stdout, table: table}
}

// NewConsoleWriter creates a notifier for tests.
func NewConsoleWriter(w io.Writer, table bool) *Console {
	return &Console{out: w, table: table}
}

// RunReport prints the exit summary for a finished run: headline numbers,
// per-brand rollup and the closing days of the daily ledger.
func (c *Console) RunReport(run domain.RunSummary, brands []domain.BrandPerformance, tail []domain.DailyMetric) {
	fmt.Fprintf(c.out, "\n[%s] run %s — %s, %d days, seed %d\n",
		time.Now().Format("15:04:05"), run.RunID, run.Scenario, run.Days, run.Seed)
	fmt.Fprintf(c.out, "  sales %d (%d returned) | net €%.2f | avg traffic %.1f/day | sell-through %.1f%%\n",
		run.TotalSales, run.Returns, run.NetRevenue, run.AvgTraffic, run.SellThrough*100)
	fmt.Fprintf(c.out, "  stock: +%d added, %d sold\n", run.StockAdded, run.StockSold)

	if !c.table {
		return
	}

	if len(brands) > 0 {
		fmt.Fprintln(c.out, "\nBrand performance:")
		c.printBrands(brands)
	}
	if len(tail) > 0 {
		fmt.Fprintf(c.out, "\nLast %d days:\n", len(tail))
		c.printMetrics(tail)
	}
}

func (c *Console) printBrands(brands []domain.BrandPerformance) {
	table := tablewriter.NewWriter(c.out)
	table.Header("#", "Brand", "Units", "Returns", "Net Revenue", "Best Day")

	for i, b := range brands {
		table.Append(
			fmt.Sprintf("%d", i+1),
			b.Brand,
			fmt.Sprintf("%d", b.Units),
			fmt.Sprintf("%d", b.Returns),
			fmt.Sprintf("€%.2f", b.NetRevenue),
			fmt.Sprintf("€%.2f", b.BestDay),
		)
	}

	table.Render()
}

func (c *Console) printMetrics(metrics []domain.DailyMetric) {
	table := tablewriter.NewWriter(c.out)
	table.Header("Date", "Traffic", "Net Revenue")

	for _, m := range metrics {
		table.Append(
			m.Date.Format("2006-01-02"),
			fmt.Sprintf("%d", m.Traffic),
			fmt.Sprintf("€%.2f", m.Revenue),
		)
	}

	table.Render()
}

// Quotes prints competitor price observations gathered by the market monitor.
func (c *Console) Quotes(quotes []domain.CompetitorQuote) {
	if len(quotes) == 0 {
		fmt.Fprintf(c.out, "[%s] no competitor quotes found\n", time.Now().Format("15:04:05"))
		return
	}

	fmt.Fprintf(c.out, "\n[%s] %d competitor quotes\n", time.Now().Format("15:04:05"), len(quotes))

	table := tablewriter.NewWriter(c.out)
	table.Header("Brand", "Model", "Price", "Source")

	for _, q := range quotes {
		table.Append(q.Brand, q.Model, fmt.Sprintf("€%.2f", q.Price), q.Source)
	}

	table.Render()
}
