package storage

// sqlite.go — cross-run archive.
//
// Strategy:
//   - `runs`: one summary row per simulation run. Always small.
//   - `brand_performance`: ONE row per brand (UPSERT), accumulated across
//     runs, with peak single-day revenue tracked via MAX on conflict.
//   - `competitor_quotes`: append-only price observations from the market
//     monitor; pruned on open past the retention window.

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/avelaine/luxesim/internal/domain"
	_ "modernc.org/sqlite"
)

const schema = `
-- One row per simulation run
CREATE TABLE IF NOT EXISTS runs (
    run_id       TEXT PRIMARY KEY,
    started_at   DATETIME NOT NULL,
    days         INTEGER  NOT NULL DEFAULT 0,
    seed         INTEGER  NOT NULL DEFAULT 0,
    scenario     TEXT     NOT NULL DEFAULT '',
    total_sales  INTEGER  NOT NULL DEFAULT 0,
    returns      INTEGER  NOT NULL DEFAULT 0,
    net_revenue  REAL     NOT NULL DEFAULT 0,
    avg_traffic  REAL     NOT NULL DEFAULT 0,
    stock_added  INTEGER  NOT NULL DEFAULT 0,
    stock_sold   INTEGER  NOT NULL DEFAULT 0,
    sell_through REAL     NOT NULL DEFAULT 0
);

-- One row per brand, accumulated across runs
CREATE TABLE IF NOT EXISTS brand_performance (
    brand       TEXT PRIMARY KEY,
    units       INTEGER NOT NULL DEFAULT 0,
    returns     INTEGER NOT NULL DEFAULT 0,
    net_revenue REAL    NOT NULL DEFAULT 0,
    best_day    REAL    NOT NULL DEFAULT 0,
    last_run    DATETIME
);

-- Competitor price observations from the market monitor
CREATE TABLE IF NOT EXISTS competitor_quotes (
    id         INTEGER PRIMARY KEY AUTOINCREMENT,
    brand      TEXT NOT NULL,
    model      TEXT NOT NULL,
    price      REAL NOT NULL,
    source     TEXT NOT NULL DEFAULT '',
    fetched_at DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_runs_at      ON runs(started_at DESC);
CREATE INDEX IF NOT EXISTS idx_brand_rev    ON brand_performance(net_revenue DESC);
CREATE INDEX IF NOT EXISTS idx_quotes_brand ON competitor_quotes(brand, model);
CREATE INDEX IF NOT EXISTS idx_quotes_at    ON competitor_quotes(fetched_at DESC);
`

const (
	retentionRuns   = 180 * 24 * time.Hour // runs: ~6 months of history
	retentionQuotes = 30 * 24 * time.Hour  // quotes go stale fast
)

// SQLiteArchive implements ports.Archive using SQLite (pure Go, no CGo).
type SQLiteArchive struct {
	db *sql.DB
}

// NewSQLiteArchive opens (or creates) the database at the given path,
// applies the schema and prunes stale rows.
func NewSQLiteArchive(path string) (*SQLiteArchive, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("storage.NewSQLiteArchive: open %q: %w", path, err)
	}
	db.SetMaxOpenConns(1) // SQLite is single-writer
	db.SetMaxIdleConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage.NewSQLiteArchive: apply schema: %w", err)
	}

	a := &SQLiteArchive{db: db}
	a.pruneOld(context.Background())
	return a, nil
}

// SaveRun persists the run summary and folds its brand breakdown into the
// accumulated table.
func (a *SQLiteArchive) SaveRun(ctx context.Context, run domain.RunSummary, brands []domain.BrandPerformance) error {
	tx, err := a.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("storage.SaveRun: begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO runs
			(run_id, started_at, days, seed, scenario, total_sales, returns,
			 net_revenue, avg_traffic, stock_added, stock_sold, sell_through)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.RunID, run.StartedAt.UTC(), run.Days, int64(run.Seed), run.Scenario,
		run.TotalSales, run.Returns, run.NetRevenue, run.AvgTraffic,
		run.StockAdded, run.StockSold, run.SellThrough,
	); err != nil {
		return fmt.Errorf("storage.SaveRun: insert run: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO brand_performance (brand, units, returns, net_revenue, best_day, last_run)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(brand) DO UPDATE SET
			units       = units + excluded.units,
			returns     = returns + excluded.returns,
			net_revenue = net_revenue + excluded.net_revenue,
			best_day    = MAX(best_day, excluded.best_day),
			last_run    = excluded.last_run
	`)
	if err != nil {
		return fmt.Errorf("storage.SaveRun: prepare: %w", err)
	}
	defer stmt.Close()

	for _, b := range brands {
		if _, err := stmt.ExecContext(ctx,
			b.Brand, b.Units, b.Returns, b.NetRevenue, b.BestDay, run.StartedAt.UTC(),
		); err != nil {
			return fmt.Errorf("storage.SaveRun: upsert %s: %w", b.Brand, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage.SaveRun: commit: %w", err)
	}
	return nil
}

// SaveQuote appends one competitor price observation.
func (a *SQLiteArchive) SaveQuote(ctx context.Context, q domain.CompetitorQuote) error {
	if _, err := a.db.ExecContext(ctx, `
		INSERT INTO competitor_quotes (brand, model, price, source, fetched_at)
		VALUES (?, ?, ?, ?, ?)`,
		q.Brand, q.Model, q.Price, q.Source, q.FetchedAt.UTC(),
	); err != nil {
		return fmt.Errorf("storage.SaveQuote: insert: %w", err)
	}
	return nil
}

// GetRuns returns run summaries started in the given range, newest first.
func (a *SQLiteArchive) GetRuns(ctx context.Context, from, to time.Time) ([]domain.RunSummary, error) {
	rows, err := a.db.QueryContext(ctx, `
		SELECT run_id, started_at, days, seed, scenario, total_sales, returns,
		       net_revenue, avg_traffic, stock_added, stock_sold, sell_through
		FROM runs
		WHERE started_at BETWEEN ? AND ?
		ORDER BY started_at DESC
	`, from.UTC(), to.UTC())
	if err != nil {
		return nil, fmt.Errorf("storage.GetRuns: query: %w", err)
	}
	defer rows.Close()

	var runs []domain.RunSummary
	for rows.Next() {
		var r domain.RunSummary
		var startedAt string
		var seed int64

		if err := rows.Scan(
			&r.RunID, &startedAt, &r.Days, &seed, &r.Scenario,
			&r.TotalSales, &r.Returns, &r.NetRevenue, &r.AvgTraffic,
			&r.StockAdded, &r.StockSold, &r.SellThrough,
		); err != nil {
			return nil, fmt.Errorf("storage.GetRuns: scan row: %w", err)
		}
		r.Seed = uint64(seed)
		r.StartedAt, _ = time.Parse(time.RFC3339, startedAt)
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// GetBrandPerformance returns the accumulated brand rollup, best first.
func (a *SQLiteArchive) GetBrandPerformance(ctx context.Context) ([]domain.BrandPerformance, error) {
	rows, err := a.db.QueryContext(ctx, `
		SELECT brand, units, returns, net_revenue, best_day
		FROM brand_performance
		ORDER BY net_revenue DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("storage.GetBrandPerformance: query: %w", err)
	}
	defer rows.Close()

	var brands []domain.BrandPerformance
	for rows.Next() {
		var b domain.BrandPerformance
		if err := rows.Scan(&b.Brand, &b.Units, &b.Returns, &b.NetRevenue, &b.BestDay); err != nil {
			return nil, fmt.Errorf("storage.GetBrandPerformance: scan row: %w", err)
		}
		brands = append(brands, b)
	}
	return brands, rows.Err()
}

// Close closes the database connection.
func (a *SQLiteArchive) Close() error {
	return a.db.Close()
}

// pruneOld keeps the archive light.
func (a *SQLiteArchive) pruneOld(ctx context.Context) {
	cutoffRuns := time.Now().UTC().Add(-retentionRuns)
	cutoffQuotes := time.Now().UTC().Add(-retentionQuotes)
	a.db.ExecContext(ctx, `DELETE FROM runs WHERE started_at < ?`, cutoffRuns)
	a.db.ExecContext(ctx, `DELETE FROM competitor_quotes WHERE fetched_at < ?`, cutoffQuotes)
}
