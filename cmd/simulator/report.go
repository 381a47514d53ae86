package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/avelaine/luxesim/internal/adapters/notify"
	"github.com/avelaine/luxesim/internal/adapters/storage"
)

// reportWindow is how far back the archive report looks.
const reportWindow = 90 * 24 * time.Hour

// runReport prints the archived runs of the last quarter plus the
// accumulated per-brand rollup.
func runReport(ctx context.Context, archive *storage.SQLiteArchive, notifier *notify.Console) error {
	now := time.Now().UTC()
	runs, err := archive.GetRuns(ctx, now.Add(-reportWindow), now)
	if err != nil {
		return fmt.Errorf("load runs: %w", err)
	}
	if len(runs) == 0 {
		slog.Info("archive is empty", "window", reportWindow)
		return nil
	}

	brands, err := archive.GetBrandPerformance(ctx)
	if err != nil {
		return fmt.Errorf("load brand rollup: %w", err)
	}

	// Newest run carries the rollup table; older runs print compact.
	for i := len(runs) - 1; i > 0; i-- {
		notifier.RunReport(runs[i], nil, nil)
	}
	notifier.RunReport(runs[0], brands, nil)
	return nil
}
