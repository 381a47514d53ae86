package main

import (
	"context"
	"flag"
	"log/slog"
	"math/rand/v2"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/avelaine/luxesim/config"
	"github.com/avelaine/luxesim/internal/adapters/notify"
	"github.com/avelaine/luxesim/internal/adapters/storage"
	"github.com/avelaine/luxesim/internal/application/engine"
	"github.com/avelaine/luxesim/internal/domain"
	"github.com/google/uuid"
)

func main() {
	configPath := flag.String("config", "config/config.yaml", "path to config file")
	days := flag.Int("days", 0, "days to simulate (overrides config)")
	seed := flag.Uint64("seed", 0, "rng seed (overrides config; 0 derives from wall clock)")
	scenario := flag.String("scenario", "", "macro preset: baseline|crisis|boom")
	genesis := flag.Bool("genesis", false, "regenerate catalog, census and client seed, then exit")
	report := flag.Bool("report", false, "print the run archive and exit")
	scrape := flag.Bool("scrape", false, "fetch competitor quotes for the iconic models, then exit")
	table := flag.Bool("table", false, "print full tables (default: compact summary)")
	verbose := flag.Bool("verbose", false, "set log level to debug")
	logFormat := flag.String("format", "", "log format: text|json (overrides config)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "err", err, "path", *configPath)
		os.Exit(1)
	}

	if *verbose {
		cfg.Log.Level = "debug"
	}
	if *logFormat != "" {
		cfg.Log.Format = *logFormat
	}
	setupLogger(cfg.Log)

	if *days > 0 {
		cfg.Simulation.Days = *days
	}
	if *seed != 0 {
		cfg.Simulation.Seed = *seed
	}
	if err := cfg.ApplyScenario(*scenario); err != nil {
		slog.Error("bad scenario", "err", err)
		os.Exit(1)
	}
	scenarioName := *scenario
	if scenarioName == "" {
		scenarioName = "baseline"
	}

	runSeed := cfg.Simulation.Seed
	if runSeed == 0 {
		runSeed = uint64(time.Now().UnixNano())
	}
	rng := rand.New(rand.NewPCG(runSeed, runSeed))

	slog.Info("luxesim starting",
		"config", *configPath,
		"scenario", scenarioName,
		"days", cfg.Simulation.Days,
		"seed", runSeed,
	)

	store, err := storage.NewCSVStore(cfg.Data.RawDir, cfg.Data.ProcessedDir)
	if err != nil {
		slog.Error("failed to open data dirs", "err", err)
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	notifier := notify.NewConsole(*table)

	if *genesis {
		if err := runGenesis(store, rng, cfg.Simulation.Clients); err != nil {
			slog.Error("genesis failed", "err", err)
			os.Exit(1)
		}
		return
	}

	archive, err := storage.NewSQLiteArchive(cfg.Storage.DSN)
	if err != nil {
		slog.Error("failed to open archive", "err", err, "dsn", cfg.Storage.DSN)
		os.Exit(1)
	}
	defer archive.Close()

	if *report {
		if err := runReport(ctx, archive, notifier); err != nil {
			slog.Error("report failed", "err", err)
			os.Exit(1)
		}
		return
	}

	if *scrape {
		if err := runScrape(ctx, cfg.Market.SearchBase, rng, archive, notifier); err != nil {
			slog.Error("scrape failed", "err", err)
			os.Exit(1)
		}
		return
	}

	if err := runSimulation(ctx, cfg, rng, runSeed, scenarioName, store, archive, notifier); err != nil {
		slog.Error("simulation exited with error", "err", err)
		os.Exit(1)
	}

	slog.Info("luxesim stopped cleanly")
}

// runSimulation generates the macro series, runs the engine day loop and
// archives the run summary.
func runSimulation(ctx context.Context, cfg *config.Config, rng *rand.Rand, runSeed uint64,
	scenario string, store *storage.CSVStore, archive *storage.SQLiteArchive, notifier *notify.Console) error {

	sim := cfg.Simulation
	startedAt := time.Now().UTC()

	macro := domain.GenerateMacroContext(rng, sim.Days, sim.TrendBias, sim.HypeBias)
	if err := store.SaveMacro(macro); err != nil {
		return err
	}

	engCfg := engine.Config{
		Days:              sim.Days,
		TrafficMean:       sim.TrafficMean,
		TrafficStd:        sim.TrafficStd,
		AcceptThreshold:   sim.AcceptThreshold,
		ActiveBudgetFloor: sim.ActiveBudgetFloor,
		ReturnRate:        sim.ReturnRate,
		COGSRate:          sim.COGSRate,
		RestockMin:        sim.RestockMin,
		RestockMax:        sim.RestockMax,
		InitialRestock:    sim.InitialRestock,
		RefundOnReturn:    sim.RefundOnReturn,
		Tier1Brands:       sim.Tier1Brands,
	}

	eng, err := engine.New(engCfg, store, rng)
	if err != nil {
		return err
	}

	sales, err := eng.Run(ctx, macro)
	if err != nil {
		return err
	}

	run := eng.Summary()
	run.RunID = uuid.NewString()
	run.StartedAt = startedAt
	run.Seed = runSeed
	run.Scenario = scenario

	brands := domain.BrandBreakdown(sales)
	if err := archive.SaveRun(ctx, run, brands); err != nil {
		slog.Warn("could not archive run", "err", err)
	}

	metrics := eng.Metrics()
	tail := metrics
	if len(tail) > 7 {
		tail = tail[len(tail)-7:]
	}
	notifier.RunReport(run, brands, tail)
	return nil
}

func setupLogger(cfg config.LogConfig) {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	slog.SetDefault(slog.New(handler))
}
