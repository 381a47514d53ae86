package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config is the full simulator configuration.
type Config struct {
	Simulation SimulationConfig `yaml:"simulation"`
	Data       DataConfig       `yaml:"data"`
	Market     MarketConfig     `yaml:"market"`
	Storage    StorageConfig    `yaml:"storage"`
	Log        LogConfig        `yaml:"log"`
}

// SimulationConfig controls the engine and macro generator.
type SimulationConfig struct {
	Days              int      `yaml:"days"`
	Seed              uint64   `yaml:"seed"` // 0 means derive from wall clock
	Clients           int      `yaml:"clients"`
	TrafficMean       float64  `yaml:"traffic_mean"`
	TrafficStd        float64  `yaml:"traffic_std"`
	TrendBias         float64  `yaml:"trend_bias"`
	HypeBias          float64  `yaml:"hype_bias"`
	AcceptThreshold   float64  `yaml:"accept_threshold"`
	ActiveBudgetFloor float64  `yaml:"active_budget_floor"`
	ReturnRate        float64  `yaml:"return_rate"`
	COGSRate          float64  `yaml:"cogs_rate"`
	RestockMin        int      `yaml:"restock_min"`
	RestockMax        int      `yaml:"restock_max"`
	InitialRestock    int      `yaml:"initial_restock"`
	RefundOnReturn    bool     `yaml:"refund_on_return"`
	Tier1Brands       []string `yaml:"tier_1_brands"`
}

// DataConfig controls where the flat files live.
type DataConfig struct {
	RawDir       string `yaml:"raw_dir"`
	ProcessedDir string `yaml:"processed_dir"`
}

// MarketConfig controls the competitor price monitor.
type MarketConfig struct {
	SearchBase string `yaml:"search_base"` // empty uses the default endpoint
}

// StorageConfig controls where the run archive is persisted.
type StorageConfig struct {
	DSN string `yaml:"dsn"` // SQLite file path, or ":memory:"
}

// LogConfig controls logging format and level.
type LogConfig struct {
	Level  string `yaml:"level"`  // debug | info | warn | error
	Format string `yaml:"format"` // text | json
}

// Load reads the YAML config file, then the .env file if present.
// Environment variables override the YAML values for matching keys.
func Load(path string) (*Config, error) {
	// Load .env if present (silently skip when absent)
	_ = godotenv.Load()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config.Load: read %q: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config.Load: parse YAML: %w", err)
	}

	applyEnvOverrides(&cfg)
	setDefaults(&cfg)

	return &cfg, nil
}

// ApplyScenario overlays a named macro preset on the simulation block. The
// empty name is a no-op so the YAML biases stay in charge when no scenario
// is requested. Unknown names are an error so a typo does not silently run
// the baseline.
func (c *Config) ApplyScenario(name string) error {
	switch name {
	case "":
	case "baseline":
		c.Simulation.TrendBias = 1.0
		c.Simulation.HypeBias = 1.0
	case "crisis":
		c.Simulation.TrendBias = 0.85
		c.Simulation.HypeBias = 0.9
	case "boom":
		c.Simulation.TrendBias = 1.15
		c.Simulation.HypeBias = 1.3
	default:
		return fmt.Errorf("config.ApplyScenario: unknown scenario %q", name)
	}
	return nil
}

// applyEnvOverrides overrides values with environment variables where set.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		cfg.Log.Format = v
	}
	if v := os.Getenv("LUXESIM_SEED"); v != "" {
		if seed, err := strconv.ParseUint(v, 10, 64); err == nil {
			cfg.Simulation.Seed = seed
		}
	}
	if v := os.Getenv("LUXESIM_DSN"); v != "" {
		cfg.Storage.DSN = v
	}
}

// setDefaults fills required values that the YAML left unset.
func setDefaults(cfg *Config) {
	s := &cfg.Simulation
	if s.Days <= 0 {
		s.Days = 365
	}
	if s.Clients <= 0 {
		s.Clients = 500
	}
	if s.TrafficMean <= 0 {
		s.TrafficMean = 90
	}
	if s.TrafficStd <= 0 {
		s.TrafficStd = 4
	}
	if s.TrendBias <= 0 {
		s.TrendBias = 1.0
	}
	if s.HypeBias <= 0 {
		s.HypeBias = 1.0
	}
	if s.AcceptThreshold <= 0 {
		s.AcceptThreshold = 52
	}
	if s.ActiveBudgetFloor <= 0 {
		s.ActiveBudgetFloor = 800
	}
	if s.ReturnRate <= 0 {
		s.ReturnRate = 0.06
	}
	if s.COGSRate <= 0 {
		s.COGSRate = 0.55
	}
	if s.RestockMin <= 0 {
		s.RestockMin = 8
	}
	if s.RestockMax <= 0 {
		s.RestockMax = 18
	}
	if s.InitialRestock <= 0 {
		s.InitialRestock = 350
	}
	if len(s.Tier1Brands) == 0 {
		s.Tier1Brands = []string{"Hermès", "Chanel", "Dior"}
	}
	if cfg.Data.RawDir == "" {
		cfg.Data.RawDir = "data/raw"
	}
	if cfg.Data.ProcessedDir == "" {
		cfg.Data.ProcessedDir = "data/processed"
	}
	if cfg.Storage.DSN == "" {
		cfg.Storage.DSN = "luxesim.db"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "text"
	}
}
