package storage

// csv.go — flat-file state store.
//
// The external contract of the simulator is delimited text with a header
// row: raw seed tables in the raw dir, derived state in the processed dir.
// Writes go through a temp file + rename so a crash never leaves a half
// written table; there is no further transactional guarantee, matching the
// ad hoc append/resume model of the rest of the pipeline.

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/avelaine/luxesim/internal/domain"
)

const dateLayout = "2006-01-02"

// File names under the configured directories.
const (
	catalogFile   = "luxury_handbags.csv"
	clientSeed    = "clients.csv"
	censusFile    = "ine_census.csv"
	inventoryFile = "inventory_state.csv"
	clientsState  = "clients_state.csv"
	metricsFile   = "daily_metrics.csv"
	salesFile     = "sales_history.csv"
	macroFile     = "macro_indicators.csv"
)

// CSVStore implements ports.StateStore over two directories: raw inputs and
// processed/derived outputs.
type CSVStore struct {
	rawDir       string
	processedDir string
}

// NewCSVStore creates both directories if needed.
func NewCSVStore(rawDir, processedDir string) (*CSVStore, error) {
	for _, dir := range []string{rawDir, processedDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("storage.NewCSVStore: mkdir %q: %w", dir, err)
		}
	}
	return &CSVStore{rawDir: rawDir, processedDir: processedDir}, nil
}

// LoadCatalog reads the raw product-template table. A missing catalog is
// fatal: the simulator cannot restock without it.
func (s *CSVStore) LoadCatalog() ([]domain.CatalogTemplate, error) {
	rows, err := readAll(filepath.Join(s.rawDir, catalogFile))
	if err != nil {
		return nil, fmt.Errorf("storage.LoadCatalog: %w", err)
	}

	templates := make([]domain.CatalogTemplate, 0, len(rows))
	for _, r := range rows {
		if len(r) < 6 {
			continue
		}
		templates = append(templates, domain.CatalogTemplate{
			ID:       r[0],
			Brand:    r[1],
			Name:     r[2],
			Category: r[3],
			Material: r[4],
			RawPrice: r[5],
		})
	}
	return templates, nil
}

// LoadClients prefers persisted client state over the seed table. The bool
// reports whether persisted state was found, which decides whether the
// ledger stratifies fresh wallets.
func (s *CSVStore) LoadClients() ([]domain.Client, bool, error) {
	statePath := filepath.Join(s.processedDir, clientsState)
	if _, err := os.Stat(statePath); err == nil {
		clients, err := s.readClients(statePath, true)
		if err != nil {
			return nil, false, err
		}
		return clients, true, nil
	}

	clients, err := s.readClients(filepath.Join(s.rawDir, clientSeed), false)
	if err != nil {
		return nil, false, err
	}
	return clients, false, nil
}

func (s *CSVStore) readClients(path string, withBudgets bool) ([]domain.Client, error) {
	rows, err := readAll(path)
	if err != nil {
		return nil, fmt.Errorf("storage.LoadClients: %w", err)
	}

	clients := make([]domain.Client, 0, len(rows))
	for i, r := range rows {
		want := 4
		if withBudgets {
			want = 7
		}
		if len(r) < want {
			return nil, fmt.Errorf("storage.LoadClients: %s row %d: want %d columns, got %d", path, i+2, want, len(r))
		}

		c := domain.Client{
			ClientID:      r[0],
			BrandAffinity: r[1],
			City:          r[2],
			Tier:          r[3],
		}
		if withBudgets {
			if c.FashionWallet, err = strconv.ParseFloat(r[4], 64); err != nil {
				return nil, fmt.Errorf("storage.LoadClients: %s row %d: fashion_wallet: %w", path, i+2, err)
			}
			if c.CurrentBudget, err = strconv.ParseFloat(r[5], 64); err != nil {
				return nil, fmt.Errorf("storage.LoadClients: %s row %d: current_budget: %w", path, i+2, err)
			}
			if c.PurchasesCount, err = strconv.Atoi(r[6]); err != nil {
				return nil, fmt.Errorf("storage.LoadClients: %s row %d: purchases_count: %w", path, i+2, err)
			}
		}
		clients = append(clients, c)
	}
	return clients, nil
}

// LoadInventory returns the persisted stock book, or nothing when the state
// file does not exist yet (first run).
func (s *CSVStore) LoadInventory() ([]domain.InventoryItem, error) {
	path := filepath.Join(s.processedDir, inventoryFile)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, nil
	}

	rows, err := readAll(path)
	if err != nil {
		return nil, fmt.Errorf("storage.LoadInventory: %w", err)
	}

	items := make([]domain.InventoryItem, 0, len(rows))
	for i, r := range rows {
		if len(r) < 10 {
			return nil, fmt.Errorf("storage.LoadInventory: row %d: want 10 columns, got %d", i+2, len(r))
		}

		item := domain.InventoryItem{
			SerialID: r[0],
			Brand:    r[1],
			Name:     r[2],
			Category: r[3],
			Material: r[4],
			Status:   domain.ItemStatus(r[7]),
		}
		if item.CurrentPrice, err = strconv.ParseFloat(r[5], 64); err != nil {
			return nil, fmt.Errorf("storage.LoadInventory: row %d: current_price: %w", i+2, err)
		}
		if item.COGS, err = strconv.ParseFloat(r[6], 64); err != nil {
			return nil, fmt.Errorf("storage.LoadInventory: row %d: cogs: %w", i+2, err)
		}
		if item.DateAdded, err = time.Parse(dateLayout, r[8]); err != nil {
			return nil, fmt.Errorf("storage.LoadInventory: row %d: date_added: %w", i+2, err)
		}
		if item.DaysOnMarket, err = strconv.Atoi(r[9]); err != nil {
			return nil, fmt.Errorf("storage.LoadInventory: row %d: days_on_market: %w", i+2, err)
		}
		items = append(items, item)
	}
	return items, nil
}

// SaveState overwrites the three derived state tables.
func (s *CSVStore) SaveState(inventory []domain.InventoryItem, clients []domain.Client, metrics []domain.DailyMetric) error {
	invRows := make([][]string, 0, len(inventory))
	for _, it := range inventory {
		invRows = append(invRows, []string{
			it.SerialID, it.Brand, it.Name, it.Category, it.Material,
			ftoa(it.CurrentPrice), ftoa(it.COGS), string(it.Status),
			it.DateAdded.Format(dateLayout), strconv.Itoa(it.DaysOnMarket),
		})
	}
	header := []string{"serial_id", "brand", "name", "category", "material", "current_price", "cogs", "status", "date_added", "days_on_market"}
	if err := writeAll(filepath.Join(s.processedDir, inventoryFile), header, invRows); err != nil {
		return fmt.Errorf("storage.SaveState: inventory: %w", err)
	}

	clientRows := make([][]string, 0, len(clients))
	for _, c := range clients {
		clientRows = append(clientRows, []string{
			c.ClientID, c.BrandAffinity, c.City, c.Tier,
			ftoa(c.FashionWallet), ftoa(c.CurrentBudget), strconv.Itoa(c.PurchasesCount),
		})
	}
	header = []string{"client_id", "brand_affinity", "city", "tier", "fashion_wallet", "current_budget", "purchases_count"}
	if err := writeAll(filepath.Join(s.processedDir, clientsState), header, clientRows); err != nil {
		return fmt.Errorf("storage.SaveState: clients: %w", err)
	}

	metricRows := make([][]string, 0, len(metrics))
	for _, m := range metrics {
		metricRows = append(metricRows, []string{
			m.Date.Format(dateLayout), ftoa(m.Revenue), strconv.Itoa(m.Traffic),
		})
	}
	header = []string{"date", "revenue", "traffic"}
	if err := writeAll(filepath.Join(s.processedDir, metricsFile), header, metricRows); err != nil {
		return fmt.Errorf("storage.SaveState: metrics: %w", err)
	}
	return nil
}

// SaveSales rewrites the sales history for the run.
func (s *CSVStore) SaveSales(sales []domain.SaleRecord) error {
	rows := make([][]string, 0, len(sales))
	for _, sale := range sales {
		rows = append(rows, []string{
			sale.Date.Format(dateLayout), sale.Brand, ftoa(sale.NetRevenue),
			string(sale.Status), sale.Cluster,
		})
	}
	header := []string{"date", "brand", "net_revenue", "status", "cluster"}
	if err := writeAll(filepath.Join(s.processedDir, salesFile), header, rows); err != nil {
		return fmt.Errorf("storage.SaveSales: %w", err)
	}
	return nil
}

// SaveMacro persists the macro series for downstream tooling.
func (s *CSVStore) SaveMacro(series []domain.MacroDay) error {
	rows := make([][]string, 0, len(series))
	for _, d := range series {
		rows = append(rows, []string{
			d.Date.Format(dateLayout), ftoa(d.EconomicIndex), ftoa(d.LuxuryHype),
		})
	}
	header := []string{"date", "economic_index", "luxury_hype"}
	if err := writeAll(filepath.Join(s.processedDir, macroFile), header, rows); err != nil {
		return fmt.Errorf("storage.SaveMacro: %w", err)
	}
	return nil
}

// SaveCatalog writes the raw product catalog produced by genesis.
func (s *CSVStore) SaveCatalog(templates []domain.CatalogTemplate) error {
	rows := make([][]string, 0, len(templates))
	for _, t := range templates {
		rows = append(rows, []string{t.ID, t.Brand, t.Name, t.Category, t.Material, t.RawPrice})
	}
	header := []string{"id", "brand", "name", "category", "material", "price"}
	if err := writeAll(filepath.Join(s.rawDir, catalogFile), header, rows); err != nil {
		return fmt.Errorf("storage.SaveCatalog: %w", err)
	}
	return nil
}

// SaveClientSeed writes the raw client table produced by genesis.
func (s *CSVStore) SaveClientSeed(clients []domain.Client) error {
	rows := make([][]string, 0, len(clients))
	for _, c := range clients {
		rows = append(rows, []string{c.ClientID, c.BrandAffinity, c.City, c.Tier})
	}
	header := []string{"client_id", "brand_affinity", "city", "tier"}
	if err := writeAll(filepath.Join(s.rawDir, clientSeed), header, rows); err != nil {
		return fmt.Errorf("storage.SaveClientSeed: %w", err)
	}
	return nil
}

// SaveCensus writes the synthetic wealth census.
func (s *CSVStore) SaveCensus(households []domain.CensusHousehold) error {
	rows := make([][]string, 0, len(households))
	for _, h := range households {
		rows = append(rows, []string{
			h.PostalCode, h.Province, h.City, h.District, h.Profile,
			ftoa(h.GrossIncome), ftoa(h.RealCapacity), ftoa(h.FashionWallet), ftoa(h.Percentile),
		})
	}
	header := []string{"postal_code", "province", "city", "district", "profile", "gross_income", "real_capacity", "fashion_wallet", "percentile"}
	if err := writeAll(filepath.Join(s.rawDir, censusFile), header, rows); err != nil {
		return fmt.Errorf("storage.SaveCensus: %w", err)
	}
	return nil
}

// --- low-level helpers ---

// readAll reads a CSV file and returns its data rows, header stripped.
func readAll(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1 // enforced per table, with row context, by callers
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse %q: %w", path, err)
	}
	if len(rows) <= 1 {
		return nil, nil
	}
	return rows[1:], nil
}

// writeAll writes header + rows through a temp file and renames it over the
// target, so readers never see a partial table.
func writeAll(path string, header []string, rows [][]string) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".tmp-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	w := csv.NewWriter(tmp)
	if err := w.Write(header); err != nil {
		tmp.Close()
		return err
	}
	if err := w.WriteAll(rows); err != nil {
		tmp.Close()
		return err
	}
	w.Flush()
	if err := w.Error(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

// ftoa formats a float with full precision so the round trip is lossless.
func ftoa(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
