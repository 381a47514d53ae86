// Package market implements competitor price discovery against public
// second-hand marketplaces. It scrapes the DuckDuckGo HTML endpoint,
// which tolerates plain HTTP clients better than the big search engines.
package market

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

const (
	defaultSearchBase = "https://html.duckduckgo.com/html/"

	// One query every 2s keeps us well under anything a public endpoint
	// would care about.
	queriesPerSec = 0.5

	// Anything below this is an accessory or a keychain, not a bag.
	minPlausiblePrice = 500.0

	// Average over the first few hits only; deeper results drift
	// off-topic quickly.
	maxQuotesPerQuery = 3
)

// priceRe matches "$12,500" / "€ 7,450" style amounts in result text.
var priceRe = regexp.MustCompile(`[$€]\s?([0-9]{1,3}(?:,[0-9]{3})*)`)

var userAgents = []string{
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/14.0 Safari/605.1.15",
	"Mozilla/5.0 (X11; Linux x86_64) Gecko/20100101 Firefox/89.0",
}

// PriceMonitor implements ports.PriceSource by scraping search results.
type PriceMonitor struct {
	http    *http.Client
	base    string
	limiter *rate.Limiter
	rng     *rand.Rand
}

// NewPriceMonitor creates a monitor against the production search endpoint.
// An empty base falls back to the default.
func NewPriceMonitor(base string, rng *rand.Rand) *PriceMonitor {
	if base == "" {
		base = defaultSearchBase
	}
	return &PriceMonitor{
		http:    &http.Client{Timeout: 5 * time.Second},
		base:    base,
		limiter: rate.NewLimiter(queriesPerSec, 1),
		rng:     rng,
	}
}

// CompetitorPrice searches the given brand/model and returns the mean of the
// first few plausible asking prices found. A run with no usable hits returns
// (0, nil); callers treat zero as "no market signal", not an error.
func (m *PriceMonitor) CompetitorPrice(ctx context.Context, brand, model string) (float64, error) {
	if err := m.limiter.Wait(ctx); err != nil {
		return 0, fmt.Errorf("market.CompetitorPrice: rate limiter: %w", err)
	}

	query := brand + " " + model + " bag price"
	u := m.base + "?q=" + url.QueryEscape(query)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return 0, fmt.Errorf("market.CompetitorPrice: build request: %w", err)
	}
	req.Header.Set("User-Agent", userAgents[m.rng.IntN(len(userAgents))])

	resp, err := m.http.Do(req)
	if err != nil {
		return 0, fmt.Errorf("market.CompetitorPrice: %q: %w", query, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		slog.Warn("market: search returned non-200", "status", resp.StatusCode, "query", query)
		return 0, nil
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return 0, fmt.Errorf("market.CompetitorPrice: read body: %w", err)
	}

	price := extractMeanPrice(string(body))
	if price == 0 {
		slog.Debug("market: no plausible prices in results", "query", query)
	}
	return price, nil
}

// extractMeanPrice pulls dollar/euro amounts out of raw result HTML and
// averages the first few above the accessory floor.
func extractMeanPrice(text string) float64 {
	var prices []float64
	for _, match := range priceRe.FindAllStringSubmatch(text, -1) {
		v, err := strconv.ParseFloat(strings.ReplaceAll(match[1], ",", ""), 64)
		if err != nil || v <= minPlausiblePrice {
			continue
		}
		prices = append(prices, v)
		if len(prices) == maxQuotesPerQuery {
			break
		}
	}
	if len(prices) == 0 {
		return 0
	}

	var sum float64
	for _, v := range prices {
		sum += v
	}
	// Two decimals, these are money quotes.
	return float64(int(sum/float64(len(prices))*100+0.5)) / 100
}
