// Package quotes fetches last-close prices for investment positions
// from an external market data provider.
//
// The provider is optional. Without QUOTES_URL, or when single symbols
// cannot be fetched, their price is reported as zero so that valuations
// degrade instead of failing.
package quotes

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// maxConcurrent caps the parallel requests against the provider.
const maxConcurrent = 4

type Client struct {
	baseURL string
	client  *http.Client
}

// NewClient returns a client for the provider configured in the
// QUOTES_URL environment variable. With an empty URL, all lookups
// return a zero price.
func NewClient() *Client {
	return &Client{
		baseURL: os.Getenv("QUOTES_URL"),
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

type quoteResponse struct {
	Symbol string          `json:"symbol"`
	Close  decimal.Decimal `json:"close"`
}

// LastClose returns the last closing price for the symbol.
func (c *Client) LastClose(ctx context.Context, symbol string) (decimal.Decimal, error) {
	if c.baseURL == "" {
		return decimal.Zero, nil
	}

	u := fmt.Sprintf("%s/quote?symbol=%s", c.baseURL, url.QueryEscape(symbol))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return decimal.Zero, err
	}

	res, err := c.client.Do(req)
	if err != nil {
		return decimal.Zero, err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return decimal.Zero, fmt.Errorf("quote request for %s returned status %d", symbol, res.StatusCode)
	}

	var quote quoteResponse
	err = json.NewDecoder(res.Body).Decode(&quote)
	if err != nil {
		return decimal.Zero, err
	}

	return quote.Close, nil
}

// LastCloses fetches the last closing prices for all symbols
// concurrently. Symbols that cannot be fetched are reported with a
// zero price, a failing provider never fails the valuation.
func (c *Client) LastCloses(ctx context.Context, symbols []string) map[string]decimal.Decimal {
	prices := make(map[string]decimal.Decimal, len(symbols))

	// Deduplicate, positions can share a symbol
	unique := make([]string, 0, len(symbols))
	for _, symbol := range symbols {
		if _, ok := prices[symbol]; ok {
			continue
		}
		prices[symbol] = decimal.Zero
		unique = append(unique, symbol)
	}

	var mu sync.Mutex
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrent)

	for _, symbol := range unique {
		g.Go(func() error {
			price, err := c.LastClose(ctx, symbol)
			if err != nil {
				log.Warn().Err(err).Str("symbol", symbol).Msg("could not fetch quote")
				return nil
			}

			mu.Lock()
			prices[symbol] = price
			mu.Unlock()
			return nil
		})
	}

	// The workers only return nil errors
	_ = g.Wait()

	return prices
}
