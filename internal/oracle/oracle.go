// Package oracle fetches quotes from a market provider and pushes them to
// the API's pipeline endpoint.
package oracle

import (
	"context"
	"errors"
	"time"

	"jainvest/internal/logger"
	"jainvest/internal/market"
)

// PricePusher is the API operation the oracle needs.
type PricePusher interface {
	PushPrices(ctx context.Context, prices []market.PriceResult) (int, error)
}

// RunResult contains the outcome of an oracle run.
type RunResult struct {
	PricesFetched  int
	PricesRecorded int
	Errors         []market.FetchError
	Duration       time.Duration
}

// Oracle pulls prices from one provider and records them through the API.
type Oracle struct {
	pusher   PricePusher
	provider market.Provider
	symbols  []string
}

// New creates an Oracle quoting symbols.
func New(pusher PricePusher, provider market.Provider, symbols []string) *Oracle {
	normalized := make([]string, 0, len(symbols))
	for _, s := range symbols {
		if s = market.NormalizeSymbol(s); s != "" {
			normalized = append(normalized, s)
		}
	}
	return &Oracle{pusher: pusher, provider: provider, symbols: normalized}
}

// Run executes a single cycle: fetch prices, then push whatever was fetched.
// Per-symbol fetch failures are reported in the result, not as an error.
func (o *Oracle) Run(ctx context.Context) (*RunResult, error) {
	start := time.Now()
	result := &RunResult{}
	log := logger.Named("oracle")

	if len(o.symbols) == 0 {
		return nil, errors.New("no symbols to quote")
	}

	prices, fetchErrs := o.provider.FetchPrices(ctx, o.symbols)
	result.PricesFetched = len(prices)
	result.Errors = fetchErrs
	log.Infow("prices fetched", "provider", o.provider.Name(), "fetched", len(prices), "failed", len(fetchErrs))

	if len(prices) > 0 {
		n, err := o.pusher.PushPrices(ctx, prices)
		if err != nil {
			return nil, err
		}
		result.PricesRecorded = n
	}

	result.Duration = time.Since(start)
	return result, nil
}
