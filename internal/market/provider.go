// Package market provides the market snapshot, synthetic price history, and
// the quote board the ledger marks positions against.
package market

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/shopspring/decimal"
)

// Rand is the random source for synthetic prices. *rand.Rand satisfies it.
type Rand interface {
	Float64() float64
}

// PriceResult is a successfully fetched quote for one symbol.
type PriceResult struct {
	Symbol     string          `json:"symbol"`
	Price      decimal.Decimal `json:"price"`
	RecordedAt time.Time       `json:"recorded_at"`
}

// FetchError represents a failed price fetch for a specific symbol.
type FetchError struct {
	Symbol string
	Err    error
}

// Error implements the error interface.
func (e *FetchError) Error() string {
	return fmt.Sprintf("failed to fetch price for %s: %v", e.Symbol, e.Err)
}

// Provider fetches current prices for a set of symbols.
type Provider interface {
	// Name returns the provider's display name.
	Name() string

	// FetchPrices returns as many prices as possible, plus per-symbol errors.
	FetchPrices(ctx context.Context, symbols []string) ([]PriceResult, []FetchError)
}

// PseudoProvider quotes every symbol with a deterministic base derived from
// its first character plus a ±100 random jitter. It never fails.
type PseudoProvider struct {
	mu  sync.Mutex
	rng Rand
	now func() time.Time
}

// NewPseudoProvider creates a PseudoProvider drawing from rng.
func NewPseudoProvider(rng Rand) *PseudoProvider {
	return &PseudoProvider{rng: rng, now: time.Now}
}

// Name returns the provider's display name.
func (p *PseudoProvider) Name() string { return "Simulated" }

// Quote returns the pseudo-price for one symbol.
func (p *PseudoProvider) Quote(symbol string) decimal.Decimal {
	p.mu.Lock()
	u := p.rng.Float64()
	p.mu.Unlock()
	return PseudoPrice(symbol, u)
}

// FetchPrices quotes every symbol.
func (p *PseudoProvider) FetchPrices(_ context.Context, symbols []string) ([]PriceResult, []FetchError) {
	results := make([]PriceResult, 0, len(symbols))
	now := p.now().UTC()
	for _, s := range symbols {
		results = append(results, PriceResult{Symbol: s, Price: p.Quote(s), RecordedAt: now})
	}
	return results, nil
}

// PseudoPrice computes 1000 + 10×code(first char) + (u−0.5)×200, rounded to
// two places. An empty symbol uses a zero code.
func PseudoPrice(symbol string, u float64) decimal.Decimal {
	var code float64
	if symbol != "" {
		code = float64([]rune(symbol)[0])
	}
	v := 1000 + code*10 + (u-0.5)*200
	return decimal.NewFromFloat(math.Round(v*100) / 100).Round(2)
}
