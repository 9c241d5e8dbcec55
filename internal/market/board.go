package market

import (
	"context"
	"sync"

	"github.com/shopspring/decimal"

	"jainvest/internal/store"
)

// PriceLookup returns a current price for a symbol. It must always answer.
type PriceLookup interface {
	Price(symbol string) decimal.Decimal
}

// PriceFunc adapts a function to PriceLookup.
type PriceFunc func(symbol string) decimal.Decimal

// Price calls f.
func (f PriceFunc) Price(symbol string) decimal.Decimal { return f(symbol) }

// Board keeps the latest pushed quote per symbol. Pushed quotes survive
// restarts through the store.
type Board struct {
	mu     sync.RWMutex
	quotes map[string]PriceResult

	store  store.Store
	locks  *store.KeyLock
	pseudo *PseudoProvider
}

// NewBoard creates an empty board backed by st.
func NewBoard(st store.Store, pseudo *PseudoProvider) *Board {
	return &Board{
		quotes: make(map[string]PriceResult),
		store:  st,
		locks:  store.NewKeyLock(),
		pseudo: pseudo,
	}
}

// Load restores previously pushed quotes.
func (b *Board) Load(ctx context.Context) error {
	quotes, err := store.Load(ctx, b.store, store.MarketQuotesKey, func() map[string]PriceResult {
		return map[string]PriceResult{}
	})
	if err != nil {
		return err
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	for k, v := range quotes {
		b.quotes[k] = v
	}
	return nil
}

// Push records quotes, keeping only the newest per symbol, and returns how
// many were applied.
func (b *Board) Push(ctx context.Context, results []PriceResult) (int, error) {
	applied := 0
	merged, err := store.Update(ctx, b.store, b.locks, store.MarketQuotesKey,
		func() map[string]PriceResult { return map[string]PriceResult{} },
		func(m *map[string]PriceResult) error {
			for _, r := range results {
				if prev, ok := (*m)[r.Symbol]; ok && prev.RecordedAt.After(r.RecordedAt) {
					continue
				}
				(*m)[r.Symbol] = r
				applied++
			}
			return nil
		})
	if err != nil {
		return 0, err
	}

	b.mu.Lock()
	b.quotes = merged
	b.mu.Unlock()
	return applied, nil
}

func (b *Board) pushed(symbol string) (decimal.Decimal, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	q, ok := b.quotes[symbol]
	return q.Price, ok
}

// Quote prices a trade: the latest pushed quote, else the overview's last
// price, else a pseudo-price.
func (b *Board) Quote(symbol string) decimal.Decimal {
	if p, ok := b.pushed(symbol); ok {
		return p
	}
	if last, ok := listedPrice(symbol); ok {
		return decimal.NewFromFloat(last)
	}
	return b.pseudo.Quote(symbol)
}

// Marks returns the lookup used to revalue positions: the latest pushed
// quote, else a fresh pseudo-price.
func (b *Board) Marks() PriceLookup {
	return PriceFunc(func(symbol string) decimal.Decimal {
		if p, ok := b.pushed(symbol); ok {
			return p
		}
		return b.pseudo.Quote(symbol)
	})
}
