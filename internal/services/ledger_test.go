package services

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"pgregory.net/rapid"

	"jainvest/internal/models"
)

var symbols = []string{"TCS", "INFY", "WIPRO", "RELIANCE"}

// cost basis plus cash never changes across trades at the position's own
// average price, and cash never goes negative.
func TestLedgerProperties(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		p := models.NewPortfolio()
		at := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

		steps := rapid.IntRange(1, 40).Draw(t, "steps")
		for i := 0; i < steps; i++ {
			symbol := rapid.SampledFrom(symbols).Draw(t, "symbol")
			qty := rapid.Int64Range(1, 50).Draw(t, "qty")
			price := decimal.NewFromInt(rapid.Int64Range(1, 5000).Draw(t, "price"))
			before := p.Clone()

			var err error
			if rapid.Bool().Draw(t, "buy") {
				err = applyBuy(&p, "id", symbol, qty, price, at)
			} else {
				err = applySell(&p, "id", symbol, qty, price, at)
			}

			if err != nil {
				if len(p.Transactions) != len(before.Transactions) || !p.Cash.Equal(before.Cash) {
					t.Fatalf("rejected trade mutated the portfolio: %v", err)
				}
				continue
			}
			if p.Cash.IsNegative() {
				t.Fatalf("cash went negative: %s", p.Cash)
			}
			checkInvariants(t, p)
		}
	})
}

func checkInvariants(t *rapid.T, p models.Portfolio) {
	seen := map[string]bool{}
	total := p.Cash
	for _, pos := range p.Positions {
		if seen[pos.Symbol] {
			t.Fatalf("duplicate position for %s", pos.Symbol)
		}
		seen[pos.Symbol] = true
		if pos.Quantity <= 0 {
			t.Fatalf("non-positive position %+v", pos)
		}
		total = total.Add(pos.MarketValue())
	}
	if !total.Equal(p.TotalValue) {
		t.Fatalf("total value %s does not match cash plus holdings %s", p.TotalValue, total)
	}
}

func TestApplyBuy_WeightedAverage(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		p := models.NewPortfolio()
		q1 := rapid.Int64Range(1, 20).Draw(t, "q1")
		q2 := rapid.Int64Range(1, 20).Draw(t, "q2")
		p1 := decimal.NewFromInt(rapid.Int64Range(1, 2000).Draw(t, "p1"))
		p2 := decimal.NewFromInt(rapid.Int64Range(1, 2000).Draw(t, "p2"))

		if err := applyBuy(&p, "a", "TCS", q1, p1, time.Time{}); err != nil {
			t.Fatal(err)
		}
		if err := applyBuy(&p, "b", "TCS", q2, p2, time.Time{}); err != nil {
			t.Fatal(err)
		}

		pos := p.Positions[0]
		basis := pos.AveragePrice.Mul(decimal.NewFromInt(pos.Quantity))
		want := p1.Mul(decimal.NewFromInt(q1)).Add(p2.Mul(decimal.NewFromInt(q2)))
		if basis.Sub(want).Abs().GreaterThan(decimal.NewFromFloat(0.01)) {
			t.Fatalf("cost basis %s, want %s", basis, want)
		}
		if !p.Cash.Equal(models.StartingCash.Sub(want)) {
			t.Fatalf("cash %s does not reflect total cost %s", p.Cash, want)
		}
	})
}

func TestApplySell_RoundTripAtSamePrice(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		p := models.NewPortfolio()
		qty := rapid.Int64Range(1, 20).Draw(t, "qty")
		price := decimal.NewFromInt(rapid.Int64Range(1, 5000).Draw(t, "price"))

		if err := applyBuy(&p, "a", "INFY", qty, price, time.Time{}); err != nil {
			t.Fatal(err)
		}
		if err := applySell(&p, "b", "INFY", qty, price, time.Time{}); err != nil {
			t.Fatal(err)
		}
		if !p.Cash.Equal(models.StartingCash) || len(p.Positions) != 0 {
			t.Fatalf("round trip left %s cash and %d positions", p.Cash, len(p.Positions))
		}
	})
}
