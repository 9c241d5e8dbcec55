package backtest

import (
	"reflect"
	"testing"
	"time"

	"jainvest/internal/testutil"
)

var fixedNow = func() time.Time { return time.Date(2024, 6, 30, 15, 0, 0, 0, time.UTC) }

// constRand always returns the same draw.
type constRand float64

func (c constRand) Float64() float64 { return float64(c) }

func TestRunValidation(t *testing.T) {
	tests := []struct {
		name string
		req  Request
	}{
		{"missing symbol", Request{StartDate: "2024-01-01", EndDate: "2024-02-01"}},
		{"missing start", Request{Symbol: "TCS", EndDate: "2024-02-01"}},
		{"bad date", Request{Symbol: "TCS", StartDate: "01/01/2024", EndDate: "2024-02-01"}},
		{"equal dates", Request{Symbol: "TCS", StartDate: "2024-02-01", EndDate: "2024-02-01"}},
		{"inverted", Request{Symbol: "TCS", StartDate: "2024-03-01", EndDate: "2024-02-01"}},
		{"future end", Request{Symbol: "TCS", StartDate: "2024-06-01", EndDate: "2024-07-01"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Run(tt.req, NewSeeded(1), fixedNow)
			testutil.AssertAppError(t, err, "INVALID_RANGE")
			if res != nil {
				t.Error("expected no partial result")
			}
		})
	}

	t.Run("end today is allowed", func(t *testing.T) {
		_, err := Run(Request{Symbol: "TCS", StartDate: "2024-06-01", EndDate: "2024-06-30"}, NewSeeded(1), fixedNow)
		testutil.AssertNoError(t, err)
	})
}

func TestRunReproducible(t *testing.T) {
	req := Request{Symbol: "INFY", StartDate: "2023-01-01", EndDate: "2023-12-31"}

	a, err := Run(req, NewSeeded(42), fixedNow)
	testutil.AssertNoError(t, err)
	b, err := Run(req, NewSeeded(42), fixedNow)
	testutil.AssertNoError(t, err)

	if !reflect.DeepEqual(a, b) {
		t.Error("same seed should produce identical results")
	}
	if len(a.EquityCurve) != 365 {
		t.Errorf("expected 365 curve points, got %d", len(a.EquityCurve))
	}
	if a.EquityCurve[0].Date != "2023-01-01" || a.EquityCurve[364].Date != "2023-12-31" {
		t.Errorf("unexpected curve bounds %s..%s", a.EquityCurve[0].Date, a.EquityCurve[364].Date)
	}
	if a.Stats.TotalTrades != len(a.Transactions) {
		t.Errorf("trade count %d does not match log length %d", a.Stats.TotalTrades, len(a.Transactions))
	}
}

func TestRunGates(t *testing.T) {
	req := Request{Symbol: "TCS", StartDate: "2024-01-01", EndDate: "2024-01-03"}

	t.Run("never trades when gates stay shut", func(t *testing.T) {
		res, err := Run(req, constRand(0.5), fixedNow)
		testutil.AssertNoError(t, err)
		if len(res.Transactions) != 0 {
			t.Fatalf("expected no trades, got %d", len(res.Transactions))
		}
		if res.Stats.WinRate != 0 {
			t.Errorf("win rate should be 0 without sells, got %v", res.Stats.WinRate)
		}
		if res.Stats.FinalCapital != 100000 || res.Stats.TotalReturn != 0 {
			t.Errorf("expected untouched capital, got %+v", res.Stats)
		}
		// 100000 vs the 120000 reference.
		if res.Stats.MaxDrawdown != 16.67 {
			t.Errorf("expected drawdown 16.67, got %v", res.Stats.MaxDrawdown)
		}
	})

	t.Run("buys then sells half when gates are open", func(t *testing.T) {
		res, err := Run(req, constRand(0.9), fixedNow)
		testutil.AssertNoError(t, err)
		if len(res.Transactions) < 2 {
			t.Fatalf("expected at least a buy and a sell, got %+v", res.Transactions)
		}
		buy, sell := res.Transactions[0], res.Transactions[1]
		if buy.Type != "BUY" || sell.Type != "SELL" {
			t.Fatalf("unexpected trade order %s, %s", buy.Type, sell.Type)
		}
		if sell.Shares != buy.Shares/2 {
			t.Errorf("expected sell of %d shares, got %d", buy.Shares/2, sell.Shares)
		}
		if sell.Date == buy.Date {
			t.Error("a position opened today cannot be sold the same day")
		}
		if res.Stats.WinRate != 76 {
			t.Errorf("expected win rate 0.9*40+40=76, got %v", res.Stats.WinRate)
		}
	})
}
