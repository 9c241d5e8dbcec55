// Package backtest runs the demo random-walk strategy simulator. It is a
// teaching prop, not a real strategy engine: prices follow a bounded random
// walk and trades fire on random gates. Given the same random source it is
// fully reproducible.
package backtest

import (
	"math"
	"math/rand/v2"
	"strings"
	"time"

	apperrors "jainvest/internal/errors"
)

// DateLayout is the wire format for backtest dates.
const DateLayout = "2006-01-02"

const (
	startingCapital = 100000.0
	drawdownPeak    = 120000.0

	dailyMoveRange = 0.05
	buyGate        = 0.7
	sellGate       = 0.8
	buyFraction    = 0.1
	sellFraction   = 0.5
	minBuyLots     = 10
)

// ErrInvalidRange is returned for missing fields, unparsable dates, an empty
// or inverted range, or an end date in the future.
var ErrInvalidRange = apperrors.ErrInvalidRange

// Rand is the random source the simulator draws from. *rand.Rand satisfies it.
type Rand interface {
	Float64() float64
}

// Clock reports the current time; it bounds the end date.
type Clock func() time.Time

// NewSeeded returns a deterministic Rand for the given seed.
func NewSeeded(seed uint64) Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Request describes one simulation run.
type Request struct {
	Symbol    string         `json:"symbol" binding:"required"`
	StartDate string         `json:"start_date" binding:"required"`
	EndDate   string         `json:"end_date" binding:"required"`
	Rules     map[string]any `json:"rules,omitempty"`

	// Seed pins the random source for a reproducible run. Zero picks one.
	Seed uint64 `json:"seed,omitempty"`
}

// EquityPoint is one day of the equity curve.
type EquityPoint struct {
	Date     string  `json:"date"`
	Value    float64 `json:"value"`
	Drawdown float64 `json:"drawdown"`
}

// Trade is one simulated fill.
type Trade struct {
	Date   string  `json:"date"`
	Type   string  `json:"type"`
	Shares int64   `json:"shares"`
	Price  float64 `json:"price"`
}

// Stats summarises a run.
type Stats struct {
	TotalReturn  float64 `json:"total_return"`
	MaxDrawdown  float64 `json:"max_drawdown"`
	WinRate      float64 `json:"win_rate"`
	TotalTrades  int     `json:"total_trades"`
	FinalCapital float64 `json:"final_capital"`
}

// Result is the full output of a run, echoing the request.
type Result struct {
	Symbol       string         `json:"symbol"`
	StartDate    string         `json:"start_date"`
	EndDate      string         `json:"end_date"`
	Rules        map[string]any `json:"rules,omitempty"`
	Seed         uint64         `json:"seed"`
	EquityCurve  []EquityPoint  `json:"equity_curve"`
	Transactions []Trade        `json:"transactions"`
	Stats        Stats          `json:"stats"`
}

// Validate checks the request against today's date and returns the parsed range.
func Validate(req Request, now time.Time) (start, end time.Time, err error) {
	if strings.TrimSpace(req.Symbol) == "" || req.StartDate == "" || req.EndDate == "" {
		return start, end, apperrors.WithMessage(ErrInvalidRange, "symbol, start_date and end_date are required")
	}
	start, err = time.Parse(DateLayout, req.StartDate)
	if err != nil {
		return start, end, apperrors.WithMessage(ErrInvalidRange, "start_date must be YYYY-MM-DD")
	}
	end, err = time.Parse(DateLayout, req.EndDate)
	if err != nil {
		return start, end, apperrors.WithMessage(ErrInvalidRange, "end_date must be YYYY-MM-DD")
	}
	if !start.Before(end) {
		return start, end, apperrors.WithMessage(ErrInvalidRange, "start_date must be before end_date")
	}
	today, _ := time.Parse(DateLayout, now.UTC().Format(DateLayout))
	if end.After(today) {
		return start, end, apperrors.WithMessage(ErrInvalidRange, "end_date cannot be in the future")
	}
	return start, end, nil
}

// Run validates the request and simulates it. No partial result is returned
// on validation failure.
func Run(req Request, rng Rand, clock Clock) (*Result, error) {
	start, end, err := Validate(req, clock())
	if err != nil {
		return nil, err
	}

	days := int(end.Sub(start).Hours() / 24)
	curve := make([]EquityPoint, 0, days+1)
	trades := []Trade{}

	capital := startingCapital
	var position int64
	price := 1000 + rng.Float64()*500

	for i := 0; i <= days; i++ {
		date := start.AddDate(0, 0, i).Format(DateLayout)

		price *= 1 + (rng.Float64()-0.5)*dailyMoveRange

		// Both gates draw every day so the random stream stays aligned.
		shouldBuy := rng.Float64() > buyGate && position == 0
		shouldSell := rng.Float64() > sellGate && position > 0

		if shouldBuy && capital >= price*minBuyLots {
			shares := int64(math.Floor(capital * buyFraction / price))
			position += shares
			capital -= float64(shares) * price
			trades = append(trades, Trade{Date: date, Type: "BUY", Shares: shares, Price: round2(price)})
		}

		if shouldSell && position > 0 {
			shares := int64(math.Floor(float64(position) * sellFraction))
			position -= shares
			capital += float64(shares) * price
			trades = append(trades, Trade{Date: date, Type: "SELL", Shares: shares, Price: round2(price)})
		}

		value := capital + float64(position)*price
		curve = append(curve, EquityPoint{
			Date:     date,
			Value:    round2(value),
			Drawdown: math.Max(0, (drawdownPeak-value)/drawdownPeak*100),
		})
	}

	finalValue := capital + float64(position)*price
	maxDrawdown := 0.0
	for _, p := range curve {
		maxDrawdown = math.Max(maxDrawdown, p.Drawdown)
	}

	winRate := 0.0
	for _, t := range trades {
		if t.Type == "SELL" {
			winRate = rng.Float64()*40 + 40
			break
		}
	}

	return &Result{
		Symbol:       req.Symbol,
		StartDate:    req.StartDate,
		EndDate:      req.EndDate,
		Rules:        req.Rules,
		Seed:         req.Seed,
		EquityCurve:  curve,
		Transactions: trades,
		Stats: Stats{
			TotalReturn:  round2((finalValue - startingCapital) / startingCapital * 100),
			MaxDrawdown:  round2(maxDrawdown),
			WinRate:      round2(winRate),
			TotalTrades:  len(trades),
			FinalCapital: round2(finalValue),
		},
	}, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
