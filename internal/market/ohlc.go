package market

import (
	"math"
	"time"
)

// HistoryDays is the length of the synthetic price history.
const HistoryDays = 30

// Candle is one day of OHLC data.
type Candle struct {
	Date   string  `json:"date"`
	Open   float64 `json:"open"`
	High   float64 `json:"high"`
	Low    float64 `json:"low"`
	Close  float64 `json:"close"`
	Volume int64   `json:"volume"`
}

// GenerateOHLC builds days+1 daily candles ending today as a ±50 random walk
// starting in [1000, 3000). Each close becomes the next day's open.
func GenerateOHLC(rng Rand, now time.Time, days int) []Candle {
	candles := make([]Candle, 0, days+1)
	price := 1000 + rng.Float64()*2000

	for i := days; i >= 0; i-- {
		date := now.UTC().AddDate(0, 0, -i).Format("2006-01-02")

		open := price
		closePrice := open + (rng.Float64()-0.5)*100
		high := math.Max(open, closePrice) + rng.Float64()*50
		low := math.Min(open, closePrice) - rng.Float64()*50

		candles = append(candles, Candle{
			Date:   date,
			Open:   round2(open),
			High:   round2(high),
			Low:    round2(low),
			Close:  round2(closePrice),
			Volume: int64(math.Floor(rng.Float64()*1000000)) + 100000,
		})
		price = closePrice
	}
	return candles
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
