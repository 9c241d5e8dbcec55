package services

import (
	"context"
	"math/rand/v2"
	"time"

	"jainvest/internal/backtest"
	apperrors "jainvest/internal/errors"
	"jainvest/internal/logger"
	"jainvest/internal/metrics"
)

// backtestService runs the simulator behind an optional artificial delay.
type backtestService struct {
	delay time.Duration
	clock backtest.Clock
	seed  func() uint64
}

// NewBacktestService creates a new BacktestServicer. Each run waits delay
// before simulating.
func NewBacktestService(delay time.Duration) BacktestServicer {
	return &backtestService{
		delay: delay,
		clock: time.Now,
		seed:  rand.Uint64,
	}
}

// Run validates and simulates req. Requests without a seed get a random
// one, echoed in the result so the run can be replayed.
func (s *backtestService) Run(ctx context.Context, req backtest.Request) (*backtest.Result, error) {
	if _, _, err := backtest.Validate(req, s.clock()); err != nil {
		metrics.BacktestsTotal.WithLabelValues("invalid").Inc()
		return nil, err
	}

	if s.delay > 0 {
		timer := time.NewTimer(s.delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			metrics.BacktestsTotal.WithLabelValues("cancelled").Inc()
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, ctx.Err())
		case <-timer.C:
		}
	}

	if req.Seed == 0 {
		req.Seed = s.seed()
	}
	result, err := backtest.Run(req, backtest.NewSeeded(req.Seed), s.clock)
	if err != nil {
		metrics.BacktestsTotal.WithLabelValues("invalid").Inc()
		return nil, err
	}

	metrics.BacktestsTotal.WithLabelValues("ok").Inc()
	logger.Get().Infow("backtest completed",
		"symbol", req.Symbol,
		"start_date", req.StartDate,
		"end_date", req.EndDate,
		"seed", req.Seed,
		"total_trades", result.Stats.TotalTrades,
	)
	return result, nil
}
