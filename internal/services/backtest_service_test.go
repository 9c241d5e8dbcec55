package services

import (
	"context"
	"reflect"
	"testing"
	"time"

	"jainvest/internal/backtest"
	"jainvest/internal/testutil"
)

func TestBacktestService_Run(t *testing.T) {
	ctx := context.Background()
	svc := NewBacktestService(0)
	req := backtest.Request{Symbol: "RELIANCE", StartDate: "2023-01-01", EndDate: "2023-03-31"}

	t.Run("assigns_and_echoes_seed", func(t *testing.T) {
		res, err := svc.Run(ctx, req)
		testutil.AssertNoError(t, err)
		if res.Seed == 0 {
			t.Fatal("expected a seed to be assigned")
		}

		replay := req
		replay.Seed = res.Seed
		again, err := svc.Run(ctx, replay)
		testutil.AssertNoError(t, err)
		if !reflect.DeepEqual(res, again) {
			t.Error("replaying the seed should reproduce the run")
		}
	})

	t.Run("invalid_range", func(t *testing.T) {
		bad := req
		bad.EndDate = "2022-01-01"
		_, err := svc.Run(ctx, bad)
		testutil.AssertAppError(t, err, "INVALID_RANGE")
	})

	t.Run("cancelled_during_delay", func(t *testing.T) {
		slow := NewBacktestService(time.Hour)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := slow.Run(ctx, req)
		testutil.AssertAppError(t, err, "INTERNAL_ERROR")
	})

	t.Run("invalid_skips_delay", func(t *testing.T) {
		slow := NewBacktestService(time.Hour)
		_, err := slow.Run(ctx, backtest.Request{Symbol: "X"})
		testutil.AssertAppError(t, err, "INVALID_RANGE")
	})
}
