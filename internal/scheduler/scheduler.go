// Package scheduler runs background jobs on fixed intervals.
package scheduler

import (
	"context"
	"time"

	"github.com/go-co-op/gocron"

	"jainvest/internal/logger"
	"jainvest/internal/metrics"
)

// UserLister enumerates users whose portfolios should be refreshed.
type UserLister interface {
	ListUserIDs(ctx context.Context) ([]string, error)
}

// Refresher revalues the given users' portfolios and reports how many changed.
type Refresher interface {
	RefreshAll(ctx context.Context, userIDs []string) (int, error)
}

// Scheduler manages scheduled tasks for the application
type Scheduler struct {
	scheduler *gocron.Scheduler
	users     UserLister
	refresher Refresher
	interval  time.Duration
}

// New creates a scheduler that refreshes portfolio marks every interval.
func New(users UserLister, refresher Refresher, interval time.Duration) *Scheduler {
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.UTC),
		users:     users,
		refresher: refresher,
		interval:  interval,
	}
}

// Start begins running all scheduled tasks. A zero interval disables the job.
func (s *Scheduler) Start() error {
	if s.interval <= 0 {
		logger.Get().Info("Price refresh job disabled")
		return nil
	}
	if _, err := s.scheduler.Every(s.interval).Do(s.RefreshPrices); err != nil {
		return err
	}
	s.scheduler.StartAsync()
	logger.Get().Infow("Price refresh job started", "interval", s.interval.String())
	return nil
}

// Stop terminates all scheduled tasks
func (s *Scheduler) Stop() {
	s.scheduler.Stop()
}

// RefreshPrices marks every user's portfolio to market once.
func (s *Scheduler) RefreshPrices() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	log := logger.Named("scheduler")
	ids, err := s.users.ListUserIDs(ctx)
	if err != nil {
		metrics.PriceRefreshes.WithLabelValues("error").Inc()
		log.Errorw("Failed to list users for price refresh", "error", err)
		return
	}

	n, err := s.refresher.RefreshAll(ctx, ids)
	if err != nil {
		metrics.PriceRefreshes.WithLabelValues("error").Inc()
		log.Errorw("Price refresh failed", "error", err, "refreshed", n)
		return
	}
	metrics.PriceRefreshes.WithLabelValues("ok").Inc()
	log.Infow("Portfolio prices refreshed", "users", len(ids), "refreshed", n)
}
