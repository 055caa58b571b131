package scheduler

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/teorey80/emlak-crm-pro-sub002/internal/ports"
)

// Scheduler triggers the daily stats aggregation once per day at a fixed
// hour. Deployments that drive the aggregation from an external cron via
// the HTTP endpoint run with the scheduler disabled.
type Scheduler struct {
	Runner       ports.StatsRunner
	Logger       *slog.Logger
	RunHour      int
	BackfillDays int

	stopCh chan struct{}
	wg     sync.WaitGroup
	mu     sync.Mutex // one run at a time
}

func New(runner ports.StatsRunner, logger *slog.Logger, runHour, backfillDays int) *Scheduler {
	return &Scheduler{
		Runner:       runner,
		Logger:       logger,
		RunHour:      runHour,
		BackfillDays: backfillDays,
		stopCh:       make(chan struct{}),
	}
}

// Start begins the scheduling loop.
func (s *Scheduler) Start() {
	s.wg.Add(1)
	go s.loop()
}

func (s *Scheduler) loop() {
	defer s.wg.Done()

	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopCh:
			return
		case t := <-ticker.C:
			if t.Hour() == s.RunHour && t.Minute() == 0 {
				s.runOnce()
			}
		}
	}
}

func (s *Scheduler) runOnce() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.Logger.Info("scheduled daily stats run starting", "backfill_days", s.BackfillDays)
	results, err := s.Runner.Run(context.Background(), s.BackfillDays)
	if err != nil {
		s.Logger.Error("scheduled daily stats run failed", "err", err)
		return
	}
	for _, day := range results {
		if day.Err != "" {
			s.Logger.Error("daily stats day skipped", "date", day.Date, "err", day.Err)
			continue
		}
		s.Logger.Info("daily stats day done", "date", day.Date, "agents", day.Users, "written", day.Success)
	}
}

// Stop gracefully stops the scheduler.
func (s *Scheduler) Stop() {
	close(s.stopCh)
	s.wg.Wait()
}
