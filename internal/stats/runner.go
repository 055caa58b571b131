package stats

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// DayResult reports the outcome of one requested calendar day. Users is
// the number of agents enumerated, Success how many summaries were
// written. A day whose agent enumeration failed carries Err and zeroes.
type DayResult struct {
	Date    string `json:"date"`
	Users   int    `json:"users"`
	Success int    `json:"success"`
	Err     string `json:"error,omitempty"`
}

// unitResult is the outcome of one (day, agent) unit of work. Expected
// per-unit failures travel here instead of aborting siblings.
type unitResult struct {
	agentID int64
	err     error
}

// Runner drives the multi-day, multi-user aggregation. Units are
// independent, so within a day they fan out over a bounded worker pool;
// the upsert key makes interleaved or repeated writes safe.
type Runner struct {
	Store   Store
	Logger  *slog.Logger
	Workers int

	// now is swapped out in tests.
	now func() time.Time
}

func NewRunner(store Store, logger *slog.Logger, workers int) *Runner {
	if workers < 1 {
		workers = 1
	}
	return &Runner{
		Store:   store,
		Logger:  logger,
		Workers: workers,
		now:     time.Now,
	}
}

// Run computes summaries for backfillDays trailing days, starting at
// yesterday and walking backwards. Every requested day appears in the
// returned slice, in that order, even when nothing was processed. The
// error return is reserved for whole-invocation failures (context
// cancellation); per-day and per-agent failures are folded into results.
func (r *Runner) Run(ctx context.Context, backfillDays int) ([]DayResult, error) {
	if backfillDays < 1 {
		backfillDays = 1
	}

	started := r.now()
	runsTotal.Inc()
	defer func() {
		runDuration.Observe(r.now().Sub(started).Seconds())
	}()

	// Dates derive from one snapshot of the clock so a run that crosses
	// midnight still covers exactly the days requested at start.
	results := make([]DayResult, 0, backfillDays)
	for i := 1; i <= backfillDays; i++ {
		if err := ctx.Err(); err != nil {
			return results, err
		}

		date := started.AddDate(0, 0, -i).UTC().Format(dateLayout)
		results = append(results, r.runDay(ctx, date))
	}
	return results, nil
}

func (r *Runner) runDay(ctx context.Context, date string) DayResult {
	agents, err := r.Store.ListAgents(ctx)
	if err != nil {
		r.Logger.Error("agent enumeration failed, skipping day", "date", date, "err", err)
		return DayResult{Date: date, Err: err.Error()}
	}

	agg := Aggregator{Store: r.Store, Logger: r.Logger}

	var (
		wg      sync.WaitGroup
		sem     = make(chan struct{}, r.Workers)
		resCh   = make(chan unitResult, len(agents))
		success = 0
	)

	for _, agent := range agents {
		wg.Add(1)
		sem <- struct{}{}
		go func(agent Agent) {
			defer wg.Done()
			defer func() { <-sem }()
			resCh <- unitResult{agentID: agent.ID, err: r.runUnit(ctx, agg, agent, date)}
		}(agent)
	}
	wg.Wait()
	close(resCh)

	for res := range resCh {
		if res.err != nil {
			agentFailures.Inc()
			r.Logger.Error("daily stat not written", "agent", res.agentID, "date", date, "err", res.err)
			continue
		}
		agentsProcessed.Inc()
		success++
	}

	r.Logger.Info("daily stats computed", "date", date, "agents", len(agents), "written", success)
	return DayResult{Date: date, Users: len(agents), Success: success}
}

func (r *Runner) runUnit(ctx context.Context, agg Aggregator, agent Agent, date string) error {
	stat, err := agg.AggregateUser(ctx, agent, date)
	if err != nil {
		return err
	}
	return r.Store.UpsertDailyStat(ctx, *stat)
}
