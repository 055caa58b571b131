package scheduler

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/teorey80/emlak-crm-pro-sub002/internal/stats"
)

type stubRunner struct {
	mu      sync.Mutex
	calls   int
	gotDays int
	err     error
}

func (s *stubRunner) Run(ctx context.Context, backfillDays int) ([]stats.DayResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	s.gotDays = backfillDays
	if s.err != nil {
		return nil, s.err
	}
	return []stats.DayResult{{Date: "2024-01-10", Users: 1, Success: 1}}, nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRunOncePassesBackfillDays(t *testing.T) {
	runner := &stubRunner{}
	s := New(runner, testLogger(), 2, 3)

	s.runOnce()

	assert.Equal(t, 1, runner.calls)
	assert.Equal(t, 3, runner.gotDays)
}

func TestRunOnceSurvivesRunnerFailure(t *testing.T) {
	runner := &stubRunner{err: errors.New("database down")}
	s := New(runner, testLogger(), 2, 1)

	s.runOnce()
	s.runOnce()

	assert.Equal(t, 2, runner.calls)
}

func TestStartStop(t *testing.T) {
	runner := &stubRunner{}
	s := New(runner, testLogger(), 2, 1)

	s.Start()
	s.Stop()

	// The loop only fires on the hour boundary; a quick start/stop must
	// not trigger a run.
	assert.Zero(t, runner.calls)
}
