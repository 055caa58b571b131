package ports

import (
	"context"

	"github.com/teorey80/emlak-crm-pro-sub002/internal/stats"
)

// HealthChecker is used to probe dependencies.
type HealthChecker interface {
	Health(ctx context.Context) error
}

// StatsRunner triggers the daily stats aggregation; implemented by
// stats.Runner, faked in handler tests.
type StatsRunner interface {
	Run(ctx context.Context, backfillDays int) ([]stats.DayResult, error)
}
