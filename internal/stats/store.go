package stats

import (
	"context"
	"time"

	"github.com/teorey80/emlak-crm-pro-sub002/internal/domain"
)

// Agent is the slice of user data the aggregator needs: the identifier
// and the office affiliation carried through to the summary row.
type Agent struct {
	ID       int64
	OfficeID *int64
}

// Store is the record-store surface the aggregator runs against. The
// production implementation is repository.StatsRepository; tests use an
// in-memory fake.
type Store interface {
	ListAgents(ctx context.Context) ([]Agent, error)
	ListActivitiesOn(ctx context.Context, agentID int64, date string) ([]domain.Activity, error)
	CountCustomersCreatedBetween(ctx context.Context, agentID int64, from, to time.Time) (int, error)
	CountPropertiesCreatedBetween(ctx context.Context, agentID int64, from, to time.Time) (int, error)
	ListSalesOn(ctx context.Context, agentID int64, date string) ([]domain.Sale, error)
	CountDepositsTakenOn(ctx context.Context, agentID int64, date string) (int, error)
	UpsertDailyStat(ctx context.Context, stat domain.DailyStat) error
}
