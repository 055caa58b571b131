package stats

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/teorey80/emlak-crm-pro-sub002/internal/domain"
)

const dateLayout = "2006-01-02"

// Aggregator computes one DailyStat for one (agent, date) pair from five
// independent reads. It performs no writes.
type Aggregator struct {
	Store  Store
	Logger *slog.Logger
}

// dayWindow returns the creation-timestamp window for a calendar date.
// The window runs from D 00:00:00 up to but not including D 23:59:59, so
// the last second of the day is not counted. That boundary matches the
// nightly job this replaced; do not widen it without migrating the
// stored history.
func dayWindow(date time.Time) (from, to time.Time) {
	from = time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	to = from.Add(24*time.Hour - time.Second)
	return from, to
}

// AggregateUser builds the summary for one agent and one date. A nil
// error always carries a summary. The activity read failing means the
// agent is skipped for the day (error returned, no summary); the four
// remaining reads degrade to zero contributions on failure so partial
// source outages never lose the whole row.
func (a Aggregator) AggregateUser(ctx context.Context, agent Agent, date string) (*domain.DailyStat, error) {
	day, err := time.Parse(dateLayout, date)
	if err != nil {
		return nil, fmt.Errorf("invalid stat date %q: %w", date, err)
	}

	activities, err := a.Store.ListActivitiesOn(ctx, agent.ID, date)
	if err != nil {
		return nil, fmt.Errorf("list activities for agent %d on %s: %w", agent.ID, date, err)
	}

	stat := domain.DailyStat{
		UserID:   agent.ID,
		OfficeID: agent.OfficeID,
		StatDate: date,
	}

	stat.TotalActivities = len(activities)
	for _, act := range activities {
		switch act.Category {
		case domain.ActivityIncomingCall, domain.ActivityOutgoingCall:
			stat.PhoneCalls++
		case domain.ActivitySiteViewing:
			stat.Showings++
		case domain.ActivityOfficeMeeting:
			stat.Appointments++
		}
	}

	from, to := dayWindow(day)

	if n, err := a.Store.CountPropertiesCreatedBetween(ctx, agent.ID, from, to); err != nil {
		a.Logger.Warn("count new properties failed, using zero", "agent", agent.ID, "date", date, "err", err)
	} else {
		stat.NewProperties = n
	}

	if n, err := a.Store.CountCustomersCreatedBetween(ctx, agent.ID, from, to); err != nil {
		a.Logger.Warn("count new customers failed, using zero", "agent", agent.ID, "date", date, "err", err)
	} else {
		stat.NewCustomers = n
	}

	if sales, err := a.Store.ListSalesOn(ctx, agent.ID, date); err != nil {
		a.Logger.Warn("list sales failed, using zero", "agent", agent.ID, "date", date, "err", err)
	} else {
		for _, s := range sales {
			switch s.Kind {
			case domain.SaleKindRental:
				stat.RentalsClosed++
			default:
				stat.SalesClosed++
			}
			stat.TotalCommission += s.CommissionAmount
			stat.TotalRevenue += s.SalePrice
		}
	}

	if n, err := a.Store.CountDepositsTakenOn(ctx, agent.ID, date); err != nil {
		a.Logger.Warn("count deposits failed, using zero", "agent", agent.ID, "date", date, "err", err)
	} else {
		stat.DepositsTaken = n
	}

	return &stat, nil
}
