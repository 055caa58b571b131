package repository

import (
	"context"
	"time"

	"github.com/teorey80/emlak-crm-pro-sub002/internal/db"
	"github.com/teorey80/emlak-crm-pro-sub002/internal/domain"
	"github.com/teorey80/emlak-crm-pro-sub002/internal/stats"
)

// StatsRepository is the Postgres implementation of stats.Store. It owns
// the read queries the aggregator needs and delegates the summary write
// to DailyStatRepository.
type StatsRepository struct {
	DB         *db.Postgres
	DailyStats DailyStatRepository
}

func NewStatsRepository(pg *db.Postgres) StatsRepository {
	return StatsRepository{DB: pg, DailyStats: DailyStatRepository{DB: pg}}
}

// ListAgents enumerates every active user. Enumeration order is whatever
// the query returns; the aggregation does not depend on it.
func (r StatsRepository) ListAgents(ctx context.Context) ([]stats.Agent, error) {
	rows, err := r.DB.Pool.Query(ctx, `
		SELECT id, office_id
		FROM users
		WHERE deleted_at IS NULL
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var agents []stats.Agent
	for rows.Next() {
		var a stats.Agent
		if err := rows.Scan(&a.ID, &a.OfficeID); err != nil {
			return nil, err
		}
		agents = append(agents, a)
	}
	return agents, rows.Err()
}

func (r StatsRepository) ListActivitiesOn(ctx context.Context, agentID int64, date string) ([]domain.Activity, error) {
	rows, err := r.DB.Pool.Query(ctx, `
		SELECT id, category, activity_date
		FROM activities
		WHERE deleted_at IS NULL AND agent_id=$1 AND activity_date=$2
	`, agentID, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.Activity
	for rows.Next() {
		var (
			a        domain.Activity
			category string
		)
		if err := rows.Scan(&a.ID, &category, &a.ActivityDate); err != nil {
			return nil, err
		}
		a.AgentID = agentID
		a.Category = domain.ActivityCategory(category)
		items = append(items, a)
	}
	return items, rows.Err()
}

func (r StatsRepository) CountCustomersCreatedBetween(ctx context.Context, agentID int64, from, to time.Time) (int, error) {
	var n int
	err := r.DB.Pool.QueryRow(ctx, `
		SELECT COUNT(*)
		FROM customers
		WHERE deleted_at IS NULL AND agent_id=$1
		  AND created_at >= $2 AND created_at < $3
	`, agentID, from, to).Scan(&n)
	return n, err
}

func (r StatsRepository) CountPropertiesCreatedBetween(ctx context.Context, agentID int64, from, to time.Time) (int, error) {
	var n int
	err := r.DB.Pool.QueryRow(ctx, `
		SELECT COUNT(*)
		FROM properties
		WHERE deleted_at IS NULL AND agent_id=$1
		  AND created_at >= $2 AND created_at < $3
	`, agentID, from, to).Scan(&n)
	return n, err
}

// ListSalesOn treats absent commission or price as zero so a half-filled
// record still contributes its counts.
func (r StatsRepository) ListSalesOn(ctx context.Context, agentID int64, date string) ([]domain.Sale, error) {
	rows, err := r.DB.Pool.Query(ctx, `
		SELECT id, kind, sale_date, COALESCE(commission_amount, 0), COALESCE(sale_price, 0)
		FROM sales
		WHERE deleted_at IS NULL AND agent_id=$1 AND sale_date=$2
	`, agentID, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.Sale
	for rows.Next() {
		var (
			s    domain.Sale
			kind string
		)
		if err := rows.Scan(&s.ID, &kind, &s.SaleDate, &s.CommissionAmount, &s.SalePrice); err != nil {
			return nil, err
		}
		s.AgentID = agentID
		s.Kind = domain.SaleKind(kind)
		items = append(items, s)
	}
	return items, rows.Err()
}

func (r StatsRepository) CountDepositsTakenOn(ctx context.Context, agentID int64, date string) (int, error) {
	var n int
	err := r.DB.Pool.QueryRow(ctx, `
		SELECT COUNT(*)
		FROM properties
		WHERE deleted_at IS NULL AND agent_id=$1
		  AND status=$2 AND deposit_date=$3
	`, agentID, string(domain.ListingDepositTaken), date).Scan(&n)
	return n, err
}

func (r StatsRepository) UpsertDailyStat(ctx context.Context, stat domain.DailyStat) error {
	return r.DailyStats.Upsert(ctx, stat)
}
