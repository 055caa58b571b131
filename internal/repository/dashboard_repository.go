package repository

import (
	"context"
	"time"

	"github.com/teorey80/emlak-crm-pro-sub002/internal/db"
)

// DashboardRepository reads from the daily_stats rollup, not the raw
// record tables, so the dashboard stays cheap regardless of history size.
type DashboardRepository struct {
	DB *db.Postgres
}

type DashboardSummary struct {
	TotalActivities int64
	PhoneCalls      int64
	Showings        int64
	SalesClosed     int64
	RentalsClosed   int64
	TotalCommission int64
	TotalRevenue    int64
}

type AgentRanking struct {
	UserID          int64
	Name            string
	SalesClosed     int64
	TotalCommission int64
}

func (r DashboardRepository) Summary(ctx context.Context, userID int64, days int) (DashboardSummary, error) {
	start := time.Now().UTC().AddDate(0, 0, -days).Format("2006-01-02")
	var s DashboardSummary
	err := r.DB.Pool.QueryRow(ctx, `
		SELECT
			COALESCE(SUM(total_activities),0),
			COALESCE(SUM(phone_calls),0),
			COALESCE(SUM(showings),0),
			COALESCE(SUM(sales_closed),0),
			COALESCE(SUM(rentals_closed),0),
			COALESCE(SUM(total_commission),0),
			COALESCE(SUM(total_revenue),0)
		FROM daily_stats
		WHERE user_id=$1 AND stat_date >= $2
	`, userID, start).Scan(
		&s.TotalActivities, &s.PhoneCalls, &s.Showings,
		&s.SalesClosed, &s.RentalsClosed, &s.TotalCommission, &s.TotalRevenue,
	)
	return s, err
}

// TopAgents ranks agents by commission. A non-nil officeID limits the
// ranking to that office.
func (r DashboardRepository) TopAgents(ctx context.Context, officeID *int64, days, limit int) ([]AgentRanking, error) {
	start := time.Now().UTC().AddDate(0, 0, -days).Format("2006-01-02")
	rows, err := r.DB.Pool.Query(ctx, `
		SELECT s.user_id, u.name,
		       COALESCE(SUM(s.sales_closed + s.rentals_closed),0) AS closed,
		       COALESCE(SUM(s.total_commission),0) AS commission
		FROM daily_stats s
		JOIN users u ON u.id = s.user_id
		WHERE s.stat_date >= $1
		  AND ($2::bigint IS NULL OR s.office_id = $2)
		GROUP BY s.user_id, u.name
		ORDER BY commission DESC
		LIMIT $3
	`, start, officeID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []AgentRanking
	for rows.Next() {
		var a AgentRanking
		if err := rows.Scan(&a.UserID, &a.Name, &a.SalesClosed, &a.TotalCommission); err != nil {
			return nil, err
		}
		items = append(items, a)
	}
	return items, rows.Err()
}
