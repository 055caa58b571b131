package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/teorey80/emlak-crm-pro-sub002/internal/db"
	"github.com/teorey80/emlak-crm-pro-sub002/internal/domain"
)

type DailyStatRepository struct {
	DB *db.Postgres
}

// Upsert writes one summary row keyed on (user_id, stat_date). Re-running
// a day overwrites the previous row, so the whole aggregation is safe to
// repeat or to race with itself.
func (r DailyStatRepository) Upsert(ctx context.Context, s domain.DailyStat) error {
	_, err := r.DB.Pool.Exec(ctx, `
		INSERT INTO daily_stats (
			user_id, office_id, stat_date,
			total_activities, phone_calls, showings, appointments,
			new_properties, new_customers,
			sales_closed, rentals_closed, deposits_taken,
			total_commission, total_revenue, updated_at
		)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14, now())
		ON CONFLICT (user_id, stat_date) DO UPDATE SET
			office_id=EXCLUDED.office_id,
			total_activities=EXCLUDED.total_activities,
			phone_calls=EXCLUDED.phone_calls,
			showings=EXCLUDED.showings,
			appointments=EXCLUDED.appointments,
			new_properties=EXCLUDED.new_properties,
			new_customers=EXCLUDED.new_customers,
			sales_closed=EXCLUDED.sales_closed,
			rentals_closed=EXCLUDED.rentals_closed,
			deposits_taken=EXCLUDED.deposits_taken,
			total_commission=EXCLUDED.total_commission,
			total_revenue=EXCLUDED.total_revenue,
			updated_at=now()
	`, s.UserID, s.OfficeID, s.StatDate,
		s.TotalActivities, s.PhoneCalls, s.Showings, s.Appointments,
		s.NewProperties, s.NewCustomers,
		s.SalesClosed, s.RentalsClosed, s.DepositsTaken,
		s.TotalCommission, s.TotalRevenue)
	return err
}

func (r DailyStatRepository) Get(ctx context.Context, userID int64, date string) (*domain.DailyStat, error) {
	row := r.DB.Pool.QueryRow(ctx, `
		SELECT user_id, office_id, stat_date,
		       total_activities, phone_calls, showings, appointments,
		       new_properties, new_customers,
		       sales_closed, rentals_closed, deposits_taken,
		       total_commission, total_revenue, updated_at
		FROM daily_stats
		WHERE user_id=$1 AND stat_date=$2
	`, userID, date)
	stat, err := scanDailyStat(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return stat, nil
}

// ListRange returns summaries for one agent between two dates inclusive,
// newest first.
func (r DailyStatRepository) ListRange(ctx context.Context, userID int64, from, to time.Time) ([]domain.DailyStat, error) {
	rows, err := r.DB.Pool.Query(ctx, `
		SELECT user_id, office_id, stat_date,
		       total_activities, phone_calls, showings, appointments,
		       new_properties, new_customers,
		       sales_closed, rentals_closed, deposits_taken,
		       total_commission, total_revenue, updated_at
		FROM daily_stats
		WHERE user_id=$1 AND stat_date >= $2 AND stat_date <= $3
		ORDER BY stat_date DESC
	`, userID, from.Format("2006-01-02"), to.Format("2006-01-02"))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.DailyStat
	for rows.Next() {
		stat, err := scanDailyStat(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *stat)
	}
	return items, rows.Err()
}

func scanDailyStat(row interface {
	Scan(dest ...any) error
}) (*domain.DailyStat, error) {
	var (
		s    domain.DailyStat
		date time.Time
	)
	if err := row.Scan(
		&s.UserID,
		&s.OfficeID,
		&date,
		&s.TotalActivities,
		&s.PhoneCalls,
		&s.Showings,
		&s.Appointments,
		&s.NewProperties,
		&s.NewCustomers,
		&s.SalesClosed,
		&s.RentalsClosed,
		&s.DepositsTaken,
		&s.TotalCommission,
		&s.TotalRevenue,
		&s.UpdatedAt,
	); err != nil {
		return nil, err
	}
	s.StatDate = date.Format("2006-01-02")
	return &s, nil
}
