package repository

import (
	"context"
	"time"

	"github.com/teorey80/emlak-crm-pro-sub002/internal/db"
	"github.com/teorey80/emlak-crm-pro-sub002/internal/domain"
)

type ActivityRepository struct {
	DB *db.Postgres
}

type CreateActivityInput struct {
	Category   domain.ActivityCategory
	Date       time.Time
	CustomerID *int64
	PropertyID *int64
	Note       string
}

func (r ActivityRepository) Create(ctx context.Context, agentID int64, in CreateActivityInput) (int64, error) {
	var id int64
	err := r.DB.Pool.QueryRow(ctx, `
		INSERT INTO activities (agent_id, category, activity_date, customer_id, property_id, note, created_at)
		VALUES ($1,$2,$3,$4,$5,$6, now())
		RETURNING id
	`, agentID, string(in.Category), in.Date.Format("2006-01-02"), in.CustomerID, in.PropertyID, in.Note).Scan(&id)
	return id, err
}

func (r ActivityRepository) List(ctx context.Context, agentID int64, from, to *time.Time, limit int) ([]domain.Activity, error) {
	if limit <= 0 {
		limit = 100
	}
	var fromArg, toArg any
	if from != nil {
		fromArg = from.Format("2006-01-02")
	}
	if to != nil {
		toArg = to.Format("2006-01-02")
	}
	rows, err := r.DB.Pool.Query(ctx, `
		SELECT id, category, activity_date, customer_id, property_id, note, created_at
		FROM activities
		WHERE deleted_at IS NULL AND agent_id=$1
		  AND ($2::date IS NULL OR activity_date >= $2)
		  AND ($3::date IS NULL OR activity_date <= $3)
		ORDER BY activity_date DESC, id DESC
		LIMIT $4
	`, agentID, fromArg, toArg, limit)
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
		if err := rows.Scan(&a.ID, &category, &a.ActivityDate, &a.CustomerID, &a.PropertyID, &a.Note, &a.CreatedAt); err != nil {
			return nil, err
		}
		a.AgentID = agentID
		a.Category = domain.ActivityCategory(category)
		items = append(items, a)
	}
	return items, rows.Err()
}

func (r ActivityRepository) Delete(ctx context.Context, agentID int64, id int64) error {
	_, err := r.DB.Pool.Exec(ctx, `UPDATE activities SET deleted_at = now() WHERE id=$1 AND agent_id=$2`, id, agentID)
	return err
}
