package repository

import (
	"context"
	"time"

	"github.com/teorey80/emlak-crm-pro-sub002/internal/db"
	"github.com/teorey80/emlak-crm-pro-sub002/internal/domain"
)

type SaleRepository struct {
	DB *db.Postgres
}

type CreateSaleInput struct {
	Kind             domain.SaleKind
	Date             time.Time
	CommissionAmount int64
	SalePrice        int64
	PropertyID       *int64
}

func (r SaleRepository) Create(ctx context.Context, agentID int64, in CreateSaleInput) (*domain.Sale, error) {
	var (
		s    domain.Sale
		kind string
	)
	err := r.DB.Pool.QueryRow(ctx, `
		INSERT INTO sales (agent_id, kind, sale_date, commission_amount, sale_price, property_id, created_at)
		VALUES ($1,$2,$3,$4,$5,$6, now())
		RETURNING id, kind, sale_date, commission_amount, sale_price, property_id, created_at
	`, agentID, string(in.Kind), in.Date.Format("2006-01-02"), in.CommissionAmount, in.SalePrice, in.PropertyID).Scan(
		&s.ID, &kind, &s.SaleDate, &s.CommissionAmount, &s.SalePrice, &s.PropertyID, &s.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	s.AgentID = agentID
	s.Kind = domain.SaleKind(kind)
	return &s, nil
}

func (r SaleRepository) List(ctx context.Context, agentID int64, from, to *time.Time, limit int) ([]domain.Sale, error) {
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
		SELECT id, kind, sale_date, commission_amount, sale_price, property_id, created_at
		FROM sales
		WHERE deleted_at IS NULL AND agent_id=$1
		  AND ($2::date IS NULL OR sale_date >= $2)
		  AND ($3::date IS NULL OR sale_date <= $3)
		ORDER BY sale_date DESC, id DESC
		LIMIT $4
	`, agentID, fromArg, toArg, limit)
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
		if err := rows.Scan(&s.ID, &kind, &s.SaleDate, &s.CommissionAmount, &s.SalePrice, &s.PropertyID, &s.CreatedAt); err != nil {
			return nil, err
		}
		s.AgentID = agentID
		s.Kind = domain.SaleKind(kind)
		items = append(items, s)
	}
	return items, rows.Err()
}

func (r SaleRepository) Delete(ctx context.Context, agentID int64, id int64) error {
	_, err := r.DB.Pool.Exec(ctx, `UPDATE sales SET deleted_at = now() WHERE id=$1 AND agent_id=$2`, id, agentID)
	return err
}
