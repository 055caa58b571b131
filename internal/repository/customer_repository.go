package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/teorey80/emlak-crm-pro-sub002/internal/db"
	"github.com/teorey80/emlak-crm-pro-sub002/internal/domain"
)

type CustomerRepository struct {
	DB *db.Postgres
}

func (r CustomerRepository) List(ctx context.Context, agentID int64, limit int) ([]domain.Customer, error) {
	rows, err := r.DB.Pool.Query(ctx, `
		SELECT id, name, phone, email, budget, notes, created_at, updated_at
		FROM customers
		WHERE deleted_at IS NULL AND agent_id=$1
		ORDER BY name ASC
		LIMIT $2
	`, agentID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []domain.Customer
	for rows.Next() {
		var c domain.Customer
		if err := rows.Scan(&c.ID, &c.Name, &c.Phone, &c.Email, &c.Budget, &c.Notes, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		c.AgentID = agentID
		items = append(items, c)
	}
	return items, rows.Err()
}

func (r CustomerRepository) Upsert(ctx context.Context, agentID int64, c domain.Customer) (*domain.Customer, error) {
	var out domain.Customer
	err := r.DB.Pool.QueryRow(ctx, `
		INSERT INTO customers (id, agent_id, name, phone, email, budget, notes, created_at, updated_at)
		VALUES (COALESCE($1, nextval('customers_id_seq')), $2, $3, $4, $5, $6, $7, now(), now())
		ON CONFLICT (id) DO UPDATE SET name=EXCLUDED.name, phone=EXCLUDED.phone, email=EXCLUDED.email, budget=EXCLUDED.budget, notes=EXCLUDED.notes, updated_at=now(), deleted_at=NULL
		RETURNING id, name, phone, email, budget, notes, created_at, updated_at
	`, nullableID(c.ID), agentID, c.Name, c.Phone, c.Email, c.Budget, c.Notes).Scan(
		&out.ID, &out.Name, &out.Phone, &out.Email, &out.Budget, &out.Notes, &out.CreatedAt, &out.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	out.AgentID = agentID
	return &out, nil
}

func (r CustomerRepository) Delete(ctx context.Context, agentID int64, id int64) error {
	_, err := r.DB.Pool.Exec(ctx, `UPDATE customers SET deleted_at = now() WHERE id=$1 AND agent_id=$2`, id, agentID)
	return err
}

func (r CustomerRepository) Get(ctx context.Context, agentID int64, id int64) (*domain.Customer, error) {
	row := r.DB.Pool.QueryRow(ctx, `
		SELECT id, name, phone, email, budget, notes, created_at, updated_at
		FROM customers
		WHERE id=$1 AND agent_id=$2 AND deleted_at IS NULL
	`, id, agentID)
	var c domain.Customer
	if err := row.Scan(&c.ID, &c.Name, &c.Phone, &c.Email, &c.Budget, &c.Notes, &c.CreatedAt, &c.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	c.AgentID = agentID
	return &c, nil
}

func nullableID(id int64) *int64 {
	if id == 0 {
		return nil
	}
	return &id
}
