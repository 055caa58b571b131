package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/teorey80/emlak-crm-pro-sub002/internal/db"
	"github.com/teorey80/emlak-crm-pro-sub002/internal/domain"
)

type PropertyRepository struct {
	DB *db.Postgres
}

type PropertyFilter struct {
	Status string
	City   string
	Limit  int
}

func (r PropertyRepository) List(ctx context.Context, agentID int64, f PropertyFilter) ([]domain.Property, error) {
	if f.Limit <= 0 {
		f.Limit = 200
	}
	rows, err := r.DB.Pool.Query(ctx, `
		SELECT id, title, address, city, district, price, rooms, area, status, deposit_date, created_at, updated_at
		FROM properties
		WHERE deleted_at IS NULL AND agent_id=$1
		  AND ($2 = '' OR status = $2)
		  AND ($3 = '' OR LOWER(city) = LOWER($3))
		ORDER BY created_at DESC, id DESC
		LIMIT $4
	`, agentID, f.Status, f.City, f.Limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.Property
	for rows.Next() {
		p, err := scanProperty(rows)
		if err != nil {
			return nil, err
		}
		p.AgentID = agentID
		items = append(items, *p)
	}
	return items, rows.Err()
}

func (r PropertyRepository) Upsert(ctx context.Context, agentID int64, p domain.Property) (*domain.Property, error) {
	row := r.DB.Pool.QueryRow(ctx, `
		INSERT INTO properties (id, agent_id, title, address, city, district, price, rooms, area, status, deposit_date, created_at, updated_at)
		VALUES (COALESCE($1, nextval('properties_id_seq')), $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, now(), now())
		ON CONFLICT (id) DO UPDATE SET
			title=EXCLUDED.title, address=EXCLUDED.address, city=EXCLUDED.city, district=EXCLUDED.district,
			price=EXCLUDED.price, rooms=EXCLUDED.rooms, area=EXCLUDED.area, status=EXCLUDED.status,
			deposit_date=EXCLUDED.deposit_date, updated_at=now(), deleted_at=NULL
		RETURNING id, title, address, city, district, price, rooms, area, status, deposit_date, created_at, updated_at
	`, nullableID(p.ID), agentID, p.Title, p.Address, p.City, p.District, p.Price, p.Rooms, p.Area, string(p.Status), p.DepositDate)
	out, err := scanProperty(row)
	if err != nil {
		return nil, err
	}
	out.AgentID = agentID
	return out, nil
}

func (r PropertyRepository) Get(ctx context.Context, agentID int64, id int64) (*domain.Property, error) {
	row := r.DB.Pool.QueryRow(ctx, `
		SELECT id, title, address, city, district, price, rooms, area, status, deposit_date, created_at, updated_at
		FROM properties
		WHERE id=$1 AND agent_id=$2 AND deleted_at IS NULL
	`, id, agentID)
	p, err := scanProperty(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	p.AgentID = agentID
	return p, nil
}

func (r PropertyRepository) Delete(ctx context.Context, agentID int64, id int64) error {
	_, err := r.DB.Pool.Exec(ctx, `UPDATE properties SET deleted_at = now() WHERE id=$1 AND agent_id=$2`, id, agentID)
	return err
}

func scanProperty(row interface {
	Scan(dest ...any) error
}) (*domain.Property, error) {
	var (
		p      domain.Property
		status string
	)
	if err := row.Scan(
		&p.ID,
		&p.Title,
		&p.Address,
		&p.City,
		&p.District,
		&p.Price,
		&p.Rooms,
		&p.Area,
		&status,
		&p.DepositDate,
		&p.CreatedAt,
		&p.UpdatedAt,
	); err != nil {
		return nil, err
	}
	p.Status = domain.ListingStatus(status)
	return &p, nil
}
