package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/teorey80/emlak-crm-pro-sub002/internal/db"
	"github.com/teorey80/emlak-crm-pro-sub002/internal/domain"
)

type OfficeRepository struct {
	DB *db.Postgres
}

// List returns all active offices ordered alphabetically.
func (r OfficeRepository) List(ctx context.Context) ([]domain.Office, error) {
	rows, err := r.DB.Pool.Query(ctx, `
		SELECT id, name, city, created_at, updated_at
		FROM offices
		WHERE deleted_at IS NULL
		ORDER BY name ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.Office
	for rows.Next() {
		var office domain.Office
		if err := rows.Scan(&office.ID, &office.Name, &office.City, &office.CreatedAt, &office.UpdatedAt); err != nil {
			return nil, err
		}
		items = append(items, office)
	}
	return items, rows.Err()
}

func (r OfficeRepository) Create(ctx context.Context, name, city string) (*domain.Office, error) {
	var office domain.Office
	err := r.DB.Pool.QueryRow(ctx, `
		INSERT INTO offices (name, city, created_at, updated_at)
		VALUES ($1,$2, now(), now())
		RETURNING id, name, city, created_at, updated_at
	`, name, city).Scan(&office.ID, &office.Name, &office.City, &office.CreatedAt, &office.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &office, nil
}

func (r OfficeRepository) Get(ctx context.Context, id int64) (*domain.Office, error) {
	var office domain.Office
	err := r.DB.Pool.QueryRow(ctx, `
		SELECT id, name, city, created_at, updated_at
		FROM offices
		WHERE id=$1 AND deleted_at IS NULL
	`, id).Scan(&office.ID, &office.Name, &office.City, &office.CreatedAt, &office.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &office, nil
}
