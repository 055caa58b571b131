package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/teorey80/emlak-crm-pro-sub002/internal/db"
	"github.com/teorey80/emlak-crm-pro-sub002/internal/domain"
)

type RequestRepository struct {
	DB *db.Postgres
}

type CreateRequestInput struct {
	CustomerID int64
	Kind       domain.RequestKind
	MinPrice   int64
	MaxPrice   int64
	Area       string
	Note       string
}

func (r RequestRepository) Create(ctx context.Context, agentID int64, in CreateRequestInput) (*domain.Request, error) {
	row := r.DB.Pool.QueryRow(ctx, `
		INSERT INTO requests (agent_id, customer_id, kind, min_price, max_price, area, status, note, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,'open',$7, now(), now())
		RETURNING id, customer_id, kind, min_price, max_price, area, status, note, created_at, updated_at
	`, agentID, in.CustomerID, string(in.Kind), in.MinPrice, in.MaxPrice, in.Area, in.Note)
	req, err := scanRequest(row)
	if err != nil {
		return nil, err
	}
	req.AgentID = agentID
	return req, nil
}

func (r RequestRepository) List(ctx context.Context, agentID int64, status string, limit int) ([]domain.Request, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := r.DB.Pool.Query(ctx, `
		SELECT id, customer_id, kind, min_price, max_price, area, status, note, created_at, updated_at
		FROM requests
		WHERE deleted_at IS NULL AND agent_id=$1
		  AND ($2 = '' OR status = $2)
		ORDER BY created_at DESC, id DESC
		LIMIT $3
	`, agentID, status, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.Request
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, err
		}
		req.AgentID = agentID
		items = append(items, *req)
	}
	return items, rows.Err()
}

func (r RequestRepository) UpdateStatus(ctx context.Context, agentID int64, id int64, status domain.RequestStatus) error {
	tag, err := r.DB.Pool.Exec(ctx, `
		UPDATE requests SET status=$3, updated_at=now()
		WHERE id=$1 AND agent_id=$2 AND deleted_at IS NULL
	`, id, agentID, string(status))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r RequestRepository) Delete(ctx context.Context, agentID int64, id int64) error {
	_, err := r.DB.Pool.Exec(ctx, `UPDATE requests SET deleted_at = now() WHERE id=$1 AND agent_id=$2`, id, agentID)
	return err
}

func scanRequest(row interface {
	Scan(dest ...any) error
}) (*domain.Request, error) {
	var (
		req    domain.Request
		kind   string
		status string
	)
	if err := row.Scan(
		&req.ID,
		&req.CustomerID,
		&kind,
		&req.MinPrice,
		&req.MaxPrice,
		&req.Area,
		&status,
		&req.Note,
		&req.CreatedAt,
		&req.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	req.Kind = domain.RequestKind(kind)
	req.Status = domain.RequestStatus(status)
	return &req, nil
}
