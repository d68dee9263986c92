package request

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type postgresRepo struct{ db *sql.DB }

// NewPostgresRepository creates a request repository backed by Postgres.
func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

func (r *postgresRepo) Create(ctx context.Context, req *Request) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO requests (id, item_name, quantity, office, status, purpose)
		VALUES ($1,$2,$3,$4,$5,$6)`,
		req.ID, req.ItemName, req.Quantity, req.Office, req.Status, req.Purpose)
	return err
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*Request, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, err
	}
	req := &Request{}
	var purpose sql.NullString
	var decidedAt sql.NullTime
	err = r.db.QueryRowContext(ctx, `
		SELECT id, item_name, quantity, office, status, purpose, created_at, decided_at
		FROM requests WHERE id=$1`, uid).
		Scan(&req.ID, &req.ItemName, &req.Quantity, &req.Office, &req.Status,
			&purpose, &req.CreatedAt, &decidedAt)
	if err != nil {
		return nil, err
	}
	req.Purpose = purpose.String
	if decidedAt.Valid {
		req.DecidedAt = &decidedAt.Time
	}
	return req, nil
}

func (r *postgresRepo) List(ctx context.Context, status Status, office string) ([]*Request, error) {
	query := `SELECT id, item_name, quantity, office, status, purpose, created_at, decided_at
	          FROM requests WHERE 1=1`
	var args []interface{}
	if status != "" {
		args = append(args, status)
		query += fmt.Sprintf(" AND status=$%d", len(args))
	}
	if office != "" {
		args = append(args, office)
		query += fmt.Sprintf(" AND office=$%d", len(args))
	}
	query += " ORDER BY created_at DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var requests []*Request
	for rows.Next() {
		req := &Request{}
		var purpose sql.NullString
		var decidedAt sql.NullTime
		if err := rows.Scan(&req.ID, &req.ItemName, &req.Quantity, &req.Office,
			&req.Status, &purpose, &req.CreatedAt, &decidedAt); err != nil {
			return nil, err
		}
		req.Purpose = purpose.String
		if decidedAt.Valid {
			req.DecidedAt = &decidedAt.Time
		}
		requests = append(requests, req)
	}
	return requests, rows.Err()
}

func (r *postgresRepo) UpdateStatus(ctx context.Context, id string, status Status) error {
	uid, err := uuid.Parse(id)
	if err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx, `
		UPDATE requests SET status=$1, decided_at=$2 WHERE id=$3`,
		status, time.Now(), uid)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return fmt.Errorf("request %s not found", id)
	}
	return nil
}
