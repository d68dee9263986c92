package office

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type postgresRepo struct{ db *sql.DB }

// NewPostgresRepository creates an office repository backed by Postgres.
func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

func (r *postgresRepo) Create(ctx context.Context, o *Office) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO offices (id, name, location) VALUES ($1,$2,$3)`,
		o.ID, o.Name, o.Location)
	return err
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*Office, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, err
	}
	return r.scan(r.db.QueryRowContext(ctx, `
		SELECT id, name, location, created_at, updated_at
		FROM offices WHERE id=$1`, uid))
}

func (r *postgresRepo) GetByName(ctx context.Context, name string) (*Office, error) {
	return r.scan(r.db.QueryRowContext(ctx, `
		SELECT id, name, location, created_at, updated_at
		FROM offices WHERE name=$1`, name))
}

func (r *postgresRepo) List(ctx context.Context) ([]*Office, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, location, created_at, updated_at
		FROM offices ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var offices []*Office
	for rows.Next() {
		o := &Office{}
		if err := rows.Scan(&o.ID, &o.Name, &o.Location, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, err
		}
		offices = append(offices, o)
	}
	return offices, rows.Err()
}

func (r *postgresRepo) Update(ctx context.Context, o *Office) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE offices SET name=$1, location=$2, updated_at=$3 WHERE id=$4`,
		o.Name, o.Location, time.Now(), o.ID)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return fmt.Errorf("office %s not found", o.ID)
	}
	return nil
}

func (r *postgresRepo) Delete(ctx context.Context, id string) error {
	uid, err := uuid.Parse(id)
	if err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx, `DELETE FROM offices WHERE id=$1`, uid)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return fmt.Errorf("office %s not found", id)
	}
	return nil
}

func (r *postgresRepo) scan(row *sql.Row) (*Office, error) {
	o := &Office{}
	err := row.Scan(&o.ID, &o.Name, &o.Location, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return o, nil
}
