package delivery

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type postgresRepo struct{ db *sql.DB }

// NewPostgresRepository creates a delivery repository backed by Postgres.
func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

func (r *postgresRepo) Create(ctx context.Context, d *Delivery) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO deliveries (id, product, supplier_id, office, status, scheduled_at, arrived_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7)`,
		d.ID, d.Product, d.SupplierID, d.Office, d.Status, d.ScheduledAt, d.ArrivedAt)
	return err
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*Delivery, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, err
	}
	return scanDelivery(r.db.QueryRowContext(ctx, `
		SELECT id, product, supplier_id, office, status, scheduled_at, arrived_at, created_at, updated_at
		FROM deliveries WHERE id=$1`, uid))
}

func (r *postgresRepo) List(ctx context.Context, status Status, office string) ([]*Delivery, error) {
	query := `SELECT id, product, supplier_id, office, status, scheduled_at, arrived_at, created_at, updated_at
	          FROM deliveries WHERE 1=1`
	var args []interface{}
	if status != "" {
		args = append(args, status)
		query += fmt.Sprintf(" AND status=$%d", len(args))
	}
	if office != "" {
		args = append(args, office)
		query += fmt.Sprintf(" AND office=$%d", len(args))
	}
	query += " ORDER BY scheduled_at DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var deliveries []*Delivery
	for rows.Next() {
		d := &Delivery{}
		var supplierID sql.NullString
		var arrivedAt sql.NullTime
		if err := rows.Scan(&d.ID, &d.Product, &supplierID, &d.Office, &d.Status,
			&d.ScheduledAt, &arrivedAt, &d.CreatedAt, &d.UpdatedAt); err != nil {
			return nil, err
		}
		if supplierID.Valid {
			sid, _ := uuid.Parse(supplierID.String)
			d.SupplierID = &sid
		}
		if arrivedAt.Valid {
			d.ArrivedAt = &arrivedAt.Time
		}
		deliveries = append(deliveries, d)
	}
	return deliveries, rows.Err()
}

func (r *postgresRepo) Update(ctx context.Context, d *Delivery) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE deliveries SET product=$1, supplier_id=$2, office=$3, status=$4,
		       scheduled_at=$5, arrived_at=$6, updated_at=$7
		WHERE id=$8`,
		d.Product, d.SupplierID, d.Office, d.Status, d.ScheduledAt, d.ArrivedAt,
		time.Now(), d.ID)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return fmt.Errorf("delivery %s not found", d.ID)
	}
	return nil
}

func (r *postgresRepo) Delete(ctx context.Context, id string) error {
	uid, err := uuid.Parse(id)
	if err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx, `DELETE FROM deliveries WHERE id=$1`, uid)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return fmt.Errorf("delivery %s not found", id)
	}
	return nil
}

func scanDelivery(row *sql.Row) (*Delivery, error) {
	d := &Delivery{}
	var supplierID sql.NullString
	var arrivedAt sql.NullTime
	err := row.Scan(&d.ID, &d.Product, &supplierID, &d.Office, &d.Status,
		&d.ScheduledAt, &arrivedAt, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if supplierID.Valid {
		sid, _ := uuid.Parse(supplierID.String)
		d.SupplierID = &sid
	}
	if arrivedAt.Valid {
		d.ArrivedAt = &arrivedAt.Time
	}
	return d, nil
}
