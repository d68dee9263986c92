package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ---- Category ----

type categoryPostgres struct{ db *sql.DB }

func NewCategoryPostgresRepository(db *sql.DB) CategoryRepository { return &categoryPostgres{db: db} }

func (r *categoryPostgres) Create(ctx context.Context, c *Category) error {
	_, err := r.db.ExecContext(ctx, `INSERT INTO categories (id, name) VALUES ($1,$2)`, c.ID, c.Name)
	return err
}

func (r *categoryPostgres) List(ctx context.Context) ([]*Category, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, created_at, updated_at FROM categories ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var categories []*Category
	for rows.Next() {
		c := &Category{}
		if err := rows.Scan(&c.ID, &c.Name, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

func (r *categoryPostgres) Delete(ctx context.Context, id string) error {
	uid, err := uuid.Parse(id)
	if err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx, `DELETE FROM categories WHERE id=$1`, uid)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return fmt.Errorf("category %s not found", id)
	}
	return nil
}

// ---- Supplier ----

type supplierPostgres struct{ db *sql.DB }

func NewSupplierPostgresRepository(db *sql.DB) SupplierRepository { return &supplierPostgres{db: db} }

func (r *supplierPostgres) Create(ctx context.Context, s *Supplier) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO suppliers (id, name, contact_email, phone) VALUES ($1,$2,$3,$4)`,
		s.ID, s.Name, s.ContactEmail, s.Phone)
	return err
}

func (r *supplierPostgres) GetByID(ctx context.Context, id string) (*Supplier, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, err
	}
	s := &Supplier{}
	err = r.db.QueryRowContext(ctx, `
		SELECT id, name, contact_email, phone, created_at, updated_at
		FROM suppliers WHERE id=$1`, uid).
		Scan(&s.ID, &s.Name, &s.ContactEmail, &s.Phone, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (r *supplierPostgres) List(ctx context.Context) ([]*Supplier, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, contact_email, phone, created_at, updated_at
		FROM suppliers ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var suppliers []*Supplier
	for rows.Next() {
		s := &Supplier{}
		if err := rows.Scan(&s.ID, &s.Name, &s.ContactEmail, &s.Phone, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		suppliers = append(suppliers, s)
	}
	return suppliers, rows.Err()
}

func (r *supplierPostgres) Update(ctx context.Context, s *Supplier) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE suppliers SET name=$1, contact_email=$2, phone=$3, updated_at=$4 WHERE id=$5`,
		s.Name, s.ContactEmail, s.Phone, time.Now(), s.ID)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return fmt.Errorf("supplier %s not found", s.ID)
	}
	return nil
}

func (r *supplierPostgres) Delete(ctx context.Context, id string) error {
	uid, err := uuid.Parse(id)
	if err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx, `DELETE FROM suppliers WHERE id=$1`, uid)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return fmt.Errorf("supplier %s not found", id)
	}
	return nil
}

// ---- Item ----

type itemPostgres struct{ db *sql.DB }

func NewItemPostgresRepository(db *sql.DB) ItemRepository { return &itemPostgres{db: db} }

func (r *itemPostgres) Create(ctx context.Context, i *Item) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO items (id, name, description, category_id, supplier_id)
		VALUES ($1,$2,$3,$4,$5)`,
		i.ID, i.Name, i.Description, i.CategoryID, i.SupplierID)
	return err
}

func (r *itemPostgres) GetByID(ctx context.Context, id string) (*Item, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, err
	}
	return scanItem(r.db.QueryRowContext(ctx, `
		SELECT id, name, description, category_id, supplier_id, created_at, updated_at
		FROM items WHERE id=$1`, uid))
}

func (r *itemPostgres) List(ctx context.Context, categoryID string) ([]*Item, error) {
	query := `SELECT id, name, description, category_id, supplier_id, created_at, updated_at
	          FROM items`
	var args []interface{}
	if categoryID != "" {
		cid, err := uuid.Parse(categoryID)
		if err != nil {
			return nil, err
		}
		query += ` WHERE category_id=$1`
		args = append(args, cid)
	}
	query += ` ORDER BY name ASC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*Item
	for rows.Next() {
		i := &Item{}
		var supplierID sql.NullString
		if err := rows.Scan(&i.ID, &i.Name, &i.Description, &i.CategoryID,
			&supplierID, &i.CreatedAt, &i.UpdatedAt); err != nil {
			return nil, err
		}
		if supplierID.Valid {
			sid, _ := uuid.Parse(supplierID.String)
			i.SupplierID = &sid
		}
		items = append(items, i)
	}
	return items, rows.Err()
}

func (r *itemPostgres) Update(ctx context.Context, i *Item) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE items SET name=$1, description=$2, category_id=$3, supplier_id=$4, updated_at=$5
		WHERE id=$6`,
		i.Name, i.Description, i.CategoryID, i.SupplierID, time.Now(), i.ID)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return fmt.Errorf("item %s not found", i.ID)
	}
	return nil
}

func (r *itemPostgres) Delete(ctx context.Context, id string) error {
	uid, err := uuid.Parse(id)
	if err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx, `DELETE FROM items WHERE id=$1`, uid)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return fmt.Errorf("item %s not found", id)
	}
	return nil
}

func scanItem(row *sql.Row) (*Item, error) {
	i := &Item{}
	var supplierID sql.NullString
	err := row.Scan(&i.ID, &i.Name, &i.Description, &i.CategoryID,
		&supplierID, &i.CreatedAt, &i.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if supplierID.Valid {
		sid, _ := uuid.Parse(supplierID.String)
		i.SupplierID = &sid
	}
	return i, nil
}
