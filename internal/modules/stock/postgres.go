package stock

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// ErrDuplicateLevel means a ledger row already exists for the pair.
var ErrDuplicateLevel = errors.New("stock level already exists for this item and office")

// ErrNotEmpty means a ledger row still holds stock and cannot be deleted.
var ErrNotEmpty = errors.New("stock level is not empty")

type postgresRepo struct{ db *sql.DB }

// NewPostgresRepository creates a ledger repository backed by Postgres.
func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

func (r *postgresRepo) Create(ctx context.Context, l *Level) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO stock_levels (id, item_id, office_id, quantity, reorder_threshold)
		VALUES ($1,$2,$3,$4,$5)`,
		l.ID, l.ItemID, l.OfficeID, l.Quantity, l.ReorderThreshold)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return ErrDuplicateLevel
		}
		return fmt.Errorf("insert stock level: %w", err)
	}
	return nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*Level, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, err
	}
	return scanLevel(r.db.QueryRowContext(ctx, `
		SELECT id, item_id, office_id, quantity, reorder_threshold, updated_at
		FROM stock_levels WHERE id=$1`, uid))
}

func (r *postgresRepo) GetByItemOffice(ctx context.Context, itemID, officeID string) (*Level, error) {
	iid, err := uuid.Parse(itemID)
	if err != nil {
		return nil, err
	}
	oid, err := uuid.Parse(officeID)
	if err != nil {
		return nil, err
	}
	return scanLevel(r.db.QueryRowContext(ctx, `
		SELECT id, item_id, office_id, quantity, reorder_threshold, updated_at
		FROM stock_levels WHERE item_id=$1 AND office_id=$2`, iid, oid))
}

func (r *postgresRepo) List(ctx context.Context, officeID, itemID string) ([]*Level, error) {
	query := `SELECT id, item_id, office_id, quantity, reorder_threshold, updated_at
	          FROM stock_levels WHERE 1=1`
	var args []interface{}
	if officeID != "" {
		oid, err := uuid.Parse(officeID)
		if err != nil {
			return nil, err
		}
		args = append(args, oid)
		query += fmt.Sprintf(" AND office_id=$%d", len(args))
	}
	if itemID != "" {
		iid, err := uuid.Parse(itemID)
		if err != nil {
			return nil, err
		}
		args = append(args, iid)
		query += fmt.Sprintf(" AND item_id=$%d", len(args))
	}
	query += " ORDER BY updated_at DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var levels []*Level
	for rows.Next() {
		l := &Level{}
		var threshold sql.NullInt64
		if err := rows.Scan(&l.ID, &l.ItemID, &l.OfficeID, &l.Quantity, &threshold, &l.UpdatedAt); err != nil {
			return nil, err
		}
		if threshold.Valid {
			t := int(threshold.Int64)
			l.ReorderThreshold = &t
		}
		levels = append(levels, l)
	}
	return levels, rows.Err()
}

func (r *postgresRepo) SetThreshold(ctx context.Context, id string, threshold *int) error {
	uid, err := uuid.Parse(id)
	if err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx, `
		UPDATE stock_levels SET reorder_threshold=$1, updated_at=NOW() WHERE id=$2`,
		threshold, uid)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return fmt.Errorf("stock level %s not found", id)
	}
	return nil
}

func (r *postgresRepo) DeleteIfEmpty(ctx context.Context, id string) error {
	uid, err := uuid.Parse(id)
	if err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx, `
		DELETE FROM stock_levels WHERE id=$1 AND quantity=0`, uid)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		var exists bool
		if err := r.db.QueryRowContext(ctx, `
			SELECT EXISTS (SELECT 1 FROM stock_levels WHERE id=$1)`, uid).Scan(&exists); err != nil {
			return err
		}
		if exists {
			return ErrNotEmpty
		}
		return fmt.Errorf("stock level %s not found", id)
	}
	return nil
}

func (r *postgresRepo) LowStock(ctx context.Context, officeName string) ([]*Suggestion, error) {
	query := `
		SELECT sl.id, sl.item_id, i.name, sl.office_id, o.name,
		       sl.quantity, sl.reorder_threshold, i.supplier_id, COALESCE(s.name, '')
		FROM stock_levels sl
		JOIN items i ON i.id = sl.item_id
		JOIN offices o ON o.id = sl.office_id
		LEFT JOIN suppliers s ON s.id = i.supplier_id
		WHERE COALESCE(sl.reorder_threshold, 0) > 0
		  AND sl.quantity <= COALESCE(sl.reorder_threshold, 0)`
	var args []interface{}
	if officeName != "" {
		args = append(args, officeName)
		query += " AND o.name = $1"
	}
	query += " ORDER BY o.name, i.name"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var suggestions []*Suggestion
	for rows.Next() {
		sg := &Suggestion{}
		var supplierID sql.NullString
		if err := rows.Scan(&sg.StockLevelID, &sg.ItemID, &sg.ItemName,
			&sg.OfficeID, &sg.OfficeName, &sg.Quantity, &sg.ReorderThreshold,
			&supplierID, &sg.SupplierName); err != nil {
			return nil, err
		}
		if supplierID.Valid {
			sid, _ := uuid.Parse(supplierID.String)
			sg.SupplierID = &sid
		}
		suggestions = append(suggestions, sg)
	}
	return suggestions, rows.Err()
}

func scanLevel(row *sql.Row) (*Level, error) {
	l := &Level{}
	var threshold sql.NullInt64
	err := row.Scan(&l.ID, &l.ItemID, &l.OfficeID, &l.Quantity, &threshold, &l.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if threshold.Valid {
		t := int(threshold.Int64)
		l.ReorderThreshold = &t
	}
	return l, nil
}
