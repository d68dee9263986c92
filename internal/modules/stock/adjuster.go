package stock

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/stationeryhq/stationery-backend/internal/modules/audit"
)

var (
	// ErrInsufficientStock means a decrement would have driven the row
	// below zero. The conditional update matched no row, so nothing changed.
	ErrInsufficientStock = errors.New("insufficient stock")

	// ErrRowNotFound means no ledger row exists for the item/office pair.
	ErrRowNotFound = errors.New("stock row not found")
)

// DBTX is the subset of database/sql shared by *sql.DB and *sql.Tx, so an
// adjustment can run standalone or inside a caller's transaction.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// Adjuster applies one signed delta to one ledger row. It is the only
// code path allowed to change a stock quantity: the guard in its UPDATE
// is what keeps the ledger non-negative under concurrent writers.
type Adjuster interface {
	Adjust(ctx context.Context, db DBTX, itemID, officeID uuid.UUID, delta int, reason string) error
}

type adjuster struct {
	sink audit.Sink
}

// NewAdjuster creates the ledger adjustment service. Every successful
// adjustment emits one StockAdjusted audit record through the sink.
func NewAdjuster(sink audit.Sink) Adjuster { return &adjuster{sink: sink} }

func (a *adjuster) Adjust(ctx context.Context, db DBTX, itemID, officeID uuid.UUID, delta int, reason string) error {
	// Single conditional write: a decrement only matches when enough
	// stock remains, so a concurrent decrement that would go negative
	// affects zero rows instead of clamping.
	res, err := db.ExecContext(ctx, `
		UPDATE stock_levels
		SET quantity = quantity + $3, updated_at = NOW()
		WHERE item_id = $1 AND office_id = $2 AND ($3 >= 0 OR quantity >= -$3)`,
		itemID, officeID, delta)
	if err != nil {
		return fmt.Errorf("adjust stock: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("adjust stock: %w", err)
	}
	if affected == 0 {
		if delta >= 0 {
			return ErrRowNotFound
		}
		// Distinguish "no such row" from "row exists but guard tripped".
		var exists bool
		err := db.QueryRowContext(ctx, `
			SELECT EXISTS (SELECT 1 FROM stock_levels WHERE item_id=$1 AND office_id=$2)`,
			itemID, officeID).Scan(&exists)
		if err != nil {
			return fmt.Errorf("adjust stock: %w", err)
		}
		if !exists {
			return ErrRowNotFound
		}
		return ErrInsufficientStock
	}

	a.sink.Log(ctx, "", "StockAdjusted", map[string]interface{}{
		"item_id":   itemID,
		"office_id": officeID,
		"delta":     delta,
		"reason":    reason,
	})
	return nil
}
