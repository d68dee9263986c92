package stock

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/google/uuid"
	_ "github.com/lib/pq"
)

type nopSink struct{}

func (nopSink) Log(_ context.Context, _, _ string, _ interface{}) {}

// testDB opens the database named by DATABASE_URL and skips the test when
// it is not reachable, so the suite stays runnable without infrastructure.
func testDB(t *testing.T) *sql.DB {
	t.Helper()
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		t.Skip("DATABASE_URL not set, skipping ledger integration test")
	}
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		t.Skipf("Postgres not available: %v", err)
	}
	if err := db.Ping(); err != nil {
		t.Skipf("Postgres not available: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

// seedLevel creates the category/item/office chain plus one ledger row and
// registers cleanup in reverse order.
func seedLevel(t *testing.T, db *sql.DB, quantity int) (itemID, officeID uuid.UUID) {
	t.Helper()
	ctx := context.Background()

	categoryID := uuid.New()
	itemID = uuid.New()
	officeID = uuid.New()
	levelID := uuid.New()
	suffix := levelID.String()[:8]

	steps := []struct {
		query string
		args  []interface{}
	}{
		{`INSERT INTO categories (id, name) VALUES ($1,$2)`,
			[]interface{}{categoryID, "test-category-" + suffix}},
		{`INSERT INTO items (id, name, category_id) VALUES ($1,$2,$3)`,
			[]interface{}{itemID, "test-item-" + suffix, categoryID}},
		{`INSERT INTO offices (id, name) VALUES ($1,$2)`,
			[]interface{}{officeID, "test-office-" + suffix}},
		{`INSERT INTO stock_levels (id, item_id, office_id, quantity) VALUES ($1,$2,$3,$4)`,
			[]interface{}{levelID, itemID, officeID, quantity}},
	}
	for _, s := range steps {
		if _, err := db.ExecContext(ctx, s.query, s.args...); err != nil {
			t.Fatalf("seeding ledger row: %v", err)
		}
	}
	t.Cleanup(func() {
		db.ExecContext(ctx, `DELETE FROM stock_levels WHERE id=$1`, levelID)
		db.ExecContext(ctx, `DELETE FROM items WHERE id=$1`, itemID)
		db.ExecContext(ctx, `DELETE FROM offices WHERE id=$1`, officeID)
		db.ExecContext(ctx, `DELETE FROM categories WHERE id=$1`, categoryID)
	})
	return itemID, officeID
}

func currentQuantity(t *testing.T, db *sql.DB, itemID, officeID uuid.UUID) int {
	t.Helper()
	var qty int
	err := db.QueryRowContext(context.Background(),
		`SELECT quantity FROM stock_levels WHERE item_id=$1 AND office_id=$2`,
		itemID, officeID).Scan(&qty)
	if err != nil {
		t.Fatalf("reading quantity: %v", err)
	}
	return qty
}

func TestAdjust_DecrementAndIncrement(t *testing.T) {
	db := testDB(t)
	itemID, officeID := seedLevel(t, db, 10)
	adj := NewAdjuster(nopSink{})
	ctx := context.Background()

	if err := adj.Adjust(ctx, db, itemID, officeID, -4, "test decrement"); err != nil {
		t.Fatalf("decrement failed: %v", err)
	}
	if got := currentQuantity(t, db, itemID, officeID); got != 6 {
		t.Errorf("expected 6 after decrement, got %d", got)
	}

	if err := adj.Adjust(ctx, db, itemID, officeID, 3, "test increment"); err != nil {
		t.Fatalf("increment failed: %v", err)
	}
	if got := currentQuantity(t, db, itemID, officeID); got != 9 {
		t.Errorf("expected 9 after increment, got %d", got)
	}
}

func TestAdjust_InsufficientStock(t *testing.T) {
	db := testDB(t)
	itemID, officeID := seedLevel(t, db, 2)
	adj := NewAdjuster(nopSink{})

	err := adj.Adjust(context.Background(), db, itemID, officeID, -5, "test overdraw")
	if !errors.Is(err, ErrInsufficientStock) {
		t.Fatalf("expected ErrInsufficientStock, got %v", err)
	}
	if got := currentQuantity(t, db, itemID, officeID); got != 2 {
		t.Errorf("quantity changed on rejected decrement: %d", got)
	}
}

func TestAdjust_ExactDrain(t *testing.T) {
	db := testDB(t)
	itemID, officeID := seedLevel(t, db, 5)
	adj := NewAdjuster(nopSink{})

	if err := adj.Adjust(context.Background(), db, itemID, officeID, -5, "test drain"); err != nil {
		t.Fatalf("drain to zero should succeed: %v", err)
	}
	if got := currentQuantity(t, db, itemID, officeID); got != 0 {
		t.Errorf("expected 0, got %d", got)
	}
}

func TestAdjust_RowNotFound(t *testing.T) {
	db := testDB(t)
	adj := NewAdjuster(nopSink{})
	ctx := context.Background()

	for _, delta := range []int{-1, 1} {
		err := adj.Adjust(ctx, db, uuid.New(), uuid.New(), delta, "test missing row")
		if !errors.Is(err, ErrRowNotFound) {
			t.Errorf("delta %d: expected ErrRowNotFound, got %v", delta, err)
		}
	}
}

func TestAdjust_ConcurrentDecrementsNeverGoNegative(t *testing.T) {
	db := testDB(t)
	itemID, officeID := seedLevel(t, db, 10)
	adj := NewAdjuster(nopSink{})

	const workers = 25
	var success, rejected atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := adj.Adjust(context.Background(), db, itemID, officeID, -1, "test race")
			switch {
			case err == nil:
				success.Add(1)
			case errors.Is(err, ErrInsufficientStock):
				rejected.Add(1)
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	if success.Load() != 10 {
		t.Errorf("expected exactly 10 successful decrements, got %d", success.Load())
	}
	if rejected.Load() != workers-10 {
		t.Errorf("expected %d rejections, got %d", workers-10, rejected.Load())
	}
	if got := currentQuantity(t, db, itemID, officeID); got != 0 {
		t.Errorf("expected quantity 0, got %d", got)
	}
}

func TestAdjust_InsideTransactionRollsBack(t *testing.T) {
	db := testDB(t)
	itemID, officeID := seedLevel(t, db, 10)
	adj := NewAdjuster(nopSink{})
	ctx := context.Background()

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		t.Fatalf("begin: %v", err)
	}
	if err := adj.Adjust(ctx, tx, itemID, officeID, -7, "test rollback"); err != nil {
		tx.Rollback()
		t.Fatalf("decrement inside tx failed: %v", err)
	}
	if err := tx.Rollback(); err != nil {
		t.Fatalf("rollback: %v", err)
	}

	if got := currentQuantity(t, db, itemID, officeID); got != 10 {
		t.Errorf("rollback did not restore quantity: got %d, want 10", got)
	}
}

func TestAdjust_AuditedOnSuccessOnly(t *testing.T) {
	db := testDB(t)
	itemID, officeID := seedLevel(t, db, 3)

	sink := &countingSink{}
	adj := NewAdjuster(sink)
	ctx := context.Background()

	if err := adj.Adjust(ctx, db, itemID, officeID, -1, "test audit"); err != nil {
		t.Fatalf("decrement failed: %v", err)
	}
	if err := adj.Adjust(ctx, db, itemID, officeID, -10, "test audit"); !errors.Is(err, ErrInsufficientStock) {
		t.Fatalf("expected ErrInsufficientStock, got %v", err)
	}
	if n := sink.count.Load(); n != 1 {
		t.Errorf("expected 1 audit event, got %d", n)
	}
}

type countingSink struct{ count atomic.Int32 }

func (s *countingSink) Log(_ context.Context, _, _ string, _ interface{}) { s.count.Add(1) }
