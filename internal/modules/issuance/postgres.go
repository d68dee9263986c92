package issuance

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/stationeryhq/stationery-backend/internal/modules/stock"
)

type postgresStore struct {
	db     *sql.DB
	adjust stock.Adjuster
}

// NewPostgresStore creates the engine's transactional store. The adjuster
// is injected so every ledger write inside an engine transaction goes
// through the same guarded code path as everywhere else.
func NewPostgresStore(db *sql.DB, adjust stock.Adjuster) Store {
	return &postgresStore{db: db, adjust: adjust}
}

func (s *postgresStore) InTx(ctx context.Context, fn func(tx Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if err := fn(&postgresTx{tx: tx, adjust: s.adjust}); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *postgresStore) GetIssue(ctx context.Context, id string) (*Issue, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, ErrIssueNotFound
	}
	return loadIssue(ctx, s.db, `WHERE id=$1`, uid)
}

func (s *postgresStore) GetIssueByRequest(ctx context.Context, requestID string) (*Issue, error) {
	uid, err := uuid.Parse(requestID)
	if err != nil {
		return nil, ErrIssueNotFound
	}
	return loadIssue(ctx, s.db, `WHERE request_id=$1`, uid)
}

func (s *postgresStore) GetReturn(ctx context.Context, id string) (*Return, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("return not found")
	}
	ret := &Return{}
	err = s.db.QueryRowContext(ctx, `
		SELECT id, issue_id, returned_by, returned_at FROM returns WHERE id=$1`, uid).
		Scan(&ret.ID, &ret.IssueID, &ret.ReturnedBy, &ret.ReturnedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("return not found")
	}
	if err != nil {
		return nil, err
	}
	ret.Lines, err = listReturnLines(ctx, s.db, ret.ID)
	return ret, err
}

func (s *postgresStore) ListReturnsByIssue(ctx context.Context, issueID string) ([]*Return, error) {
	uid, err := uuid.Parse(issueID)
	if err != nil {
		return nil, ErrIssueNotFound
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, issue_id, returned_by, returned_at
		FROM returns WHERE issue_id=$1 ORDER BY returned_at ASC`, uid)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var returns []*Return
	for rows.Next() {
		ret := &Return{}
		if err := rows.Scan(&ret.ID, &ret.IssueID, &ret.ReturnedBy, &ret.ReturnedAt); err != nil {
			return nil, err
		}
		returns = append(returns, ret)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, ret := range returns {
		if ret.Lines, err = listReturnLines(ctx, s.db, ret.ID); err != nil {
			return nil, err
		}
	}
	return returns, nil
}

// ---- transaction-scoped operations ----

type postgresTx struct {
	tx     *sql.Tx
	adjust stock.Adjuster
}

func (t *postgresTx) Request(ctx context.Context, id uuid.UUID) (*RequestInfo, error) {
	info := &RequestInfo{}
	err := t.tx.QueryRowContext(ctx, `
		SELECT id, status, office FROM requests WHERE id=$1`, id).
		Scan(&info.ID, &info.Status, &info.Office)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRequestNotFound
	}
	if err != nil {
		return nil, err
	}
	return info, nil
}

func (t *postgresTx) HasIssueForRequest(ctx context.Context, requestID uuid.UUID) (bool, error) {
	var exists bool
	err := t.tx.QueryRowContext(ctx, `
		SELECT EXISTS (SELECT 1 FROM issues WHERE request_id=$1)`, requestID).Scan(&exists)
	return exists, err
}

func (t *postgresTx) ResolveOfficeID(ctx context.Context, name string) (uuid.UUID, error) {
	var id uuid.UUID
	err := t.tx.QueryRowContext(ctx, `SELECT id FROM offices WHERE name=$1`, name).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return uuid.Nil, ErrOfficeNotFound
	}
	if err != nil {
		return uuid.Nil, err
	}
	return id, nil
}

func (t *postgresTx) IssueWithLines(ctx context.Context, id uuid.UUID) (*Issue, error) {
	return loadIssue(ctx, t.tx, `WHERE id=$1`, id)
}

func (t *postgresTx) ReturnedQuantities(ctx context.Context, issueID uuid.UUID) (map[uuid.UUID]int, error) {
	rows, err := t.tx.QueryContext(ctx, `
		SELECT rl.item_id, COALESCE(SUM(rl.quantity), 0)
		FROM return_lines rl
		JOIN returns r ON r.id = rl.return_id
		WHERE r.issue_id = $1
		GROUP BY rl.item_id`, issueID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	returned := make(map[uuid.UUID]int)
	for rows.Next() {
		var itemID uuid.UUID
		var qty int
		if err := rows.Scan(&itemID, &qty); err != nil {
			return nil, err
		}
		returned[itemID] = qty
	}
	return returned, rows.Err()
}

func (t *postgresTx) Adjust(ctx context.Context, itemID, officeID uuid.UUID, delta int, reason string) error {
	return t.adjust.Adjust(ctx, t.tx, itemID, officeID, delta, reason)
}

func (t *postgresTx) InsertIssue(ctx context.Context, issue *Issue) error {
	_, err := t.tx.ExecContext(ctx, `
		INSERT INTO issues (id, request_id, issued_by, idempotency_key, issued_at)
		VALUES ($1,$2,$3,$4,$5)`,
		issue.ID, issue.RequestID, issue.IssuedBy,
		nullableString(issue.IdempotencyKey), issue.IssuedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return ErrAlreadyIssued
		}
		return fmt.Errorf("insert issue: %w", err)
	}

	for i, line := range issue.Lines {
		_, err := t.tx.ExecContext(ctx, `
			INSERT INTO issue_lines (id, issue_id, item_id, quantity, position)
			VALUES ($1,$2,$3,$4,$5)`,
			line.ID, issue.ID, line.ItemID, line.Quantity, i)
		if err != nil {
			return fmt.Errorf("insert issue line: %w", err)
		}
	}
	return nil
}

func (t *postgresTx) InsertReturn(ctx context.Context, ret *Return) error {
	_, err := t.tx.ExecContext(ctx, `
		INSERT INTO returns (id, issue_id, returned_by, returned_at)
		VALUES ($1,$2,$3,$4)`,
		ret.ID, ret.IssueID, ret.ReturnedBy, ret.ReturnedAt)
	if err != nil {
		return fmt.Errorf("insert return: %w", err)
	}

	for i, line := range ret.Lines {
		_, err := t.tx.ExecContext(ctx, `
			INSERT INTO return_lines (id, return_id, item_id, quantity, position)
			VALUES ($1,$2,$3,$4,$5)`,
			line.ID, ret.ID, line.ItemID, line.Quantity, i)
		if err != nil {
			return fmt.Errorf("insert return line: %w", err)
		}
	}
	return nil
}

// ---- helpers ----

type querier interface {
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

func loadIssue(ctx context.Context, q querier, where string, arg interface{}) (*Issue, error) {
	issue := &Issue{}
	var key sql.NullString
	err := q.QueryRowContext(ctx, `
		SELECT id, request_id, issued_by, idempotency_key, issued_at
		FROM issues `+where, arg).
		Scan(&issue.ID, &issue.RequestID, &issue.IssuedBy, &key, &issue.IssuedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrIssueNotFound
	}
	if err != nil {
		return nil, err
	}
	issue.IdempotencyKey = key.String

	rows, err := q.QueryContext(ctx, `
		SELECT id, issue_id, item_id, quantity
		FROM issue_lines WHERE issue_id=$1 ORDER BY position ASC`, issue.ID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		line := &IssueLine{}
		if err := rows.Scan(&line.ID, &line.IssueID, &line.ItemID, &line.Quantity); err != nil {
			return nil, err
		}
		issue.Lines = append(issue.Lines, line)
	}
	return issue, rows.Err()
}

func listReturnLines(ctx context.Context, q querier, returnID uuid.UUID) ([]*ReturnLine, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT id, return_id, item_id, quantity
		FROM return_lines WHERE return_id=$1 ORDER BY position ASC`, returnID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lines []*ReturnLine
	for rows.Next() {
		line := &ReturnLine{}
		if err := rows.Scan(&line.ID, &line.ReturnID, &line.ItemID, &line.Quantity); err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}
	return lines, rows.Err()
}

func nullableString(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
