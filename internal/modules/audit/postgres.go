package audit

import (
	"context"
	"database/sql"
	"fmt"
)

type postgresRepo struct{ db *sql.DB }

// NewPostgresRepository creates an audit repository backed by Postgres.
func NewPostgresRepository(db *sql.DB) Repository { return &postgresRepo{db: db} }

func (r *postgresRepo) Insert(ctx context.Context, e *Entry) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO audit_logs (id, actor_id, action, entity, entity_id, payload, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7)`,
		e.ID, nullableString(e.ActorID), e.Action,
		nullableString(e.Entity), nullableString(e.EntityID),
		nullableBytes(e.Payload), e.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert audit entry: %w", err)
	}
	return nil
}

func (r *postgresRepo) List(ctx context.Context, f Filter) ([]*Entry, error) {
	query := `SELECT id, actor_id, action, entity, entity_id, payload, created_at
	          FROM audit_logs WHERE 1=1`
	var args []interface{}
	n := 0
	add := func(clause string, v interface{}) {
		n++
		query += fmt.Sprintf(" AND %s$%d", clause, n)
		args = append(args, v)
	}

	if f.ActorID != "" {
		add("actor_id=", f.ActorID)
	}
	if f.Action != "" {
		add("action=", f.Action)
	}
	if f.Entity != "" {
		add("entity=", f.Entity)
	}
	if !f.Since.IsZero() {
		add("created_at>=", f.Since)
	}
	if !f.Until.IsZero() {
		add("created_at<=", f.Until)
	}

	query += " ORDER BY created_at DESC"
	limit := f.Limit
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	n++
	query += fmt.Sprintf(" LIMIT $%d", n)
	args = append(args, limit)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*Entry
	for rows.Next() {
		e := &Entry{}
		var actor, entity, entityID sql.NullString
		var payload []byte
		if err := rows.Scan(&e.ID, &actor, &e.Action, &entity, &entityID, &payload, &e.CreatedAt); err != nil {
			return nil, err
		}
		e.ActorID = actor.String
		e.Entity = entity.String
		e.EntityID = entityID.String
		e.Payload = payload
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func nullableString(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

func nullableBytes(b []byte) interface{} {
	if len(b) == 0 {
		return nil
	}
	return b
}
