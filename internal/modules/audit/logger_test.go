package audit

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
)

type memRepo struct {
	mu        sync.Mutex
	entries   []*Entry
	insertErr error
}

func (r *memRepo) Insert(_ context.Context, e *Entry) error {
	if r.insertErr != nil {
		return r.insertErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, e)
	return nil
}

func (r *memRepo) List(_ context.Context, _ Filter) ([]*Entry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]*Entry(nil), r.entries...), nil
}

func TestLogger_PersistsEntry(t *testing.T) {
	repo := &memRepo{}
	logger := NewLogger(repo)

	logger.Log(context.Background(), "actor-1", "StockAdjusted", map[string]interface{}{
		"delta": -4,
	})

	if len(repo.entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(repo.entries))
	}
	e := repo.entries[0]
	if e.ActorID != "actor-1" || e.Action != "StockAdjusted" {
		t.Errorf("unexpected entry: %+v", e)
	}
	var payload map[string]int
	if err := json.Unmarshal(e.Payload, &payload); err != nil {
		t.Fatalf("payload not valid JSON: %v", err)
	}
	if payload["delta"] != -4 {
		t.Errorf("expected delta -4 in payload, got %v", payload)
	}
}

func TestLogger_NilPayload(t *testing.T) {
	repo := &memRepo{}
	logger := NewLogger(repo)

	logger.Log(context.Background(), "actor-1", "RequestDecided", nil)

	if len(repo.entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(repo.entries))
	}
	if repo.entries[0].Payload != nil {
		t.Errorf("expected empty payload, got %s", repo.entries[0].Payload)
	}
}

func TestLogger_SwallowsRepositoryFailure(t *testing.T) {
	repo := &memRepo{insertErr: errors.New("connection refused")}
	logger := NewLogger(repo)

	// Must not panic or propagate: losing an audit record never fails
	// the business mutation that produced it.
	logger.Log(context.Background(), "actor-1", "IssueCreated", map[string]string{"k": "v"})
}

func TestLogger_SurvivesCancelledContext(t *testing.T) {
	repo := &memRepo{}
	logger := NewLogger(repo)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	logger.Log(ctx, "actor-1", "ReturnCreated", map[string]string{"k": "v"})

	if len(repo.entries) != 1 {
		t.Fatalf("expected entry despite cancelled context, got %d", len(repo.entries))
	}
}

func TestLogger_UnserializablePayloadDropped(t *testing.T) {
	repo := &memRepo{}
	logger := NewLogger(repo)

	logger.Log(context.Background(), "actor-1", "Bad", map[string]interface{}{
		"ch": make(chan int),
	})

	if len(repo.entries) != 0 {
		t.Fatalf("expected no entry for unserializable payload, got %d", len(repo.entries))
	}
}
