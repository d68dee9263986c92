package audit

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/google/uuid"
)

// Sink receives audit events from the rest of the system. Implementations
// must be best-effort: a failed write may never surface to the caller,
// because losing an audit record must not fail a committed business
// mutation.
type Sink interface {
	Log(ctx context.Context, actorID, action string, payload interface{})
}

// Logger is the default Sink. It serializes the payload and persists it
// through the repository; failures are written to the process log and
// swallowed.
type Logger struct {
	repo Repository
}

// NewLogger creates an audit logger backed by the given repository.
func NewLogger(repo Repository) *Logger { return &Logger{repo: repo} }

func (l *Logger) Log(ctx context.Context, actorID, action string, payload interface{}) {
	var raw json.RawMessage
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			log.Printf("audit: marshal payload for %q: %v", action, err)
			return
		}
		raw = b
	}

	e := &Entry{
		ID:        uuid.New(),
		ActorID:   actorID,
		Action:    action,
		Payload:   raw,
		CreatedAt: time.Now().UTC(),
	}

	// The caller's context may already be cancelled (audit runs after
	// commit); the record should still be attempted.
	if err := l.repo.Insert(context.WithoutCancel(ctx), e); err != nil {
		log.Printf("audit: insert %q: %v", action, err)
	}
}
