package audit

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Entry is one durable audit record: who did what, to which entity,
// with the mutation details serialized as JSON.
type Entry struct {
	ID        uuid.UUID       `json:"id"`
	ActorID   string          `json:"actor_id,omitempty"`
	Action    string          `json:"action"`
	Entity    string          `json:"entity,omitempty"`
	EntityID  string          `json:"entity_id,omitempty"`
	Payload   json.RawMessage `json:"payload,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}

// Filter narrows an audit-log query. Zero values mean "no filter".
type Filter struct {
	ActorID string
	Action  string
	Entity  string
	Since   time.Time
	Until   time.Time
	Limit   int
}
