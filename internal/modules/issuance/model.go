package issuance

import (
	"time"

	"github.com/google/uuid"

	"github.com/stationeryhq/stationery-backend/internal/modules/request"
)

// Issue records the one-time fulfillment of an approved request: stock was
// decremented at the request's office for every line. Immutable once created.
type Issue struct {
	ID             uuid.UUID    `json:"id"`
	RequestID      uuid.UUID    `json:"request_id"`
	IssuedBy       string       `json:"issued_by"`
	IdempotencyKey string       `json:"idempotency_key,omitempty"`
	IssuedAt       time.Time    `json:"issued_at"`
	Lines          []*IssueLine `json:"lines"`
}

// IssueLine is one item/quantity pair within an issue.
type IssueLine struct {
	ID       uuid.UUID `json:"id"`
	IssueID  uuid.UUID `json:"issue_id"`
	ItemID   uuid.UUID `json:"item_id"`
	Quantity int       `json:"quantity"`
}

// Return records stock handed back against an issue. Several partial
// returns may reference one issue; per item, the returned total can never
// exceed the issued total.
type Return struct {
	ID         uuid.UUID     `json:"id"`
	IssueID    uuid.UUID     `json:"issue_id"`
	ReturnedBy string        `json:"returned_by"`
	ReturnedAt time.Time     `json:"returned_at"`
	Lines      []*ReturnLine `json:"lines"`
}

// ReturnLine is one item/quantity pair within a return.
type ReturnLine struct {
	ID       uuid.UUID `json:"id"`
	ReturnID uuid.UUID `json:"return_id"`
	ItemID   uuid.UUID `json:"item_id"`
	Quantity int       `json:"quantity"`
}

// LineInput is one requested item/quantity pair.
type LineInput struct {
	ItemID   string `json:"item_id"`
	Quantity int    `json:"quantity"`
}

// CreateIssueInput is the payload for issuing against a request. The
// idempotency key is recorded on the issue; the one-issue-per-request
// uniqueness is the guarantee that actually dedupes retries.
type CreateIssueInput struct {
	RequestID      string      `json:"request_id"`
	Lines          []LineInput `json:"lines"`
	IdempotencyKey string      `json:"idempotency_key,omitempty"`
}

// CreateReturnInput is the payload for returning against an issue.
type CreateReturnInput struct {
	IssueID string      `json:"issue_id"`
	Lines   []LineInput `json:"lines"`
}

// RequestInfo is the narrow view of a request the engine needs: its
// approval state and the office name to resolve.
type RequestInfo struct {
	ID     uuid.UUID
	Status request.Status
	Office string
}
