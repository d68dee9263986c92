package issuance

import (
	"context"

	"github.com/google/uuid"
)

// Store provides transactional access to the state the mutation engine
// touches. InTx runs fn inside one database transaction: if fn returns an
// error the transaction rolls back and no ledger change survives; if fn
// succeeds the transaction commits.
type Store interface {
	InTx(ctx context.Context, fn func(tx Tx) error) error

	GetIssue(ctx context.Context, id string) (*Issue, error)
	GetIssueByRequest(ctx context.Context, requestID string) (*Issue, error)
	GetReturn(ctx context.Context, id string) (*Return, error)
	ListReturnsByIssue(ctx context.Context, issueID string) ([]*Return, error)
}

// Tx is the set of operations available inside one engine transaction.
// All reads observe, and all writes join, the same transaction.
type Tx interface {
	// Request returns the narrow request view, or ErrRequestNotFound.
	Request(ctx context.Context, id uuid.UUID) (*RequestInfo, error)

	// HasIssueForRequest reports whether an issue already references the request.
	HasIssueForRequest(ctx context.Context, requestID uuid.UUID) (bool, error)

	// ResolveOfficeID maps an office name to its id, or ErrOfficeNotFound.
	ResolveOfficeID(ctx context.Context, name string) (uuid.UUID, error)

	// IssueWithLines loads an issue and its lines, or ErrIssueNotFound.
	IssueWithLines(ctx context.Context, id uuid.UUID) (*Issue, error)

	// ReturnedQuantities sums, per item, everything already returned
	// against the issue.
	ReturnedQuantities(ctx context.Context, issueID uuid.UUID) (map[uuid.UUID]int, error)

	// Adjust applies one signed delta to the (item, office) ledger row
	// through the atomic adjustment service, inside this transaction.
	Adjust(ctx context.Context, itemID, officeID uuid.UUID, delta int, reason string) error

	// InsertIssue persists the aggregate; a concurrent issue for the same
	// request loses here with ErrAlreadyIssued (unique index tie-break).
	InsertIssue(ctx context.Context, issue *Issue) error

	// InsertReturn persists the aggregate.
	InsertReturn(ctx context.Context, ret *Return) error
}
