package issuance

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/stationeryhq/stationery-backend/internal/modules/audit"
	"github.com/stationeryhq/stationery-backend/internal/modules/request"
)

// Service is the stock mutation engine: it converts an approved request
// into an issue (stock decrement) and allows returns (stock increment,
// bounded by what was issued). Each operation runs inside one database
// transaction; the ledger's conditional update is the only concurrency
// primitive.
type Service interface {
	CreateIssue(ctx context.Context, in CreateIssueInput, actorID string) (*Issue, error)
	CreateReturn(ctx context.Context, in CreateReturnInput, actorID string) (*Return, error)

	GetIssue(ctx context.Context, id string) (*Issue, error)
	GetIssueByRequest(ctx context.Context, requestID string) (*Issue, error)
	GetReturn(ctx context.Context, id string) (*Return, error)
	ListReturnsByIssue(ctx context.Context, issueID string) ([]*Return, error)
}

type service struct {
	store Store
	sink  audit.Sink
}

// NewService creates the mutation engine.
func NewService(store Store, sink audit.Sink) Service {
	return &service{store: store, sink: sink}
}

// parsedLine is a validated input line.
type parsedLine struct {
	itemID   uuid.UUID
	quantity int
}

func parseLines(lines []LineInput) ([]parsedLine, error) {
	if len(lines) == 0 {
		return nil, fmt.Errorf("%w: at least one line is required", ErrInvalidQuantity)
	}
	parsed := make([]parsedLine, 0, len(lines))
	for _, l := range lines {
		itemID, err := uuid.Parse(l.ItemID)
		if err != nil {
			return nil, fmt.Errorf("invalid item_id %q: %w", l.ItemID, err)
		}
		if l.Quantity <= 0 {
			return nil, ErrInvalidQuantity
		}
		parsed = append(parsed, parsedLine{itemID: itemID, quantity: l.Quantity})
	}
	return parsed, nil
}

func (s *service) CreateIssue(ctx context.Context, in CreateIssueInput, actorID string) (*Issue, error) {
	requestID, err := uuid.Parse(in.RequestID)
	if err != nil {
		return nil, fmt.Errorf("invalid request_id: %w", err)
	}
	lines, err := parseLines(in.Lines)
	if err != nil {
		return nil, err
	}

	var issue *Issue
	err = s.store.InTx(ctx, func(tx Tx) error {
		req, err := tx.Request(ctx, requestID)
		if err != nil {
			return err
		}
		// Stored statuses are canonical, but legacy rows may carry any
		// casing; parse instead of comparing raw.
		status, perr := request.ParseStatus(string(req.Status))
		if perr != nil || status != request.StatusApproved {
			return ErrRequestNotApproved
		}

		issued, err := tx.HasIssueForRequest(ctx, requestID)
		if err != nil {
			return err
		}
		if issued {
			return ErrAlreadyIssued
		}

		officeID, err := tx.ResolveOfficeID(ctx, req.Office)
		if err != nil {
			return err
		}

		// Decrement per line, in submitted order. Any failure aborts the
		// transaction, so issuance is all-or-nothing across lines.
		for _, line := range lines {
			reason := fmt.Sprintf("Issue for request %s", requestID)
			if err := tx.Adjust(ctx, line.itemID, officeID, -line.quantity, reason); err != nil {
				return err
			}
		}

		issue = &Issue{
			ID:             uuid.New(),
			RequestID:      requestID,
			IssuedBy:       actorID,
			IdempotencyKey: in.IdempotencyKey,
			IssuedAt:       time.Now().UTC(),
		}
		for _, line := range lines {
			issue.Lines = append(issue.Lines, &IssueLine{
				ID:       uuid.New(),
				IssueID:  issue.ID,
				ItemID:   line.itemID,
				Quantity: line.quantity,
			})
		}
		return tx.InsertIssue(ctx, issue)
	})
	if err != nil {
		return nil, err
	}

	s.sink.Log(ctx, actorID, "IssueCreated", map[string]interface{}{
		"issue_id":   issue.ID,
		"request_id": requestID,
		"lines":      in.Lines,
	})
	return issue, nil
}

func (s *service) CreateReturn(ctx context.Context, in CreateReturnInput, actorID string) (*Return, error) {
	issueID, err := uuid.Parse(in.IssueID)
	if err != nil {
		return nil, fmt.Errorf("invalid issue_id: %w", err)
	}
	lines, err := parseLines(in.Lines)
	if err != nil {
		return nil, err
	}

	var ret *Return
	err = s.store.InTx(ctx, func(tx Tx) error {
		issue, err := tx.IssueWithLines(ctx, issueID)
		if err != nil {
			return err
		}

		req, err := tx.Request(ctx, issue.RequestID)
		if err != nil {
			return err
		}
		officeID, err := tx.ResolveOfficeID(ctx, req.Office)
		if err != nil {
			return err
		}

		issuedQty := make(map[uuid.UUID]int, len(issue.Lines))
		for _, l := range issue.Lines {
			issuedQty[l.ItemID] += l.Quantity
		}
		alreadyReturned, err := tx.ReturnedQuantities(ctx, issueID)
		if err != nil {
			return err
		}

		// All lines are validated against the issued totals before any
		// ledger increment runs.
		pending := make(map[uuid.UUID]int, len(lines))
		for _, line := range lines {
			pending[line.itemID] += line.quantity
			if alreadyReturned[line.itemID]+pending[line.itemID] > issuedQty[line.itemID] {
				return ErrExceedsIssued
			}
		}

		for _, line := range lines {
			reason := fmt.Sprintf("Return for issue %s", issueID)
			if err := tx.Adjust(ctx, line.itemID, officeID, line.quantity, reason); err != nil {
				return err
			}
		}

		ret = &Return{
			ID:         uuid.New(),
			IssueID:    issueID,
			ReturnedBy: actorID,
			ReturnedAt: time.Now().UTC(),
		}
		for _, line := range lines {
			ret.Lines = append(ret.Lines, &ReturnLine{
				ID:       uuid.New(),
				ReturnID: ret.ID,
				ItemID:   line.itemID,
				Quantity: line.quantity,
			})
		}
		return tx.InsertReturn(ctx, ret)
	})
	if err != nil {
		return nil, err
	}

	s.sink.Log(ctx, actorID, "ReturnCreated", map[string]interface{}{
		"return_id": ret.ID,
		"issue_id":  issueID,
		"lines":     in.Lines,
	})
	return ret, nil
}

func (s *service) GetIssue(ctx context.Context, id string) (*Issue, error) {
	return s.store.GetIssue(ctx, id)
}

func (s *service) GetIssueByRequest(ctx context.Context, requestID string) (*Issue, error) {
	return s.store.GetIssueByRequest(ctx, requestID)
}

func (s *service) GetReturn(ctx context.Context, id string) (*Return, error) {
	return s.store.GetReturn(ctx, id)
}

func (s *service) ListReturnsByIssue(ctx context.Context, issueID string) ([]*Return, error) {
	return s.store.ListReturnsByIssue(ctx, issueID)
}
