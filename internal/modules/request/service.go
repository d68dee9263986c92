package request

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/stationeryhq/stationery-backend/internal/modules/audit"
)

// Service defines request business logic.
type Service interface {
	CreateRequest(ctx context.Context, req CreateRequest, actorID string) (*Request, error)
	GetRequest(ctx context.Context, id string) (*Request, error)
	ListRequests(ctx context.Context, status, office string) ([]*Request, error)

	// Decide approves or rejects a pending request.
	Decide(ctx context.Context, id string, decision DecideRequest, actorID string) (*Request, error)
}

type service struct {
	repo Repository
	sink audit.Sink
}

// NewService creates a new request service.
func NewService(repo Repository, sink audit.Sink) Service {
	return &service{repo: repo, sink: sink}
}

func (s *service) CreateRequest(ctx context.Context, req CreateRequest, actorID string) (*Request, error) {
	if strings.TrimSpace(req.ItemName) == "" {
		return nil, fmt.Errorf("item_name is required")
	}
	if strings.TrimSpace(req.Office) == "" {
		return nil, fmt.Errorf("office is required")
	}
	if req.Quantity <= 0 {
		return nil, fmt.Errorf("quantity must be > 0")
	}

	r := &Request{
		ID:       uuid.New(),
		ItemName: req.ItemName,
		Quantity: req.Quantity,
		Office:   req.Office,
		Status:   StatusPending,
		Purpose:  req.Purpose,
	}
	if err := s.repo.Create(ctx, r); err != nil {
		return nil, err
	}
	s.sink.Log(ctx, actorID, "RequestCreated", map[string]interface{}{
		"request_id": r.ID,
		"item_name":  r.ItemName,
		"quantity":   r.Quantity,
		"office":     r.Office,
	})
	return r, nil
}

func (s *service) GetRequest(ctx context.Context, id string) (*Request, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) ListRequests(ctx context.Context, status, office string) ([]*Request, error) {
	var st Status
	if status != "" {
		parsed, err := ParseStatus(status)
		if err != nil {
			return nil, err
		}
		st = parsed
	}
	return s.repo.List(ctx, st, office)
}

func (s *service) Decide(ctx context.Context, id string, decision DecideRequest, actorID string) (*Request, error) {
	newStatus, err := ParseStatus(decision.Status)
	if err != nil {
		return nil, err
	}
	if newStatus != StatusApproved && newStatus != StatusRejected {
		return nil, fmt.Errorf("decision must be Approved or Rejected")
	}

	r, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("request not found: %w", err)
	}
	if r.Status != StatusPending {
		return nil, fmt.Errorf("request is already %s", strings.ToLower(string(r.Status)))
	}

	if err := s.repo.UpdateStatus(ctx, id, newStatus); err != nil {
		return nil, err
	}
	r.Status = newStatus

	s.sink.Log(ctx, actorID, "RequestDecided", map[string]interface{}{
		"request_id": r.ID,
		"status":     newStatus,
	})
	return r, nil
}
