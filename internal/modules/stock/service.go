package stock

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/stationeryhq/stationery-backend/internal/modules/audit"
)

// Service defines ledger management and the replenishment read path.
type Service interface {
	CreateLevel(ctx context.Context, req CreateLevelRequest, actorID string) (*Level, error)
	GetLevel(ctx context.Context, id string) (*Level, error)
	ListLevels(ctx context.Context, officeID, itemID string) ([]*Level, error)
	SetThreshold(ctx context.Context, id string, threshold *int, actorID string) error
	DeleteLevel(ctx context.Context, id string, actorID string) error

	// Suggestions lists low-stock rows with a suggested order quantity.
	// minShortage, when positive, keeps only rows short by at least that much.
	Suggestions(ctx context.Context, officeName string, minShortage int) ([]*Suggestion, error)
}

type service struct {
	repo Repository
	sink audit.Sink
}

// NewService creates a new stock service.
func NewService(repo Repository, sink audit.Sink) Service {
	return &service{repo: repo, sink: sink}
}

func (s *service) CreateLevel(ctx context.Context, req CreateLevelRequest, actorID string) (*Level, error) {
	itemID, err := uuid.Parse(req.ItemID)
	if err != nil {
		return nil, fmt.Errorf("invalid item_id: %w", err)
	}
	officeID, err := uuid.Parse(req.OfficeID)
	if err != nil {
		return nil, fmt.Errorf("invalid office_id: %w", err)
	}
	if req.Quantity < 0 {
		return nil, fmt.Errorf("quantity must not be negative")
	}
	if req.ReorderThreshold != nil && *req.ReorderThreshold < 0 {
		return nil, fmt.Errorf("reorder_threshold must not be negative")
	}

	l := &Level{
		ID:               uuid.New(),
		ItemID:           itemID,
		OfficeID:         officeID,
		Quantity:         req.Quantity,
		ReorderThreshold: req.ReorderThreshold,
	}
	if err := s.repo.Create(ctx, l); err != nil {
		return nil, err
	}
	s.sink.Log(ctx, actorID, "StockLevelCreated", map[string]interface{}{
		"stock_level_id": l.ID,
		"item_id":        l.ItemID,
		"office_id":      l.OfficeID,
		"quantity":       l.Quantity,
	})
	return l, nil
}

func (s *service) GetLevel(ctx context.Context, id string) (*Level, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) ListLevels(ctx context.Context, officeID, itemID string) ([]*Level, error) {
	return s.repo.List(ctx, officeID, itemID)
}

func (s *service) SetThreshold(ctx context.Context, id string, threshold *int, actorID string) error {
	if threshold != nil && *threshold < 0 {
		return fmt.Errorf("reorder_threshold must not be negative")
	}
	if err := s.repo.SetThreshold(ctx, id, threshold); err != nil {
		return err
	}
	s.sink.Log(ctx, actorID, "StockThresholdChanged", map[string]interface{}{
		"stock_level_id": id,
		"threshold":      threshold,
	})
	return nil
}

func (s *service) DeleteLevel(ctx context.Context, id string, actorID string) error {
	if err := s.repo.DeleteIfEmpty(ctx, id); err != nil {
		return err
	}
	s.sink.Log(ctx, actorID, "StockLevelDeleted", map[string]interface{}{
		"stock_level_id": id,
	})
	return nil
}

func (s *service) Suggestions(ctx context.Context, officeName string, minShortage int) ([]*Suggestion, error) {
	rows, err := s.repo.LowStock(ctx, officeName)
	if err != nil {
		return nil, err
	}

	suggestions := make([]*Suggestion, 0, len(rows))
	for _, sg := range rows {
		if minShortage > 0 && sg.ReorderThreshold-sg.Quantity < minShortage {
			continue
		}
		qty := 2*sg.ReorderThreshold - sg.Quantity
		if qty < 0 {
			qty = 0
		}
		sg.SuggestedOrderQty = qty
		suggestions = append(suggestions, sg)
	}
	return suggestions, nil
}
