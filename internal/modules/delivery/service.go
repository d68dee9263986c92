package delivery

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/stationeryhq/stationery-backend/internal/modules/audit"
	"github.com/stationeryhq/stationery-backend/internal/modules/catalog"
	"github.com/stationeryhq/stationery-backend/internal/modules/office"
)

// Service defines delivery business logic.
type Service interface {
	CreateDelivery(ctx context.Context, req CreateDeliveryRequest, actorID string) (*Delivery, error)
	GetDelivery(ctx context.Context, id string) (*Delivery, error)
	ListDeliveries(ctx context.Context, status, officeName string) ([]*Delivery, error)
	UpdateStatus(ctx context.Context, id, status string, arrivedAt *time.Time, actorID string) (*Delivery, error)
	DeleteDelivery(ctx context.Context, id string) error

	// RaiseFromSuggestions creates one Ordered delivery per accepted
	// replenishment line and reports how many were created.
	RaiseFromSuggestions(ctx context.Context, req RaiseRequest, actorID string) (int, error)
}

type service struct {
	repo       Repository
	itemRepo   catalog.ItemRepository
	officeRepo office.Repository
	sink       audit.Sink
}

// NewService creates a new delivery service.
func NewService(repo Repository, itemRepo catalog.ItemRepository, officeRepo office.Repository, sink audit.Sink) Service {
	return &service{repo: repo, itemRepo: itemRepo, officeRepo: officeRepo, sink: sink}
}

func (s *service) CreateDelivery(ctx context.Context, req CreateDeliveryRequest, actorID string) (*Delivery, error) {
	if strings.TrimSpace(req.Product) == "" {
		return nil, fmt.Errorf("product is required")
	}
	if strings.TrimSpace(req.Office) == "" {
		return nil, fmt.Errorf("office is required")
	}
	scheduled := req.ScheduledAt
	if scheduled.IsZero() {
		scheduled = time.Now().UTC().AddDate(0, 0, 7)
	}

	d := &Delivery{
		ID:          uuid.New(),
		Product:     req.Product,
		Office:      req.Office,
		Status:      StatusOrdered,
		ScheduledAt: scheduled,
	}
	if req.SupplierID != "" {
		sid, err := uuid.Parse(req.SupplierID)
		if err != nil {
			return nil, fmt.Errorf("invalid supplier_id: %w", err)
		}
		d.SupplierID = &sid
	}
	if err := s.repo.Create(ctx, d); err != nil {
		return nil, err
	}
	s.sink.Log(ctx, actorID, "DeliveryCreated", map[string]interface{}{
		"delivery_id": d.ID,
		"product":     d.Product,
		"office":      d.Office,
	})
	return d, nil
}

func (s *service) GetDelivery(ctx context.Context, id string) (*Delivery, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) ListDeliveries(ctx context.Context, status, officeName string) ([]*Delivery, error) {
	var st Status
	if status != "" {
		parsed, err := ParseStatus(status)
		if err != nil {
			return nil, err
		}
		st = parsed
	}
	return s.repo.List(ctx, st, officeName)
}

func (s *service) UpdateStatus(ctx context.Context, id, status string, arrivedAt *time.Time, actorID string) (*Delivery, error) {
	newStatus, err := ParseStatus(status)
	if err != nil {
		return nil, err
	}
	d, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("delivery not found: %w", err)
	}
	d.Status = newStatus
	if arrivedAt != nil {
		d.ArrivedAt = arrivedAt
	}
	if err := s.repo.Update(ctx, d); err != nil {
		return nil, err
	}
	s.sink.Log(ctx, actorID, "DeliveryStatusChanged", map[string]interface{}{
		"delivery_id": d.ID,
		"status":      newStatus,
	})
	return d, nil
}

func (s *service) DeleteDelivery(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

func (s *service) RaiseFromSuggestions(ctx context.Context, req RaiseRequest, actorID string) (int, error) {
	if len(req.Lines) == 0 {
		return 0, nil
	}
	scheduled := time.Now().UTC().AddDate(0, 0, 7)
	if req.ScheduledAt != nil {
		scheduled = *req.ScheduledAt
	}

	created := 0
	for _, line := range req.Lines {
		if line.Quantity <= 0 {
			continue
		}

		productName := fmt.Sprintf("Item %s", line.ItemID)
		if item, err := s.itemRepo.GetByID(ctx, line.ItemID); err == nil {
			productName = item.Name
		}
		officeName := ""
		if o, err := s.officeRepo.GetByID(ctx, line.OfficeID); err == nil {
			officeName = o.Name
		}

		d := &Delivery{
			ID:          uuid.New(),
			Product:     productName,
			Office:      officeName,
			Status:      StatusOrdered,
			ScheduledAt: scheduled,
		}
		if line.SupplierID != "" {
			sid, err := uuid.Parse(line.SupplierID)
			if err != nil {
				return created, fmt.Errorf("invalid supplier_id: %w", err)
			}
			d.SupplierID = &sid
		}
		if err := s.repo.Create(ctx, d); err != nil {
			return created, err
		}
		created++
	}

	s.sink.Log(ctx, actorID, "ReplenishmentRaised", map[string]interface{}{
		"requested": len(req.Lines),
		"created":   created,
	})
	return created, nil
}
