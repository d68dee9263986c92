package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Service defines catalog business logic for categories, suppliers, and items.
type Service interface {
	// Category operations
	CreateCategory(ctx context.Context, name string) (*Category, error)
	ListCategories(ctx context.Context) ([]*Category, error)
	DeleteCategory(ctx context.Context, id string) error

	// Supplier operations
	CreateSupplier(ctx context.Context, req CreateSupplierRequest) (*Supplier, error)
	GetSupplier(ctx context.Context, id string) (*Supplier, error)
	ListSuppliers(ctx context.Context) ([]*Supplier, error)
	UpdateSupplier(ctx context.Context, id string, req CreateSupplierRequest) (*Supplier, error)
	DeleteSupplier(ctx context.Context, id string) error

	// Item operations
	CreateItem(ctx context.Context, req CreateItemRequest) (*Item, error)
	GetItem(ctx context.Context, id string) (*Item, error)
	ListItems(ctx context.Context, categoryID string) ([]*Item, error)
	UpdateItem(ctx context.Context, id string, req CreateItemRequest) (*Item, error)
	DeleteItem(ctx context.Context, id string) error
}

type service struct {
	categoryRepo CategoryRepository
	supplierRepo SupplierRepository
	itemRepo     ItemRepository
}

// NewService creates a new catalog service.
func NewService(categoryRepo CategoryRepository, supplierRepo SupplierRepository, itemRepo ItemRepository) Service {
	return &service{
		categoryRepo: categoryRepo,
		supplierRepo: supplierRepo,
		itemRepo:     itemRepo,
	}
}

func (s *service) CreateCategory(ctx context.Context, name string) (*Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("name is required")
	}
	c := &Category{ID: uuid.New(), Name: name}
	if err := s.categoryRepo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *service) ListCategories(ctx context.Context) ([]*Category, error) {
	return s.categoryRepo.List(ctx)
}

func (s *service) DeleteCategory(ctx context.Context, id string) error {
	return s.categoryRepo.Delete(ctx, id)
}

func (s *service) CreateSupplier(ctx context.Context, req CreateSupplierRequest) (*Supplier, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, fmt.Errorf("name is required")
	}
	sup := &Supplier{
		ID:           uuid.New(),
		Name:         req.Name,
		ContactEmail: req.ContactEmail,
		Phone:        req.Phone,
	}
	if err := s.supplierRepo.Create(ctx, sup); err != nil {
		return nil, err
	}
	return sup, nil
}

func (s *service) GetSupplier(ctx context.Context, id string) (*Supplier, error) {
	return s.supplierRepo.GetByID(ctx, id)
}

func (s *service) ListSuppliers(ctx context.Context) ([]*Supplier, error) {
	return s.supplierRepo.List(ctx)
}

func (s *service) UpdateSupplier(ctx context.Context, id string, req CreateSupplierRequest) (*Supplier, error) {
	sup, err := s.supplierRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("supplier not found: %w", err)
	}
	if req.Name != "" {
		sup.Name = req.Name
	}
	if req.ContactEmail != "" {
		sup.ContactEmail = req.ContactEmail
	}
	if req.Phone != "" {
		sup.Phone = req.Phone
	}
	if err := s.supplierRepo.Update(ctx, sup); err != nil {
		return nil, err
	}
	return sup, nil
}

func (s *service) DeleteSupplier(ctx context.Context, id string) error {
	return s.supplierRepo.Delete(ctx, id)
}

func (s *service) CreateItem(ctx context.Context, req CreateItemRequest) (*Item, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, fmt.Errorf("name is required")
	}
	categoryID, err := uuid.Parse(req.CategoryID)
	if err != nil {
		return nil, fmt.Errorf("invalid category_id: %w", err)
	}
	i := &Item{
		ID:          uuid.New(),
		Name:        req.Name,
		Description: req.Description,
		CategoryID:  categoryID,
	}
	if req.SupplierID != "" {
		sid, err := uuid.Parse(req.SupplierID)
		if err != nil {
			return nil, fmt.Errorf("invalid supplier_id: %w", err)
		}
		i.SupplierID = &sid
	}
	if err := s.itemRepo.Create(ctx, i); err != nil {
		return nil, err
	}
	return i, nil
}

func (s *service) GetItem(ctx context.Context, id string) (*Item, error) {
	return s.itemRepo.GetByID(ctx, id)
}

func (s *service) ListItems(ctx context.Context, categoryID string) ([]*Item, error) {
	return s.itemRepo.List(ctx, categoryID)
}

func (s *service) UpdateItem(ctx context.Context, id string, req CreateItemRequest) (*Item, error) {
	i, err := s.itemRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("item not found: %w", err)
	}
	if req.Name != "" {
		i.Name = req.Name
	}
	if req.Description != "" {
		i.Description = req.Description
	}
	if req.CategoryID != "" {
		cid, err := uuid.Parse(req.CategoryID)
		if err != nil {
			return nil, fmt.Errorf("invalid category_id: %w", err)
		}
		i.CategoryID = cid
	}
	if req.SupplierID != "" {
		sid, err := uuid.Parse(req.SupplierID)
		if err != nil {
			return nil, fmt.Errorf("invalid supplier_id: %w", err)
		}
		i.SupplierID = &sid
	}
	if err := s.itemRepo.Update(ctx, i); err != nil {
		return nil, err
	}
	return i, nil
}

func (s *service) DeleteItem(ctx context.Context, id string) error {
	return s.itemRepo.Delete(ctx, id)
}
