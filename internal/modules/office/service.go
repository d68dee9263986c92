package office

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Service defines office directory business logic.
type Service interface {
	CreateOffice(ctx context.Context, req CreateOfficeRequest) (*Office, error)
	GetOffice(ctx context.Context, id string) (*Office, error)
	ListOffices(ctx context.Context) ([]*Office, error)
	UpdateOffice(ctx context.Context, id string, req CreateOfficeRequest) (*Office, error)
	DeleteOffice(ctx context.Context, id string) error
}

type service struct{ repo Repository }

// NewService creates a new office service.
func NewService(repo Repository) Service { return &service{repo: repo} }

func (s *service) CreateOffice(ctx context.Context, req CreateOfficeRequest) (*Office, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("name is required")
	}
	o := &Office{
		ID:       uuid.New(),
		Name:     name,
		Location: req.Location,
	}
	if err := s.repo.Create(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}

func (s *service) GetOffice(ctx context.Context, id string) (*Office, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) ListOffices(ctx context.Context) ([]*Office, error) {
	return s.repo.List(ctx)
}

func (s *service) UpdateOffice(ctx context.Context, id string, req CreateOfficeRequest) (*Office, error) {
	o, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("office not found: %w", err)
	}
	if name := strings.TrimSpace(req.Name); name != "" {
		o.Name = name
	}
	if req.Location != "" {
		o.Location = req.Location
	}
	if err := s.repo.Update(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}

func (s *service) DeleteOffice(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
