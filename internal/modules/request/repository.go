package request

import "context"

// Repository defines request data storage.
type Repository interface {
	Create(ctx context.Context, req *Request) error
	GetByID(ctx context.Context, id string) (*Request, error)
	List(ctx context.Context, status Status, office string) ([]*Request, error)
	UpdateStatus(ctx context.Context, id string, status Status) error
}
