package delivery

import "context"

// Repository defines delivery data storage.
type Repository interface {
	Create(ctx context.Context, d *Delivery) error
	GetByID(ctx context.Context, id string) (*Delivery, error)
	List(ctx context.Context, status Status, office string) ([]*Delivery, error)
	Update(ctx context.Context, d *Delivery) error
	Delete(ctx context.Context, id string) error
}
