package catalog

import "context"

// CategoryRepository defines category data storage.
type CategoryRepository interface {
	Create(ctx context.Context, c *Category) error
	List(ctx context.Context) ([]*Category, error)
	Delete(ctx context.Context, id string) error
}

// SupplierRepository defines supplier data storage.
type SupplierRepository interface {
	Create(ctx context.Context, s *Supplier) error
	GetByID(ctx context.Context, id string) (*Supplier, error)
	List(ctx context.Context) ([]*Supplier, error)
	Update(ctx context.Context, s *Supplier) error
	Delete(ctx context.Context, id string) error
}

// ItemRepository defines item data storage.
type ItemRepository interface {
	Create(ctx context.Context, i *Item) error
	GetByID(ctx context.Context, id string) (*Item, error)
	List(ctx context.Context, categoryID string) ([]*Item, error)
	Update(ctx context.Context, i *Item) error
	Delete(ctx context.Context, id string) error
}
