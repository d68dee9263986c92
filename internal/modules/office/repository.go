package office

import "context"

// Repository defines office data storage. GetByName is the lookup the
// stock mutation engine uses to resolve a request's free-text office
// name to an office id.
type Repository interface {
	Create(ctx context.Context, o *Office) error
	GetByID(ctx context.Context, id string) (*Office, error)
	GetByName(ctx context.Context, name string) (*Office, error)
	List(ctx context.Context) ([]*Office, error)
	Update(ctx context.Context, o *Office) error
	Delete(ctx context.Context, id string) error
}
