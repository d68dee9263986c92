package audit

import "context"

// Repository defines storage for audit entries.
type Repository interface {
	// Insert appends one audit entry.
	Insert(ctx context.Context, e *Entry) error

	// List returns entries matching the filter, newest first.
	List(ctx context.Context, f Filter) ([]*Entry, error)
}
