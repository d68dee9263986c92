package stock

import "context"

// Repository defines ledger data storage. Quantity mutations do NOT go
// through here — they flow through the Adjuster so the non-negative
// guard cannot be bypassed.
type Repository interface {
	Create(ctx context.Context, l *Level) error
	GetByID(ctx context.Context, id string) (*Level, error)
	GetByItemOffice(ctx context.Context, itemID, officeID string) (*Level, error)
	List(ctx context.Context, officeID, itemID string) ([]*Level, error)
	SetThreshold(ctx context.Context, id string, threshold *int) error

	// DeleteIfEmpty removes a ledger row only when its quantity is zero.
	DeleteIfEmpty(ctx context.Context, id string) error

	// LowStock returns rows with a positive threshold at or below it,
	// joined with item/office/supplier names for the suggestion view.
	LowStock(ctx context.Context, officeName string) ([]*Suggestion, error)
}
