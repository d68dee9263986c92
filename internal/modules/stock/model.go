package stock

import (
	"time"

	"github.com/google/uuid"
)

// Level is one ledger row: the quantity of one item held at one office.
// Quantity is never negative and is mutated only through the Adjuster.
type Level struct {
	ID               uuid.UUID `json:"id"`
	ItemID           uuid.UUID `json:"item_id"`
	OfficeID         uuid.UUID `json:"office_id"`
	Quantity         int       `json:"quantity"`
	ReorderThreshold *int      `json:"reorder_threshold,omitempty"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// CreateLevelRequest holds data for creating a ledger row.
type CreateLevelRequest struct {
	ItemID           string `json:"item_id"`
	OfficeID         string `json:"office_id"`
	Quantity         int    `json:"quantity"`
	ReorderThreshold *int   `json:"reorder_threshold,omitempty"`
}

// Suggestion is one low-stock replenishment recommendation.
type Suggestion struct {
	StockLevelID      uuid.UUID  `json:"stock_level_id"`
	ItemID            uuid.UUID  `json:"item_id"`
	ItemName          string     `json:"item_name"`
	OfficeID          uuid.UUID  `json:"office_id"`
	OfficeName        string     `json:"office_name"`
	Quantity          int        `json:"quantity"`
	ReorderThreshold  int        `json:"reorder_threshold"`
	SupplierID        *uuid.UUID `json:"supplier_id,omitempty"`
	SupplierName      string     `json:"supplier_name,omitempty"`
	SuggestedOrderQty int        `json:"suggested_order_qty"`
}
