package delivery

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Status is the closed set of delivery states.
type Status string

const (
	StatusOrdered Status = "Ordered"
	StatusPending Status = "Pending"
	StatusOnTime  Status = "On Time"
	StatusDelayed Status = "Delayed"
)

// ParseStatus maps free text onto the closed Status set.
func ParseStatus(s string) (Status, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "ordered":
		return StatusOrdered, nil
	case "pending":
		return StatusPending, nil
	case "on time", "ontime":
		return StatusOnTime, nil
	case "delayed":
		return StatusDelayed, nil
	default:
		return "", fmt.Errorf("unknown delivery status %q", s)
	}
}

// Delivery is an inbound shipment of one product to an office. Product
// and Office are denormalized names so historical rows survive catalog
// edits.
type Delivery struct {
	ID          uuid.UUID  `json:"id"`
	Product     string     `json:"product"`
	SupplierID  *uuid.UUID `json:"supplier_id,omitempty"`
	Office      string     `json:"office"`
	Status      Status     `json:"status"`
	ScheduledAt time.Time  `json:"scheduled_at"`
	ArrivedAt   *time.Time `json:"arrived_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// DelayDays reports how late (or early, negative) the delivery arrived.
// Zero and false until arrival is recorded.
func (d *Delivery) DelayDays() (int, bool) {
	if d.ArrivedAt == nil {
		return 0, false
	}
	return int(d.ArrivedAt.Sub(d.ScheduledAt).Hours() / 24), true
}

// CreateDeliveryRequest holds data for scheduling a delivery.
type CreateDeliveryRequest struct {
	Product     string    `json:"product"`
	SupplierID  string    `json:"supplier_id,omitempty"`
	Office      string    `json:"office"`
	ScheduledAt time.Time `json:"scheduled_at"`
}

// RaiseLine is one accepted replenishment suggestion.
type RaiseLine struct {
	ItemID     string `json:"item_id"`
	OfficeID   string `json:"office_id"`
	SupplierID string `json:"supplier_id,omitempty"`
	Quantity   int    `json:"quantity"`
}

// RaiseRequest converts accepted suggestions into ordered deliveries.
type RaiseRequest struct {
	Lines       []RaiseLine `json:"lines"`
	ScheduledAt *time.Time  `json:"scheduled_at,omitempty"`
}
