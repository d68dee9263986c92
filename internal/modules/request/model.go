package request

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Status is the closed set of request lifecycle states. Inputs are parsed
// case-insensitively at the boundary; the canonical spellings are kept
// for compatibility with existing clients.
type Status string

const (
	StatusPending  Status = "Pending"
	StatusApproved Status = "Approved"
	StatusRejected Status = "Rejected"
)

// ParseStatus maps free text onto the closed Status set.
func ParseStatus(s string) (Status, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pending":
		return StatusPending, nil
	case "approved":
		return StatusApproved, nil
	case "rejected":
		return StatusRejected, nil
	default:
		return "", fmt.Errorf("unknown request status %q", s)
	}
}

// Request is a staff member's ask for stationery at an office. Office is
// the office's name; the mutation engine resolves it to an id at issue
// time through the office directory.
type Request struct {
	ID        uuid.UUID  `json:"id"`
	ItemName  string     `json:"item_name"`
	Quantity  int        `json:"quantity"`
	Office    string     `json:"office"`
	Status    Status     `json:"status"`
	Purpose   string     `json:"purpose,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	DecidedAt *time.Time `json:"decided_at,omitempty"`
}

// CreateRequest holds data for submitting a request.
type CreateRequest struct {
	ItemName string `json:"item_name"`
	Quantity int    `json:"quantity"`
	Office   string `json:"office"`
	Purpose  string `json:"purpose"`
}

// DecideRequest holds the approval decision payload.
type DecideRequest struct {
	Status string `json:"status"` // "Approved" or "Rejected", any casing
}
