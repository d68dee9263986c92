package office

import (
	"time"

	"github.com/google/uuid"
)

// Office is a physical location that holds stationery stock.
type Office struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Location  string    `json:"location,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateOfficeRequest holds data for creating an office.
type CreateOfficeRequest struct {
	Name     string `json:"name"`
	Location string `json:"location"`
}
