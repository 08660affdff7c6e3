package models

import (
	"time"

	"github.com/google/uuid"
)

// Caretaker handles on-site work. Deactivation is soft: an inactive
// caretaker keeps historical property assignments and action-log rows
// but cannot be assigned to new properties or log new actions.
type Caretaker struct {
	ID        uuid.UUID `json:"id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
