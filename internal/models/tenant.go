package models

import (
	"time"

	"github.com/google/uuid"
)

// Tenant is a renter assigned to at most one unit. The unit fields
// below are denormalized copies taken at assignment time for
// tenant-centric display; the property service rewrites them whenever
// the underlying unit is edited, so they never drift from
// Property.Floors.
type Tenant struct {
	Versioned
	ID         uuid.UUID  `json:"id"`
	LandlordID uuid.UUID  `json:"landlord_id"`
	PropertyID *uuid.UUID `json:"property_id,omitempty"`
	FirstName  string     `json:"first_name"`
	LastName   string     `json:"last_name"`
	Email      string     `json:"email"`
	Phone      string     `json:"phone,omitempty"`

	PropertyName string `json:"property_name,omitempty"`
	UnitType     string `json:"unit_type,omitempty"`
	FloorLabel   string `json:"floor_label,omitempty"`
	UnitLabel    string `json:"unit_label,omitempty"`

	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	DeletedAt *time.Time `json:"deleted_at,omitempty"`
}

func (t *Tenant) GetID() string { return t.ID.String() }

func (t *Tenant) FullName() string {
	if t.LastName == "" {
		return t.FirstName
	}
	return t.FirstName + " " + t.LastName
}
