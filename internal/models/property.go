package models

import (
	"time"

	"github.com/google/uuid"
)

// Property is the aggregate root for a building's physical layout.
// The floor/unit tree is embedded and persists as a single JSONB
// document, so every unit mutation is one atomic row write guarded
// by the row_version counter.
type Property struct {
	Versioned
	ID          uuid.UUID  `json:"id"`
	LandlordID  uuid.UUID  `json:"landlord_id"`
	CaretakerID *uuid.UUID `json:"caretaker_id,omitempty"`
	Name        string     `json:"name"`
	Address     string     `json:"address"`
	Description string     `json:"description,omitempty"`
	Images      []string   `json:"images,omitempty"`
	Floors      []Floor    `json:"floors"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	DeletedAt   *time.Time `json:"deleted_at,omitempty"`
}

func (p *Property) GetID() string { return p.ID.String() }

// Floor is a level inside a property. It has no identity outside its
// property; order in Property.Floors is insertion order.
type Floor struct {
	Label string         `json:"label"`
	State LifecycleState `json:"state"`
	Units []Unit         `json:"units"`
}

type UnitStatus string

const (
	UnitVacant   UnitStatus = "vacant"
	UnitOccupied UnitStatus = "occupied"
)

// Unit is a tenant-addressable space on a floor. Status and TenantID
// flip together: occupied if and only if a tenant is assigned.
type Unit struct {
	ID       uuid.UUID      `json:"id"`
	Label    string         `json:"label"`
	Type     string         `json:"type"`
	Rent     float64        `json:"rent"`
	Status   UnitStatus     `json:"status"`
	TenantID *uuid.UUID     `json:"tenant_id,omitempty"`
	State    LifecycleState `json:"state"`
}

func (u *Unit) Occupied() bool { return u.Status == UnitOccupied }
