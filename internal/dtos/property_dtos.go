package dtos

import "github.com/google/uuid"

// NewFloorSpec describes one floor to create, with optional bulk unit
// generation (count units of one type at one rent).
type NewFloorSpec struct {
	Label     string  `json:"label" validate:"required"`
	UnitType  string  `json:"unitType,omitempty" validate:"required_with=UnitCount"`
	UnitCount int     `json:"unitCount,omitempty" validate:"gte=0"`
	Rent      float64 `json:"rent,omitempty" validate:"required_with=UnitCount,gte=0"`
}

type CreatePropertyRequest struct {
	Name        string         `json:"name" validate:"required"`
	Address     string         `json:"address" validate:"required"`
	Description string         `json:"description,omitempty"`
	Images      []string       `json:"images,omitempty"`
	CaretakerID *uuid.UUID     `json:"caretakerId,omitempty"`
	Floors      []NewFloorSpec `json:"floors" validate:"dive"`
}

type UpdatePropertyRequest struct {
	Name        *string  `json:"name,omitempty"`
	Address     *string  `json:"address,omitempty"`
	Description *string  `json:"description,omitempty"`
	Images      []string `json:"images,omitempty"`
}

type AddFloorRequest struct {
	NewFloorSpec
}

type AddUnitsRequest struct {
	FloorLabel string  `json:"floorLabel" validate:"required"`
	UnitType   string  `json:"unitType" validate:"required"`
	Count      int     `json:"count" validate:"required,gt=0"`
	Rent       float64 `json:"rent" validate:"required,gt=0"`
}

type UpdateUnitRequest struct {
	Label *string  `json:"label,omitempty"`
	Type  *string  `json:"type,omitempty"`
	Rent  *float64 `json:"rent,omitempty" validate:"omitempty,gt=0"`
}

type AssignTenantRequest struct {
	TenantID uuid.UUID `json:"tenantId" validate:"required"`
}

type AssignCaretakerRequest struct {
	CaretakerID uuid.UUID `json:"caretakerId" validate:"required"`
}
