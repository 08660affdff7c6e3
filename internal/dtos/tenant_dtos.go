package dtos

import "github.com/google/uuid"

type CreateTenantRequest struct {
	LandlordID uuid.UUID `json:"landlordId" validate:"required"`
	FirstName  string    `json:"firstName" validate:"required"`
	LastName   string    `json:"lastName" validate:"required"`
	Email      string    `json:"email" validate:"required,email"`
	Phone      string    `json:"phone"`
}

type CreateCaretakerRequest struct {
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Phone     string `json:"phone"`
}

type SetCaretakerActiveRequest struct {
	IsActive *bool `json:"isActive" validate:"required"`
}

type CreatePaymentRequest struct {
	TenantID   uuid.UUID `json:"tenantId" validate:"required"`
	PropertyID uuid.UUID `json:"propertyId" validate:"required"`
	Amount     float64   `json:"amount" validate:"required,gt=0"`
	DueDate    string    `json:"dueDate" validate:"required"`
}

type RecordPaymentRequest struct {
	Amount float64 `json:"amount" validate:"required,gt=0"`
}
