package models

import (
	"time"

	"github.com/google/uuid"
)

type PaymentStatus string

const (
	PaymentPaid    PaymentStatus = "paid"
	PaymentUnpaid  PaymentStatus = "unpaid"
	PaymentOverdue PaymentStatus = "overdue"
)

// Payment is one rent obligation for a tenant. AmountPaid tracks
// partial settlement; Balance is always Amount - AmountPaid.
type Payment struct {
	ID         uuid.UUID     `json:"id"`
	TenantID   uuid.UUID     `json:"tenant_id"`
	PropertyID uuid.UUID     `json:"property_id"`
	Amount     float64       `json:"amount"`
	AmountPaid float64       `json:"amount_paid"`
	DueDate    time.Time     `json:"due_date"`
	Status     PaymentStatus `json:"status"`
	CreatedAt  time.Time     `json:"created_at"`
	UpdatedAt  time.Time     `json:"updated_at"`
}

// Outstanding reports whether the payment still contributes to arrears.
func (p *Payment) Outstanding() bool {
	return p.Status == PaymentUnpaid || p.Status == PaymentOverdue
}

func (p *Payment) Balance() float64 {
	return p.Amount - p.AmountPaid
}
