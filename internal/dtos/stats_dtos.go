package dtos

import (
	"time"

	"github.com/google/uuid"
)

/* ------------------------------------------------------------------
   Occupancy view (GET /api/v1/stats/occupancy)
------------------------------------------------------------------ */

type UnitTypeStats struct {
	Type            string `json:"type"`
	Total           int    `json:"total"`
	Occupied        int    `json:"occupied"`
	Vacant          int    `json:"vacant"`
	OccupiedPercent int    `json:"occupiedPercent"`
}

type PropertyOccupancy struct {
	PropertyID      uuid.UUID       `json:"propertyId"`
	Name            string          `json:"name"`
	TotalUnits      int             `json:"totalUnits"`
	OccupiedUnits   int             `json:"occupiedUnits"`
	VacantUnits     int             `json:"vacantUnits"`
	OccupiedPercent int             `json:"occupiedPercent"`
	Mixed           bool            `json:"mixed"`
	UnitTypes       []UnitTypeStats `json:"unitTypes"`
}

type OccupancyOverviewResponse struct {
	TotalUnits    int                 `json:"totalUnits"`
	OccupiedUnits int                 `json:"occupiedUnits"`
	VacantUnits   int                 `json:"vacantUnits"`
	Properties    []PropertyOccupancy `json:"properties"`
}

/* ------------------------------------------------------------------
   Arrears view (GET /api/v1/stats/arrears)
------------------------------------------------------------------ */

type ArrearsRow struct {
	PaymentID    uuid.UUID `json:"paymentId"`
	TenantID     uuid.UUID `json:"tenantId"`
	TenantName   string    `json:"tenantName"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone,omitempty"`
	PropertyName string    `json:"propertyName"`
	Amount       float64   `json:"amount"`
	AmountPaid   float64   `json:"amountPaid"`
	Balance      float64   `json:"balance"`
	DueDate      time.Time `json:"dueDate"`
	Status       string    `json:"status"`
}

type ArrearsOverviewResponse struct {
	TotalTenants     int          `json:"totalTenants"`
	TotalDue         float64      `json:"totalDue"`
	TotalPaid        float64      `json:"totalPaid"`
	TotalArrears     float64      `json:"totalArrears"`
	TenantsInArrears int          `json:"tenantsInArrears"`
	TenantsPaidUp    int          `json:"tenantsPaidUp"`
	Rows             []ArrearsRow `json:"rows"`
}

type RemindersTriggeredResponse struct {
	RemindersSent int `json:"remindersSent"`
}
