package routes

const (
	Health = "/health"

	Properties              = "/api/v1/properties"
	PropertyByID            = "/api/v1/properties/{propertyId}"
	PropertyFloors          = "/api/v1/properties/{propertyId}/floors"
	PropertyFloorByLabel    = "/api/v1/properties/{propertyId}/floors/{floorLabel}"
	PropertyFloorUnits      = "/api/v1/properties/{propertyId}/floors/{floorLabel}/units"
	PropertyUnitByID        = "/api/v1/properties/{propertyId}/units/{unitId}"
	PropertyUnitAssign      = "/api/v1/properties/{propertyId}/units/{unitId}/assign"
	PropertyUnitVacate      = "/api/v1/properties/{propertyId}/units/{unitId}/vacate"
	PropertyAssignCaretaker = "/api/v1/properties/{propertyId}/caretaker"

	StatsOccupancy     = "/api/v1/stats/occupancy"
	StatsArrears       = "/api/v1/stats/arrears"
	StatsArrearsRemind = "/api/v1/stats/arrears/remind"

	CaretakerActions       = "/api/v1/caretaker-actions"
	CaretakerActionsExport = "/api/v1/caretaker-actions/export"
	CaretakerActionsFeed   = "/api/v1/caretaker-actions/feed"

	Tenants        = "/api/v1/tenants"
	TenantByID     = "/api/v1/tenants/{tenantId}"
	TenantPayments = "/api/v1/tenants/{tenantId}/payments"
	PaymentRecord  = "/api/v1/payments/{paymentId}/record"

	Caretakers      = "/api/v1/caretakers"
	CaretakerByID   = "/api/v1/caretakers/{caretakerId}"
	CaretakerActive = "/api/v1/caretakers/{caretakerId}/active"
)
