package utils

import "errors"

// Domain-level errors used by the service layer to provide
// fine-grained failure reasons.
var (
	ErrPropertyNotFound  = errors.New("property_not_found")
	ErrFloorNotFound     = errors.New("floor_not_found")
	ErrUnitNotFound      = errors.New("unit_not_found")
	ErrTenantNotFound    = errors.New("tenant_not_found")
	ErrCaretakerNotFound = errors.New("caretaker_not_found")

	ErrUnitOccupied      = errors.New("unit_occupied")
	ErrFloorLabelTaken   = errors.New("floor_label_taken")
	ErrInvalidFloorLabel = errors.New("invalid_floor_label")
	ErrUnitVacant        = errors.New("unit_vacant")
	ErrUnitLabelTaken    = errors.New("unit_label_taken")
	ErrTenantAssigned    = errors.New("tenant_already_assigned")
	ErrCaretakerInactive = errors.New("caretaker_inactive")

	// For concurrency conflicts
	ErrRowVersionConflict = errors.New("row_version_conflict")

	// For external service failures (SendGrid, Twilio)
	ErrExternalServiceFailure = errors.New("external_service_failure")
)
