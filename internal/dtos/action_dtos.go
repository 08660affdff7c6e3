package dtos

import "github.com/google/uuid"

type LogActionRequest struct {
	CaretakerID uuid.UUID  `json:"caretakerId" validate:"required"`
	PropertyID  *uuid.UUID `json:"propertyId,omitempty"`
	ActionType  string     `json:"actionType" validate:"required,oneof=maintenance_update maintenance_resolved announcement_sent task_assigned task_updated other"`
	Status      string     `json:"status" validate:"required,oneof=completed pending in_progress"`
	Description string     `json:"description" validate:"required"`
}
