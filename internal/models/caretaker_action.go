package models

import (
	"time"

	"github.com/google/uuid"
)

type ActionType string

const (
	ActionMaintenanceUpdate   ActionType = "maintenance_update"
	ActionMaintenanceResolved ActionType = "maintenance_resolved"
	ActionAnnouncementSent    ActionType = "announcement_sent"
	ActionTaskAssigned        ActionType = "task_assigned"
	ActionTaskUpdated         ActionType = "task_updated"
	ActionOther               ActionType = "other"
)

type ActionStatus string

const (
	ActionCompleted  ActionStatus = "completed"
	ActionPending    ActionStatus = "pending"
	ActionInProgress ActionStatus = "in_progress"
)

// CaretakerAction is one append-only activity-log entry. Rows are never
// updated or deleted after insert.
type CaretakerAction struct {
	ID          uuid.UUID    `json:"id"`
	CaretakerID uuid.UUID    `json:"caretaker_id"`
	PropertyID  *uuid.UUID   `json:"property_id,omitempty"`
	ActionType  ActionType   `json:"action_type"`
	Status      ActionStatus `json:"status"`
	Description string       `json:"description"`
	CreatedAt   time.Time    `json:"created_at"`
}

// ValidActionType reports whether s is one of the known action types.
func ValidActionType(s string) bool {
	switch ActionType(s) {
	case ActionMaintenanceUpdate, ActionMaintenanceResolved, ActionAnnouncementSent,
		ActionTaskAssigned, ActionTaskUpdated, ActionOther:
		return true
	}
	return false
}

// ValidActionStatus reports whether s is one of the known statuses.
func ValidActionStatus(s string) bool {
	switch ActionStatus(s) {
	case ActionCompleted, ActionPending, ActionInProgress:
		return true
	}
	return false
}
