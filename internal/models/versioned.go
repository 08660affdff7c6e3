package models

// Versioned adds optimistic-lock helpers. Embed it anonymously.
type Versioned struct {
	RowVersion int64 `json:"row_version"`
}

// ----- interface helpers -----
func (v *Versioned) GetRowVersion() int64  { return v.RowVersion }
func (v *Versioned) SetRowVersion(n int64) { v.RowVersion = n }

// LifecycleState is the single soft-delete marker shared by every
// entity that supports recoverable deletion. Queries default to active.
type LifecycleState string

const (
	StateActive  LifecycleState = "active"
	StateDeleted LifecycleState = "deleted"
)
