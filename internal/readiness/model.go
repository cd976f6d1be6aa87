package readiness

import (
	"time"
)

// Mark is one member's readiness state for one band event. At most one row
// exists per (event, membership) pair; a repeated PUT overwrites it.
type Mark struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	EventID      uint      `gorm:"not null;uniqueIndex:idx_readiness_event_membership" json:"event_id"`
	MembershipID uint      `gorm:"not null;uniqueIndex:idx_readiness_event_membership" json:"membership_id"`
	Ready        bool      `json:"ready"`
	Veto         bool      `json:"veto"`
	Note         string    `gorm:"size:500" json:"note,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (Mark) TableName() string {
	return "readiness_marks"
}

// UpsertRequest is the PUT /bands/:bandId/events/:id/readiness body.
type UpsertRequest struct {
	Ready bool   `json:"ready"`
	Veto  bool   `json:"veto"`
	Note  string `json:"note,omitempty"`
}
