package event

import (
	"time"

	"github.com/bandmate-app/band-scheduling-backend/internal/httperr"
)

// Event is the scheduling unit. Ownership is exactly one of two kinds:
// band-owned (BandID set, authored by a membership) or personal
// (OwnerPrincipalID set, BandID absent). Personal events surface across every
// band the owner belongs to.
type Event struct {
	ID                     uint       `gorm:"primaryKey" json:"id"`
	BandID                 *uint      `gorm:"index" json:"band_id,omitempty"`
	OwnerPrincipalID       *uint      `gorm:"index" json:"owner_principal_id,omitempty"`
	AuthoredByMembershipID *uint      `gorm:"index" json:"authored_by_membership_id,omitempty"`
	Kind                   Kind       `gorm:"size:40;not null;index" json:"kind"`
	Title                  string     `gorm:"size:255" json:"title"`
	StartDate              time.Time  `gorm:"not null;index" json:"start_date"`
	EndDate                *time.Time `gorm:"index" json:"end_date,omitempty"`
	StartTime              *time.Time `json:"start_time,omitempty"`
	EndTime                *time.Time `json:"end_time,omitempty"`
	IsAllDay               bool       `json:"is_all_day"`
	IsPublic               bool       `json:"is_public"`
	Recurring              bool       `json:"recurring"` // stored flag only, no expansion
	Venue                  string     `gorm:"type:text" json:"venue,omitempty"`
	Location               string     `gorm:"type:text" json:"location,omitempty"`
	Notes                  string     `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt              time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt              time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Event) TableName() string {
	return "events"
}

// IntervalEnd returns the inclusive end of the event's date interval,
// defaulting to the start date for single-day events.
func (e *Event) IntervalEnd() time.Time {
	if e.EndDate != nil {
		return *e.EndDate
	}
	return e.StartDate
}

// Validate enforces the structural invariants before any write:
// exactly-one-owner, closed kind set, interval ordering, and the
// public/private venue-location exclusivity. It also derives IsAllDay.
func (e *Event) Validate() error {
	bandOwned := e.BandID != nil
	personal := e.OwnerPrincipalID != nil
	if bandOwned == personal {
		return httperr.Validation("exactly one of band_id and owner_principal_id must be set")
	}

	if !e.Kind.Valid() {
		return httperr.Validation("unknown event kind: " + string(e.Kind))
	}
	traits := e.Kind.Traits()
	if traits.Personal != personal {
		if traits.Personal {
			return httperr.Validation(string(e.Kind) + " events must be personal, not band-owned")
		}
		return httperr.Validation(string(e.Kind) + " events must be band-owned")
	}
	if bandOwned && e.AuthoredByMembershipID == nil {
		return httperr.Validation("band events require an authoring membership")
	}

	if e.StartDate.IsZero() {
		return httperr.Validation("start date is required")
	}
	if e.EndDate != nil && e.EndDate.Before(e.StartDate) {
		return httperr.Validation("end date precedes start date")
	}
	if e.StartTime == nil != (e.EndTime == nil) {
		return httperr.Validation("start and end time must be supplied together")
	}

	if bandOwned {
		if e.Title == "" {
			return httperr.Validation("title is required")
		}
		if e.IsPublic {
			if e.Venue == "" {
				return httperr.Validation("public events require a venue")
			}
			e.Location = ""
		} else {
			if e.Location == "" {
				return httperr.Validation("private events require a location")
			}
			e.Venue = ""
		}
	}

	e.IsAllDay = traits.AlwaysAllDay || (e.StartTime == nil && e.EndTime == nil)
	return nil
}

// CreateEventRequest is the POST /bands/:bandId/events body.
type CreateEventRequest struct {
	Title     string `json:"title" binding:"required"`
	Kind      string `json:"kind" binding:"required"`
	Date      string `json:"date" binding:"required"` // "2006-01-02"
	EndDate   string `json:"end_date,omitempty"`
	StartTime string `json:"start_time,omitempty"` // "15:04"
	EndTime   string `json:"end_time,omitempty"`
	IsPublic  bool   `json:"is_public"`
	Venue     string `json:"venue,omitempty"`
	Location  string `json:"location,omitempty"`
	Notes     string `json:"notes,omitempty"`
}

// UpdateEventRequest is the PATCH body; nil fields are left untouched.
type UpdateEventRequest struct {
	Title     *string `json:"title"`
	Kind      *string `json:"kind"`
	Date      *string `json:"date"`
	EndDate   *string `json:"end_date"` // empty string clears the end date
	StartTime *string `json:"start_time"`
	EndTime   *string `json:"end_time"`
	IsPublic  *bool   `json:"is_public"`
	Venue     *string `json:"venue"`
	Location  *string `json:"location"`
	Notes     *string `json:"notes"`
}

// UnavailabilityRequest is the POST /users/me/unavailability body.
type UnavailabilityRequest struct {
	Date      string `json:"date" binding:"required"`
	EndDate   string `json:"end_date,omitempty"`
	Notes     string `json:"notes,omitempty"`
	Recurring bool   `json:"recurring,omitempty"`
}

// ConflictCheckRequest is the POST /bands/:bandId/events/check-conflicts body.
type ConflictCheckRequest struct {
	Date           string `json:"date" binding:"required"`
	EndDate        string `json:"end_date,omitempty"`
	Kind           string `json:"kind" binding:"required"`
	ExcludeEventID *uint  `json:"exclude_event_id,omitempty"`
}
