// Package conflict implements the pure overlap detector. It performs no I/O:
// callers gather the candidate set of events and the detector only filters
// and classifies. Reports are advisory by design; nothing in the write path
// treats a non-empty report as an error.
package conflict

import (
	"time"
)

// Candidate is the event being proposed or edited.
type Candidate struct {
	Kind  string
	Start time.Time
	End   time.Time // inclusive; equal to Start for single-day events
}

// Item is an existing event flattened to what detection needs.
type Item struct {
	EventID          uint       `json:"event_id"`
	Kind             string     `json:"kind"`
	Title            string     `json:"title"`
	Start            time.Time  `json:"start_date"`
	End              time.Time  `json:"end_date"`
	BandID           *uint      `json:"band_id,omitempty"`
	BandName         string     `json:"band_name,omitempty"`
	OwnerPrincipalID *uint      `json:"owner_principal_id,omitempty"`
}

// Report carries three disjoint lists. For a group-committing candidate the
// first two are populated; for a personal-unavailability candidate only the
// third is.
type Report struct {
	SameKindConflicts       []Item `json:"sameKindConflicts"`
	UnavailabilityConflicts []Item `json:"unavailabilityConflicts"`
	AffectedGroupEvents     []Item `json:"affectedGroupEvents"`
}

// HasConflicts reports whether any list is non-empty.
func (r Report) HasConflicts() bool {
	return len(r.SameKindConflicts)+len(r.UnavailabilityConflicts)+len(r.AffectedGroupEvents) > 0
}

const kindPersonalUnavailable = "personal_unavailable"

// groupCommitting kinds block shared time for the whole band.
func groupCommitting(kind string) bool {
	return kind == "rehearsal" || kind == "performance"
}

// Overlaps uses inclusive-endpoint interval semantics: a shared boundary day
// counts as an overlap.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return !aStart.After(bEnd) && !aEnd.Before(bStart)
}

// Detect filters existing events down to those overlapping the candidate's
// date interval and classifies them by the candidate's kind. The event
// matching excludeEventID is skipped so an edit never conflicts with itself.
func Detect(cand Candidate, existing []Item, excludeEventID *uint) Report {
	report := Report{
		SameKindConflicts:       []Item{},
		UnavailabilityConflicts: []Item{},
		AffectedGroupEvents:     []Item{},
	}

	end := cand.End
	if end.Before(cand.Start) {
		end = cand.Start
	}

	for _, item := range existing {
		if excludeEventID != nil && item.EventID == *excludeEventID {
			continue
		}
		itemEnd := item.End
		if itemEnd.Before(item.Start) {
			itemEnd = item.Start
		}
		if !Overlaps(cand.Start, end, item.Start, itemEnd) {
			continue
		}

		switch {
		case groupCommitting(cand.Kind):
			if groupCommitting(item.Kind) {
				report.SameKindConflicts = append(report.SameKindConflicts, item)
			} else if item.Kind == kindPersonalUnavailable {
				report.UnavailabilityConflicts = append(report.UnavailabilityConflicts, item)
			}
		case cand.Kind == kindPersonalUnavailable:
			if groupCommitting(item.Kind) {
				report.AffectedGroupEvents = append(report.AffectedGroupEvents, item)
			}
		}
	}

	return report
}
