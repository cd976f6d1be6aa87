package event

import (
	"context"
	"time"

	"github.com/bandmate-app/band-scheduling-backend/internal/auditlog"
	"github.com/bandmate-app/band-scheduling-backend/internal/conflict"
	"github.com/bandmate-app/band-scheduling-backend/internal/httperr"
	"github.com/bandmate-app/band-scheduling-backend/internal/membership"
)

// BandInfo is the slice of band state event rules depend on.
type BandInfo struct {
	ID           uint
	Name         string
	AllowedKinds []Kind
}

// BandSource is implemented by the band service; inverted so this package
// does not depend on band storage.
type BandSource interface {
	GetBandInfo(ctx context.Context, bandID uint) (*BandInfo, error)
}

type Service struct {
	repo    Repository
	members membership.Directory
	bands   BandSource
	audit   auditlog.Service
}

func NewService(repo Repository, members membership.Directory, bands BandSource, audit auditlog.Service) *Service {
	return &Service{repo: repo, members: members, bands: bands, audit: audit}
}

func parseDate(s string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, httperr.Validation("invalid date format, use YYYY-MM-DD: " + s)
	}
	return t, nil
}

func parseTimeOfDay(s string) (*time.Time, error) {
	parsed, err := time.Parse("15:04", s)
	if err != nil {
		return nil, httperr.Validation("invalid time format, use HH:MM: " + s)
	}
	normalized := time.Date(0, 1, 1, parsed.Hour(), parsed.Minute(), 0, 0, time.UTC)
	return &normalized, nil
}

func (s *Service) ListBandEvents(ctx context.Context, bandID uint, from, to *time.Time) ([]Event, error) {
	events, err := s.repo.ListBandEvents(ctx, bandID, from, to)
	if err != nil {
		return nil, httperr.Internal(err)
	}
	return events, nil
}

// CreateBandEvent validates and persists a band-owned event authored by the
// acting membership. Conflicts are never checked here; the client asks for a
// report separately and decides whether to proceed.
func (s *Service) CreateBandEvent(ctx context.Context, actor membership.Membership, req CreateEventRequest, ip string) (*Event, error) {
	kind := Kind(req.Kind)
	info, err := s.bands.GetBandInfo(ctx, actor.BandID)
	if err != nil {
		return nil, err
	}
	if !kindAllowed(info.AllowedKinds, kind) {
		return nil, httperr.Validation("event kind not enabled for this band: " + req.Kind)
	}

	e := &Event{
		BandID:                 &actor.BandID,
		AuthoredByMembershipID: &actor.ID,
		Kind:                   kind,
		Title:                  req.Title,
		IsPublic:               req.IsPublic,
		Venue:                  req.Venue,
		Location:               req.Location,
		Notes:                  req.Notes,
	}

	if e.StartDate, err = parseDate(req.Date); err != nil {
		return nil, err
	}
	if req.EndDate != "" {
		end, err := parseDate(req.EndDate)
		if err != nil {
			return nil, err
		}
		e.EndDate = &end
	}
	if req.StartTime != "" {
		if e.StartTime, err = parseTimeOfDay(req.StartTime); err != nil {
			return nil, err
		}
	}
	if req.EndTime != "" {
		if e.EndTime, err = parseTimeOfDay(req.EndTime); err != nil {
			return nil, err
		}
	}

	if err := e.Validate(); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, e); err != nil {
		return nil, httperr.Internal(err)
	}

	_ = s.audit.LogAction(ctx, &actor.PrincipalID, &actor.BandID, "EVENT_CREATED",
		map[string]interface{}{
			"event_id": e.ID,
			"kind":     e.Kind,
			"title":    e.Title,
			"date":     e.StartDate.Format("2006-01-02"),
		}, ip, "success")

	return e, nil
}

// UpdateBandEvent applies a partial patch. The lookup is scoped to the
// acting band, so a foreign event id fails NotFound rather than leaking or
// mutating another tenant's data.
func (s *Service) UpdateBandEvent(ctx context.Context, actor membership.Membership, eventID uint, req UpdateEventRequest, ip string) (*Event, error) {
	e, err := s.repo.GetBandEvent(ctx, actor.BandID, eventID)
	if err != nil {
		return nil, httperr.Internal(err)
	}
	if e == nil {
		return nil, httperr.NotFound("event not found")
	}

	if req.Kind != nil {
		kind := Kind(*req.Kind)
		info, err := s.bands.GetBandInfo(ctx, actor.BandID)
		if err != nil {
			return nil, err
		}
		if !kindAllowed(info.AllowedKinds, kind) {
			return nil, httperr.Validation("event kind not enabled for this band: " + *req.Kind)
		}
		e.Kind = kind
	}
	if req.Title != nil {
		e.Title = *req.Title
	}
	if req.Date != nil {
		if e.StartDate, err = parseDate(*req.Date); err != nil {
			return nil, err
		}
	}
	if req.EndDate != nil {
		if *req.EndDate == "" {
			e.EndDate = nil
		} else {
			end, err := parseDate(*req.EndDate)
			if err != nil {
				return nil, err
			}
			e.EndDate = &end
		}
	}
	if req.StartTime != nil {
		if *req.StartTime == "" {
			e.StartTime = nil
		} else if e.StartTime, err = parseTimeOfDay(*req.StartTime); err != nil {
			return nil, err
		}
	}
	if req.EndTime != nil {
		if *req.EndTime == "" {
			e.EndTime = nil
		} else if e.EndTime, err = parseTimeOfDay(*req.EndTime); err != nil {
			return nil, err
		}
	}
	if req.IsPublic != nil {
		e.IsPublic = *req.IsPublic
	}
	if req.Venue != nil {
		e.Venue = *req.Venue
	}
	if req.Location != nil {
		e.Location = *req.Location
	}
	if req.Notes != nil {
		e.Notes = *req.Notes
	}

	if err := e.Validate(); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, e); err != nil {
		return nil, httperr.Internal(err)
	}

	_ = s.audit.LogAction(ctx, &actor.PrincipalID, &actor.BandID, "EVENT_UPDATED",
		map[string]interface{}{"event_id": e.ID, "title": e.Title}, ip, "success")

	return e, nil
}

func (s *Service) DeleteBandEvent(ctx context.Context, actor membership.Membership, eventID uint, ip string) error {
	deleted, err := s.repo.DeleteBandEvent(ctx, actor.BandID, eventID)
	if err != nil {
		return httperr.Internal(err)
	}
	if !deleted {
		return httperr.NotFound("event not found")
	}

	_ = s.audit.LogAction(ctx, &actor.PrincipalID, &actor.BandID, "EVENT_DELETED",
		map[string]interface{}{"event_id": eventID}, ip, "success")
	return nil
}

// CreatePersonalEvent records cross-band unavailability for a principal.
func (s *Service) CreatePersonalEvent(ctx context.Context, principalID uint, req UnavailabilityRequest, ip string) (*Event, error) {
	e := &Event{
		OwnerPrincipalID: &principalID,
		Kind:             KindPersonalUnavailable,
		Title:            "Unavailable",
		Notes:            req.Notes,
		Recurring:        req.Recurring,
	}

	var err error
	if e.StartDate, err = parseDate(req.Date); err != nil {
		return nil, err
	}
	if req.EndDate != "" {
		end, err := parseDate(req.EndDate)
		if err != nil {
			return nil, err
		}
		e.EndDate = &end
	}

	if err := e.Validate(); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, e); err != nil {
		return nil, httperr.Internal(err)
	}

	_ = s.audit.LogAction(ctx, &principalID, nil, "UNAVAILABILITY_CREATED",
		map[string]interface{}{
			"event_id": e.ID,
			"date":     e.StartDate.Format("2006-01-02"),
		}, ip, "success")

	return e, nil
}

func (s *Service) ListPersonalEvents(ctx context.Context, principalID uint, from, to *time.Time) ([]Event, error) {
	events, err := s.repo.ListPersonalEvents(ctx, principalID, from, to)
	if err != nil {
		return nil, httperr.Internal(err)
	}
	return events, nil
}

// ListPersonalEventsForPrincipals is the calendar aggregator's bulk read for
// surfacing every member's unavailability on the shared calendar.
func (s *Service) ListPersonalEventsForPrincipals(ctx context.Context, principalIDs []uint, from, to *time.Time) ([]Event, error) {
	events, err := s.repo.ListPersonalEventsForPrincipals(ctx, principalIDs, from, to)
	if err != nil {
		return nil, httperr.Internal(err)
	}
	return events, nil
}

func (s *Service) DeletePersonalEvent(ctx context.Context, principalID, eventID uint, ip string) error {
	deleted, err := s.repo.DeletePersonalEvent(ctx, principalID, eventID)
	if err != nil {
		return httperr.Internal(err)
	}
	if !deleted {
		return httperr.NotFound("event not found")
	}

	_ = s.audit.LogAction(ctx, &principalID, nil, "UNAVAILABILITY_DELETED",
		map[string]interface{}{"event_id": eventID}, ip, "success")
	return nil
}

// CheckConflicts gathers the candidate set for the requested kind and runs
// the pure detector over it. The report is data, not an error: a non-empty
// report still returns 200 and the caller decides whether to go ahead.
func (s *Service) CheckConflicts(ctx context.Context, actor membership.Membership, req ConflictCheckRequest) (*conflict.Report, error) {
	kind := Kind(req.Kind)
	if !kind.Valid() {
		return nil, httperr.Validation("unknown event kind: " + req.Kind)
	}

	start, err := parseDate(req.Date)
	if err != nil {
		return nil, err
	}
	end := start
	if req.EndDate != "" {
		if end, err = parseDate(req.EndDate); err != nil {
			return nil, err
		}
		if end.Before(start) {
			return nil, httperr.Validation("end date precedes start date")
		}
	}

	cand := conflict.Candidate{Kind: string(kind), Start: start, End: end}

	var items []conflict.Item
	switch {
	case kind.Traits().GroupCommitting:
		items, err = s.gatherBandWindow(ctx, actor, start, end)
	case kind == KindPersonalUnavailable:
		items, err = s.gatherPrincipalCommitments(ctx, actor.PrincipalID, start, end)
	}
	if err != nil {
		return nil, err
	}

	report := conflict.Detect(cand, items, req.ExcludeEventID)
	return &report, nil
}

// gatherBandWindow collects the acting band's own events plus the personal
// unavailability of every member, restricted to the candidate window.
func (s *Service) gatherBandWindow(ctx context.Context, actor membership.Membership, from, to time.Time) ([]conflict.Item, error) {
	bandEvents, err := s.repo.ListBandEvents(ctx, actor.BandID, &from, &to)
	if err != nil {
		return nil, httperr.Internal(err)
	}

	members, err := s.members.ListBandMembers(ctx, actor.BandID)
	if err != nil {
		return nil, err
	}
	principalIDs := make([]uint, 0, len(members))
	for _, m := range members {
		principalIDs = append(principalIDs, m.PrincipalID)
	}

	personal, err := s.repo.ListPersonalEventsForPrincipals(ctx, principalIDs, &from, &to)
	if err != nil {
		return nil, httperr.Internal(err)
	}

	items := make([]conflict.Item, 0, len(bandEvents)+len(personal))
	for _, e := range bandEvents {
		items = append(items, toItem(e, ""))
	}
	for _, e := range personal {
		items = append(items, toItem(e, ""))
	}
	return items, nil
}

// gatherPrincipalCommitments collects group-committing events from every band
// the principal belongs to, annotated with each band's name so the caller can
// warn before confirming the unavailability.
func (s *Service) gatherPrincipalCommitments(ctx context.Context, principalID uint, from, to time.Time) ([]conflict.Item, error) {
	memberships, err := s.members.ListMemberships(ctx, principalID)
	if err != nil {
		return nil, err
	}

	var items []conflict.Item
	for _, m := range memberships {
		info, err := s.bands.GetBandInfo(ctx, m.BandID)
		if err != nil {
			return nil, err
		}
		events, err := s.repo.ListBandEvents(ctx, m.BandID, &from, &to)
		if err != nil {
			return nil, httperr.Internal(err)
		}
		for _, e := range events {
			items = append(items, toItem(e, info.Name))
		}
	}
	return items, nil
}

func toItem(e Event, bandName string) conflict.Item {
	return conflict.Item{
		EventID:          e.ID,
		Kind:             string(e.Kind),
		Title:            e.Title,
		Start:            e.StartDate,
		End:              e.IntervalEnd(),
		BandID:           e.BandID,
		BandName:         bandName,
		OwnerPrincipalID: e.OwnerPrincipalID,
	}
}

func kindAllowed(allowed []Kind, kind Kind) bool {
	if !kind.Valid() || kind.Traits().Personal {
		return false
	}
	if len(allowed) == 0 {
		return true
	}
	for _, k := range allowed {
		if k == kind {
			return true
		}
	}
	return false
}
