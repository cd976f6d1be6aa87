package readiness

import (
	"context"

	"github.com/bandmate-app/band-scheduling-backend/internal/auditlog"
	"github.com/bandmate-app/band-scheduling-backend/internal/event"
	"github.com/bandmate-app/band-scheduling-backend/internal/httperr"
	"github.com/bandmate-app/band-scheduling-backend/internal/membership"
)

// EventLookup verifies the target event exists inside the acting band.
type EventLookup interface {
	GetBandEvent(ctx context.Context, bandID, id uint) (*event.Event, error)
}

// Summary is the per-event rollup returned alongside the raw marks.
type Summary struct {
	Marks      []Mark `json:"marks"`
	ReadyCount int    `json:"ready_count"`
	VetoCount  int    `json:"veto_count"`
}

type Service struct {
	repo   Repository
	events EventLookup
	audit  auditlog.Service
}

func NewService(repo Repository, events EventLookup, audit auditlog.Service) *Service {
	return &Service{repo: repo, events: events, audit: audit}
}

// SetMark upserts the acting member's readiness for a band event. A veto
// implies not ready.
func (s *Service) SetMark(ctx context.Context, actor membership.Membership, eventID uint, req UpsertRequest, ip string) (*Mark, error) {
	e, err := s.events.GetBandEvent(ctx, actor.BandID, eventID)
	if err != nil {
		return nil, httperr.Internal(err)
	}
	if e == nil {
		return nil, httperr.NotFound("event not found")
	}

	m := &Mark{
		EventID:      eventID,
		MembershipID: actor.ID,
		Ready:        req.Ready && !req.Veto,
		Veto:         req.Veto,
		Note:         req.Note,
	}
	if err := s.repo.Upsert(ctx, m); err != nil {
		return nil, httperr.Internal(err)
	}

	_ = s.audit.LogAction(ctx, &actor.PrincipalID, &actor.BandID, "READINESS_SET",
		map[string]interface{}{
			"event_id": eventID,
			"ready":    m.Ready,
			"veto":     m.Veto,
		}, ip, "success")

	return m, nil
}

// GetEventReadiness lists every member's mark for a band event.
func (s *Service) GetEventReadiness(ctx context.Context, actor membership.Membership, eventID uint) (*Summary, error) {
	e, err := s.events.GetBandEvent(ctx, actor.BandID, eventID)
	if err != nil {
		return nil, httperr.Internal(err)
	}
	if e == nil {
		return nil, httperr.NotFound("event not found")
	}

	marks, err := s.repo.ListByEvent(ctx, eventID)
	if err != nil {
		return nil, httperr.Internal(err)
	}
	if marks == nil {
		marks = []Mark{}
	}

	summary := &Summary{Marks: marks}
	for _, m := range marks {
		if m.Ready {
			summary.ReadyCount++
		}
		if m.Veto {
			summary.VetoCount++
		}
	}
	return summary, nil
}
