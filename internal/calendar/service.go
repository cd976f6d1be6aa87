package calendar

import (
	"context"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/bandmate-app/band-scheduling-backend/internal/event"
	"github.com/bandmate-app/band-scheduling-backend/internal/membership"
)

// EventSource is the slice of the event service the aggregator reads from.
type EventSource interface {
	ListBandEvents(ctx context.Context, bandID uint, from, to *time.Time) ([]event.Event, error)
	ListPersonalEventsForPrincipals(ctx context.Context, principalIDs []uint, from, to *time.Time) ([]event.Event, error)
}

// BandNames resolves band ids to display names for other-band annotations.
type BandNames interface {
	GetBandName(ctx context.Context, bandID uint) (string, error)
}

// AnnotatedEvent is an event from one of the members' other bands, carrying
// that band's name so the client can render it without another lookup.
type AnnotatedEvent struct {
	event.Event
	BandName string `json:"bandName"`
}

// View is the unified calendar for one band. The three lists are mutually
// exclusive by event id: the band's own events, every member's personal
// unavailability, and the members' commitments in other bands.
type View struct {
	BandEvents      []event.Event    `json:"bandEvents"`
	PersonalEvents  []event.Event    `json:"personalEvents"`
	OtherBandEvents []AnnotatedEvent `json:"otherBandEvents"`
}

type Service struct {
	events  EventSource
	members membership.Directory
	bands   BandNames
}

func NewService(events EventSource, members membership.Directory, bands BandNames) *Service {
	return &Service{events: events, members: members, bands: bands}
}

// GetUnifiedCalendar assembles the shared view for one band. The member list
// is resolved once, then the three branches fetch in parallel under the
// inbound context. Other-band events are deduplicated by event id: two
// members sharing a foreign band must not surface its events twice.
func (s *Service) GetUnifiedCalendar(ctx context.Context, actor membership.Membership, from, to *time.Time) (*View, error) {
	members, err := s.members.ListBandMembers(ctx, actor.BandID)
	if err != nil {
		return nil, err
	}
	principalIDs := make([]uint, 0, len(members))
	for _, m := range members {
		principalIDs = append(principalIDs, m.PrincipalID)
	}

	view := &View{
		BandEvents:      []event.Event{},
		PersonalEvents:  []event.Event{},
		OtherBandEvents: []AnnotatedEvent{},
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		events, err := s.events.ListBandEvents(gctx, actor.BandID, from, to)
		if err != nil {
			return err
		}
		if events != nil {
			view.BandEvents = events
		}
		return nil
	})

	g.Go(func() error {
		events, err := s.events.ListPersonalEventsForPrincipals(gctx, principalIDs, from, to)
		if err != nil {
			return err
		}
		if events != nil {
			view.PersonalEvents = events
		}
		return nil
	})

	g.Go(func() error {
		other, err := s.gatherOtherBands(gctx, actor.BandID, principalIDs, from, to)
		if err != nil {
			return err
		}
		view.OtherBandEvents = other
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.SliceStable(view.OtherBandEvents, func(i, j int) bool {
		a, b := view.OtherBandEvents[i], view.OtherBandEvents[j]
		if !a.StartDate.Equal(b.StartDate) {
			return a.StartDate.Before(b.StartDate)
		}
		return a.ID < b.ID
	})

	return view, nil
}

// gatherOtherBands is the members × other-bands fan-out. Each foreign band is
// fetched once even when several members share it, and events are deduped by
// id before return.
func (s *Service) gatherOtherBands(ctx context.Context, bandID uint, principalIDs []uint, from, to *time.Time) ([]AnnotatedEvent, error) {
	seenBands := map[uint]bool{bandID: true}
	seenEvents := map[uint]bool{}
	annotated := []AnnotatedEvent{}

	for _, principalID := range principalIDs {
		memberships, err := s.members.ListMemberships(ctx, principalID)
		if err != nil {
			return nil, err
		}
		for _, m := range memberships {
			if seenBands[m.BandID] {
				continue
			}
			seenBands[m.BandID] = true

			name, err := s.bands.GetBandName(ctx, m.BandID)
			if err != nil {
				return nil, err
			}
			events, err := s.events.ListBandEvents(ctx, m.BandID, from, to)
			if err != nil {
				return nil, err
			}
			for _, e := range events {
				if seenEvents[e.ID] {
					continue
				}
				seenEvents[e.ID] = true
				annotated = append(annotated, AnnotatedEvent{Event: e, BandName: name})
			}
		}
	}
	return annotated, nil
}
