package event

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bandmate-app/band-scheduling-backend/internal/auditlog"
	"github.com/bandmate-app/band-scheduling-backend/internal/httperr"
	"github.com/bandmate-app/band-scheduling-backend/internal/membership"
)

type memRepo struct {
	events map[uint]*Event
	nextID uint
}

func newMemRepo() *memRepo {
	return &memRepo{events: map[uint]*Event{}, nextID: 1}
}

func (r *memRepo) Create(_ context.Context, e *Event) error {
	e.ID = r.nextID
	r.nextID++
	copied := *e
	r.events[copied.ID] = &copied
	return nil
}

func (r *memRepo) GetBandEvent(_ context.Context, bandID, id uint) (*Event, error) {
	e, ok := r.events[id]
	if !ok || e.BandID == nil || *e.BandID != bandID {
		return nil, nil
	}
	copied := *e
	return &copied, nil
}

func (r *memRepo) GetPersonalEvent(_ context.Context, principalID, id uint) (*Event, error) {
	e, ok := r.events[id]
	if !ok || e.OwnerPrincipalID == nil || *e.OwnerPrincipalID != principalID {
		return nil, nil
	}
	copied := *e
	return &copied, nil
}

func inRange(e *Event, from, to *time.Time) bool {
	if to != nil && e.StartDate.After(*to) {
		return false
	}
	if from != nil && e.IntervalEnd().Before(*from) {
		return false
	}
	return true
}

func (r *memRepo) ListBandEvents(_ context.Context, bandID uint, from, to *time.Time) ([]Event, error) {
	var out []Event
	for _, e := range r.events {
		if e.BandID != nil && *e.BandID == bandID && inRange(e, from, to) {
			out = append(out, *e)
		}
	}
	return out, nil
}

func (r *memRepo) ListPersonalEvents(_ context.Context, principalID uint, from, to *time.Time) ([]Event, error) {
	var out []Event
	for _, e := range r.events {
		if e.OwnerPrincipalID != nil && *e.OwnerPrincipalID == principalID && inRange(e, from, to) {
			out = append(out, *e)
		}
	}
	return out, nil
}

func (r *memRepo) ListPersonalEventsForPrincipals(ctx context.Context, ids []uint, from, to *time.Time) ([]Event, error) {
	var out []Event
	for _, id := range ids {
		events, _ := r.ListPersonalEvents(ctx, id, from, to)
		out = append(out, events...)
	}
	return out, nil
}

func (r *memRepo) Update(_ context.Context, e *Event) error {
	copied := *e
	r.events[copied.ID] = &copied
	return nil
}

func (r *memRepo) DeleteBandEvent(_ context.Context, bandID, id uint) (bool, error) {
	e, ok := r.events[id]
	if !ok || e.BandID == nil || *e.BandID != bandID {
		return false, nil
	}
	delete(r.events, id)
	return true, nil
}

func (r *memRepo) DeletePersonalEvent(_ context.Context, principalID, id uint) (bool, error) {
	e, ok := r.events[id]
	if !ok || e.OwnerPrincipalID == nil || *e.OwnerPrincipalID != principalID {
		return false, nil
	}
	delete(r.events, id)
	return true, nil
}

type fakeDirectory struct {
	byBand      map[uint][]membership.Membership
	byPrincipal map[uint][]membership.Membership
}

func (f *fakeDirectory) ListMemberships(_ context.Context, principalID uint) ([]membership.Membership, error) {
	return f.byPrincipal[principalID], nil
}

func (f *fakeDirectory) GetMembership(_ context.Context, principalID, bandID uint) (*membership.Membership, error) {
	for _, m := range f.byBand[bandID] {
		if m.PrincipalID == principalID {
			copied := m
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeDirectory) ListBandMembers(_ context.Context, bandID uint) ([]membership.Membership, error) {
	return f.byBand[bandID], nil
}

type fakeBands struct {
	names map[uint]string
}

func (f *fakeBands) GetBandInfo(_ context.Context, bandID uint) (*BandInfo, error) {
	name, ok := f.names[bandID]
	if !ok {
		return nil, httperr.NotFound("band not found")
	}
	return &BandInfo{ID: bandID, Name: name}, nil
}

type auditStub struct{}

func (auditStub) LogAction(context.Context, *uint, *uint, string, map[string]interface{}, string, string) error {
	return nil
}

func (auditStub) GetAuditLogs(context.Context, auditlog.Filter) (*auditlog.Page, error) {
	return nil, nil
}

func fixture() (*Service, *memRepo, membership.Membership, membership.Membership) {
	repo := newMemRepo()
	alice := membership.Membership{ID: 1, PrincipalID: 10, BandID: 1, Role: membership.RoleOwner}
	bob := membership.Membership{ID: 2, PrincipalID: 11, BandID: 1, Role: membership.RoleMember}
	dir := &fakeDirectory{
		byBand: map[uint][]membership.Membership{
			1: {alice, bob},
		},
		byPrincipal: map[uint][]membership.Membership{
			10: {alice},
			11: {bob, {ID: 3, PrincipalID: 11, BandID: 2, Role: membership.RoleMember}},
		},
	}
	dir.byBand[2] = []membership.Membership{{ID: 3, PrincipalID: 11, BandID: 2, Role: membership.RoleMember}}
	bands := &fakeBands{names: map[uint]string{1: "The Sonics", 2: "Night Shift"}}
	svc := NewService(repo, dir, bands, auditStub{})
	return svc, repo, alice, bob
}

func TestCreateBandEventPersists(t *testing.T) {
	svc, repo, alice, _ := fixture()

	e, err := svc.CreateBandEvent(context.Background(), alice, CreateEventRequest{
		Title:    "Spring gig",
		Kind:     "performance",
		Date:     "2025-03-01",
		IsPublic: true,
		Venue:    "The Paramount",
	}, "127.0.0.1")
	require.NoError(t, err)
	require.NotNil(t, e.BandID)
	assert.Equal(t, uint(1), *e.BandID)
	require.NotNil(t, e.AuthoredByMembershipID)
	assert.Equal(t, alice.ID, *e.AuthoredByMembershipID)
	assert.Len(t, repo.events, 1)
}

func TestUpdateCrossTenantFailsNotFound(t *testing.T) {
	svc, repo, alice, _ := fixture()

	otherBand := uint(2)
	membershipID := uint(3)
	repo.Create(context.Background(), &Event{
		BandID:                 &otherBand,
		AuthoredByMembershipID: &membershipID,
		Kind:                   KindRehearsal,
		Title:                  "foreign",
		StartDate:              date("2025-03-01"),
		Location:               "elsewhere",
	})

	title := "hijacked"
	_, err := svc.UpdateBandEvent(context.Background(), alice, 1, UpdateEventRequest{Title: &title}, "")
	require.Error(t, err)
	assert.Equal(t, httperr.KindNotFound, httperr.KindOf(err))

	// the foreign event is untouched
	assert.Equal(t, "foreign", repo.events[1].Title)
}

func TestDeleteCrossTenantFailsNotFound(t *testing.T) {
	svc, repo, alice, _ := fixture()

	otherBand := uint(2)
	membershipID := uint(3)
	repo.Create(context.Background(), &Event{
		BandID:                 &otherBand,
		AuthoredByMembershipID: &membershipID,
		Kind:                   KindRehearsal,
		Title:                  "foreign",
		StartDate:              date("2025-03-01"),
		Location:               "elsewhere",
	})

	err := svc.DeleteBandEvent(context.Background(), alice, 1, "")
	require.Error(t, err)
	assert.Equal(t, httperr.KindNotFound, httperr.KindOf(err))
	assert.Len(t, repo.events, 1)
}

// The scheduling scenario: a rehearsal proposed on a day a co-member marked
// unavailable yields one unavailability conflict and no same-kind conflicts.
func TestCheckConflictsUnavailabilityScenario(t *testing.T) {
	svc, repo, alice, bob := fixture()

	end := date("2025-03-02")
	repo.Create(context.Background(), &Event{
		OwnerPrincipalID: &bob.PrincipalID,
		Kind:             KindPersonalUnavailable,
		Title:            "Unavailable",
		StartDate:        date("2025-02-28"),
		EndDate:          &end,
		IsAllDay:         true,
	})

	report, err := svc.CheckConflicts(context.Background(), alice, ConflictCheckRequest{
		Date: "2025-03-01",
		Kind: "rehearsal",
	})
	require.NoError(t, err)
	require.Len(t, report.UnavailabilityConflicts, 1)
	assert.Empty(t, report.SameKindConflicts)
}

func TestCheckConflictsSelfExclusion(t *testing.T) {
	svc, _, alice, _ := fixture()

	created, err := svc.CreateBandEvent(context.Background(), alice, CreateEventRequest{
		Title:    "Practice",
		Kind:     "rehearsal",
		Date:     "2025-04-10",
		Location: "Studio B",
	}, "")
	require.NoError(t, err)

	report, err := svc.CheckConflicts(context.Background(), alice, ConflictCheckRequest{
		Date:           "2025-04-10",
		Kind:           "rehearsal",
		ExcludeEventID: &created.ID,
	})
	require.NoError(t, err)
	assert.False(t, report.HasConflicts())

	report, err = svc.CheckConflicts(context.Background(), alice, ConflictCheckRequest{
		Date: "2025-04-10",
		Kind: "rehearsal",
	})
	require.NoError(t, err)
	assert.Len(t, report.SameKindConflicts, 1)
}

// Marking unavailability warns about committing events in every band the
// principal belongs to, annotated with the band's name.
func TestCheckConflictsAffectedGroupEventsAcrossBands(t *testing.T) {
	svc, repo, _, bob := fixture()

	band1, band2 := uint(1), uint(2)
	m1, m3 := uint(1), uint(3)
	repo.Create(context.Background(), &Event{
		BandID: &band1, AuthoredByMembershipID: &m1,
		Kind: KindRehearsal, Title: "Band 1 practice",
		StartDate: date("2025-06-05"), Location: "Studio A",
	})
	repo.Create(context.Background(), &Event{
		BandID: &band2, AuthoredByMembershipID: &m3,
		Kind: KindPerformance, Title: "Band 2 gig",
		StartDate: date("2025-06-06"), IsPublic: true, Venue: "Hall",
	})

	report, err := svc.CheckConflicts(context.Background(), bob, ConflictCheckRequest{
		Date:    "2025-06-04",
		EndDate: "2025-06-07",
		Kind:    "personal_unavailable",
	})
	require.NoError(t, err)
	require.Len(t, report.AffectedGroupEvents, 2)

	names := map[string]bool{}
	for _, item := range report.AffectedGroupEvents {
		names[item.BandName] = true
	}
	assert.True(t, names["The Sonics"])
	assert.True(t, names["Night Shift"])
}

func TestCreateBandEventRejectsPersonalKind(t *testing.T) {
	svc, _, alice, _ := fixture()

	_, err := svc.CreateBandEvent(context.Background(), alice, CreateEventRequest{
		Title: "nope",
		Kind:  "personal_unavailable",
		Date:  "2025-03-01",
	}, "")
	require.Error(t, err)
	assert.Equal(t, httperr.KindValidation, httperr.KindOf(err))
}
