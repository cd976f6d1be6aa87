package membership

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bandmate-app/band-scheduling-backend/internal/auditlog"
	"github.com/bandmate-app/band-scheduling-backend/internal/httperr"
)

type fakeRepo struct {
	memberships map[uint]*Membership
	nextID      uint
	bands       map[uint]bool
	principals  map[uint]bool
	cascaded    []uint
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		memberships: map[uint]*Membership{},
		nextID:      1,
		bands:       map[uint]bool{},
		principals:  map[uint]bool{},
	}
}

func (f *fakeRepo) add(m Membership) *Membership {
	m.ID = f.nextID
	f.nextID++
	copied := m
	f.memberships[copied.ID] = &copied
	return &copied
}

func (f *fakeRepo) ListByPrincipal(_ context.Context, principalID uint) ([]Membership, error) {
	var out []Membership
	for _, m := range f.memberships {
		if m.PrincipalID == principalID {
			out = append(out, *m)
		}
	}
	return out, nil
}

func (f *fakeRepo) ListByBand(_ context.Context, bandID uint) ([]Membership, error) {
	var out []Membership
	for _, m := range f.memberships {
		if m.BandID == bandID {
			out = append(out, *m)
		}
	}
	return out, nil
}

func (f *fakeRepo) Get(_ context.Context, principalID, bandID uint) (*Membership, error) {
	for _, m := range f.memberships {
		if m.PrincipalID == principalID && m.BandID == bandID {
			copied := *m
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeRepo) GetByID(_ context.Context, id uint) (*Membership, error) {
	m, ok := f.memberships[id]
	if !ok {
		return nil, nil
	}
	copied := *m
	return &copied, nil
}

func (f *fakeRepo) Create(_ context.Context, m *Membership) error {
	m.ID = f.nextID
	f.nextID++
	copied := *m
	f.memberships[copied.ID] = &copied
	return nil
}

func (f *fakeRepo) Update(_ context.Context, m *Membership) error {
	copied := *m
	f.memberships[copied.ID] = &copied
	return nil
}

func (f *fakeRepo) DeleteCascading(_ context.Context, id uint) error {
	delete(f.memberships, id)
	f.cascaded = append(f.cascaded, id)
	return nil
}

func (f *fakeRepo) CountByRole(_ context.Context, bandID uint, role string) (int64, error) {
	var count int64
	for _, m := range f.memberships {
		if m.BandID == bandID && m.Role == role {
			count++
		}
	}
	return count, nil
}

func (f *fakeRepo) BandExists(_ context.Context, bandID uint) (bool, error) {
	return f.bands[bandID], nil
}

func (f *fakeRepo) PrincipalExists(_ context.Context, principalID uint) (bool, error) {
	return f.principals[principalID], nil
}

// auditStub satisfies auditlog.Service without a database.
type auditStub struct{}

func (auditStub) LogAction(context.Context, *uint, *uint, string, map[string]interface{}, string, string) error {
	return nil
}

func (auditStub) GetAuditLogs(context.Context, auditlog.Filter) (*auditlog.Page, error) {
	return nil, nil
}

func newTestService(repo *fakeRepo) Service {
	return &service{repo: repo, audit: auditStub{}}
}

func TestAddMemberDuplicateConflict(t *testing.T) {
	repo := newFakeRepo()
	repo.bands[1] = true
	repo.principals[10] = true
	svc := newTestService(repo)

	_, err := svc.AddMember(context.Background(), 1, 10, RoleMember, "Sam")
	require.NoError(t, err)

	_, err = svc.AddMember(context.Background(), 1, 10, RoleMember, "Sam")
	require.Error(t, err)
	assert.Equal(t, httperr.KindConflict, httperr.KindOf(err))
}

func TestAddMemberMissingBand(t *testing.T) {
	repo := newFakeRepo()
	repo.principals[10] = true
	svc := newTestService(repo)

	_, err := svc.AddMember(context.Background(), 99, 10, RoleMember, "")
	require.Error(t, err)
	assert.Equal(t, httperr.KindNotFound, httperr.KindOf(err))
}

func TestChangeRoleRequiresAdmin(t *testing.T) {
	repo := newFakeRepo()
	actor := repo.add(Membership{PrincipalID: 1, BandID: 1, Role: RoleMember})
	target := repo.add(Membership{PrincipalID: 2, BandID: 1, Role: RoleMember})
	svc := newTestService(repo)

	_, err := svc.ChangeRole(context.Background(), *actor, target.ID, RoleAdmin, "")
	require.Error(t, err)
	assert.Equal(t, httperr.KindForbidden, httperr.KindOf(err))
}

func TestChangeRoleOwnerPromotionNeedsOwner(t *testing.T) {
	repo := newFakeRepo()
	admin := repo.add(Membership{PrincipalID: 1, BandID: 1, Role: RoleAdmin})
	target := repo.add(Membership{PrincipalID: 2, BandID: 1, Role: RoleMember})
	svc := newTestService(repo)

	_, err := svc.ChangeRole(context.Background(), *admin, target.ID, RoleOwner, "")
	require.Error(t, err)
	assert.Equal(t, httperr.KindForbidden, httperr.KindOf(err))
}

func TestChangeRoleOwnerSucceeds(t *testing.T) {
	repo := newFakeRepo()
	owner := repo.add(Membership{PrincipalID: 1, BandID: 1, Role: RoleOwner})
	target := repo.add(Membership{PrincipalID: 2, BandID: 1, Role: RoleMember})
	svc := newTestService(repo)

	updated, err := svc.ChangeRole(context.Background(), *owner, target.ID, RoleAdmin, "")
	require.NoError(t, err)
	assert.Equal(t, RoleAdmin, updated.Role)
}

func TestLastOwnerCannotSelfDemote(t *testing.T) {
	repo := newFakeRepo()
	owner := repo.add(Membership{PrincipalID: 1, BandID: 1, Role: RoleOwner})
	svc := newTestService(repo)

	_, err := svc.ChangeRole(context.Background(), *owner, owner.ID, RoleMember, "")
	require.Error(t, err)
	assert.Equal(t, httperr.KindConflict, httperr.KindOf(err))
}

func TestDemoteOwnerWithCoOwner(t *testing.T) {
	repo := newFakeRepo()
	owner := repo.add(Membership{PrincipalID: 1, BandID: 1, Role: RoleOwner})
	repo.add(Membership{PrincipalID: 2, BandID: 1, Role: RoleOwner})
	svc := newTestService(repo)

	updated, err := svc.ChangeRole(context.Background(), *owner, owner.ID, RoleAdmin, "")
	require.NoError(t, err)
	assert.Equal(t, RoleAdmin, updated.Role)
}

func TestRemoveMemberCrossBandIsNotFound(t *testing.T) {
	repo := newFakeRepo()
	actor := repo.add(Membership{PrincipalID: 1, BandID: 1, Role: RoleOwner})
	foreign := repo.add(Membership{PrincipalID: 2, BandID: 2, Role: RoleMember})
	svc := newTestService(repo)

	err := svc.RemoveMember(context.Background(), *actor, foreign.ID, "")
	require.Error(t, err)
	assert.Equal(t, httperr.KindNotFound, httperr.KindOf(err))
}

func TestLastOwnerCannotLeave(t *testing.T) {
	repo := newFakeRepo()
	owner := repo.add(Membership{PrincipalID: 1, BandID: 1, Role: RoleOwner})
	svc := newTestService(repo)

	err := svc.RemoveMember(context.Background(), *owner, owner.ID, "")
	require.Error(t, err)
	assert.Equal(t, httperr.KindConflict, httperr.KindOf(err))
}

func TestSelfLeaveCascades(t *testing.T) {
	repo := newFakeRepo()
	repo.add(Membership{PrincipalID: 1, BandID: 1, Role: RoleOwner})
	member := repo.add(Membership{PrincipalID: 2, BandID: 1, Role: RoleMember})
	svc := newTestService(repo)

	err := svc.RemoveMember(context.Background(), *member, member.ID, "")
	require.NoError(t, err)
	assert.Contains(t, repo.cascaded, member.ID)
}
