package invite

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

type fakeMembers struct {
	membership.Service
	added  []membership.Membership
	nextID uint
}

func (f *fakeMembers) AddMember(_ context.Context, bandID, principalID uint, role, alias string) (*membership.Membership, error) {
	for _, m := range f.added {
		if m.BandID == bandID && m.PrincipalID == principalID {
			return nil, httperr.Conflict("already a member of this band")
		}
	}
	f.nextID++
	m := membership.Membership{
		ID:           f.nextID,
		BandID:       bandID,
		PrincipalID:  principalID,
		Role:         role,
		DisplayAlias: alias,
	}
	f.added = append(f.added, m)
	return &m, nil
}

type auditStub struct{}

func (auditStub) LogAction(context.Context, *uint, *uint, string, map[string]interface{}, string, string) error {
	return nil
}

func (auditStub) GetAuditLogs(context.Context, auditlog.Filter) (*auditlog.Page, error) {
	return &auditlog.Page{}, nil
}

func owner(bandID, principalID uint) membership.Membership {
	return membership.Membership{ID: 1, BandID: bandID, PrincipalID: principalID, Role: membership.RoleOwner}
}

func plainMember(bandID, principalID uint) membership.Membership {
	return membership.Membership{ID: 2, BandID: bandID, PrincipalID: principalID, Role: membership.RoleMember}
}

func fixture() (*Service, *fakeMembers) {
	members := &fakeMembers{}
	svc := NewService(NewMemoryStore(), members, auditStub{}, time.Hour)
	return svc, members
}

func TestIssueAndAccept(t *testing.T) {
	svc, members := fixture()
	ctx := context.Background()

	inv, err := svc.Issue(ctx, owner(1, 10), "")
	require.NoError(t, err)
	require.NotEmpty(t, inv.Token)
	assert.Equal(t, uint(1), inv.BandID)

	m, err := svc.Accept(ctx, 20, inv.Token, "Sticks", "")
	require.NoError(t, err)
	assert.Equal(t, uint(1), m.BandID)
	assert.Equal(t, uint(20), m.PrincipalID)
	assert.Equal(t, membership.RoleMember, m.Role)
	assert.Equal(t, "Sticks", m.DisplayAlias)
	require.Len(t, members.added, 1)
}

func TestIssueRequiresManagerRole(t *testing.T) {
	svc, _ := fixture()

	_, err := svc.Issue(context.Background(), plainMember(1, 20), "")
	require.Error(t, err)
	assert.Equal(t, httperr.KindForbidden, httperr.KindOf(err))
}

func TestAcceptConsumesTokenOnce(t *testing.T) {
	svc, _ := fixture()
	ctx := context.Background()

	inv, err := svc.Issue(ctx, owner(1, 10), "")
	require.NoError(t, err)

	_, err = svc.Accept(ctx, 20, inv.Token, "", "")
	require.NoError(t, err)

	_, err = svc.Accept(ctx, 30, inv.Token, "", "")
	require.Error(t, err)
	assert.Equal(t, httperr.KindNotFound, httperr.KindOf(err))
}

func TestAcceptUnknownToken(t *testing.T) {
	svc, _ := fixture()

	_, err := svc.Accept(context.Background(), 20, "not-a-token", "", "")
	require.Error(t, err)
	assert.Equal(t, httperr.KindNotFound, httperr.KindOf(err))
}

func TestAcceptExpiredToken(t *testing.T) {
	store := &memoryStore{tokens: map[string]memoryEntry{}, now: time.Now}
	members := &fakeMembers{}
	svc := NewService(store, members, auditStub{}, time.Hour)
	ctx := context.Background()

	inv, err := svc.Issue(ctx, owner(1, 10), "")
	require.NoError(t, err)

	store.now = func() time.Time { return time.Now().Add(2 * time.Hour) }

	_, err = svc.Accept(ctx, 20, inv.Token, "", "")
	require.Error(t, err)
	assert.Equal(t, httperr.KindNotFound, httperr.KindOf(err))
	assert.Empty(t, members.added)
}

func TestRevokedTokenCannotBeAccepted(t *testing.T) {
	svc, _ := fixture()
	ctx := context.Background()
	act := owner(1, 10)

	inv, err := svc.Issue(ctx, act, "")
	require.NoError(t, err)

	require.NoError(t, svc.Revoke(ctx, act, inv.Token, ""))

	_, err = svc.Accept(ctx, 20, inv.Token, "", "")
	require.Error(t, err)
	assert.Equal(t, httperr.KindNotFound, httperr.KindOf(err))
}

func TestAcceptWhenAlreadyMember(t *testing.T) {
	svc, members := fixture()
	ctx := context.Background()

	_, err := members.AddMember(ctx, 1, 20, membership.RoleMember, "")
	require.NoError(t, err)

	inv, err := svc.Issue(ctx, owner(1, 10), "")
	require.NoError(t, err)

	_, err = svc.Accept(ctx, 20, inv.Token, "", "")
	require.Error(t, err)
	assert.Equal(t, httperr.KindConflict, httperr.KindOf(err))
}
