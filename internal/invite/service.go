package invite

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/bandmate-app/band-scheduling-backend/internal/auditlog"
	"github.com/bandmate-app/band-scheduling-backend/internal/httperr"
	"github.com/bandmate-app/band-scheduling-backend/internal/membership"
)

// Invite is the response to an issue request. The token is shown once; the
// backend keeps only the store entry.
type Invite struct {
	Token     string    `json:"token"`
	BandID    uint      `json:"band_id"`
	ExpiresAt time.Time `json:"expires_at"`
}

type Service struct {
	store   TokenStore
	members membership.Service
	audit   auditlog.Service
	ttl     time.Duration
}

func NewService(store TokenStore, members membership.Service, audit auditlog.Service, ttl time.Duration) *Service {
	return &Service{store: store, members: members, audit: audit, ttl: ttl}
}

// Issue mints a single-use join token for the acting band.
func (s *Service) Issue(ctx context.Context, actor membership.Membership, ip string) (*Invite, error) {
	if !actor.CanManageMembers() {
		return nil, httperr.Forbidden("only owners and admins can issue invites")
	}

	token := uuid.NewString()
	payload := Payload{BandID: actor.BandID, IssuedBy: actor.PrincipalID}
	if err := s.store.Put(ctx, token, payload, s.ttl); err != nil {
		return nil, httperr.Internal(err)
	}

	_ = s.audit.LogAction(ctx, &actor.PrincipalID, &actor.BandID, "INVITE_ISSUED",
		map[string]interface{}{"expires_in_hours": int(s.ttl.Hours())}, ip, "success")

	return &Invite{
		Token:     token,
		BandID:    actor.BandID,
		ExpiresAt: time.Now().Add(s.ttl),
	}, nil
}

// Accept consumes the token and joins the caller to the band as a member.
// The consume happens first, so a duplicate accept of the same token fails
// NotFound even when racing.
func (s *Service) Accept(ctx context.Context, principalID uint, token, alias, ip string) (*membership.Membership, error) {
	payload, err := s.store.Consume(ctx, token)
	if err != nil {
		return nil, httperr.Internal(err)
	}
	if payload == nil {
		return nil, httperr.NotFound("invite not found or expired")
	}

	m, err := s.members.AddMember(ctx, payload.BandID, principalID, membership.RoleMember, alias)
	if err != nil {
		return nil, err
	}

	_ = s.audit.LogAction(ctx, &principalID, &payload.BandID, "INVITE_ACCEPTED",
		map[string]interface{}{"issued_by": payload.IssuedBy}, ip, "success")

	return m, nil
}

// Revoke invalidates an outstanding token. Revoking an unknown token is a
// no-op; the end state is the same.
func (s *Service) Revoke(ctx context.Context, actor membership.Membership, token, ip string) error {
	if !actor.CanManageMembers() {
		return httperr.Forbidden("only owners and admins can revoke invites")
	}
	if err := s.store.Revoke(ctx, token); err != nil {
		return httperr.Internal(err)
	}

	_ = s.audit.LogAction(ctx, &actor.PrincipalID, &actor.BandID, "INVITE_REVOKED",
		map[string]interface{}{}, ip, "success")
	return nil
}
