package membership

import (
	"context"

	"github.com/bandmate-app/band-scheduling-backend/internal/auditlog"
	"github.com/bandmate-app/band-scheduling-backend/internal/httperr"
)

// Directory is the read-only lookup surface other components depend on
// (authorization guard, calendar aggregator, conflict checks).
type Directory interface {
	ListMemberships(ctx context.Context, principalID uint) ([]Membership, error)
	// GetMembership returns (nil, nil) when the principal is not a member.
	GetMembership(ctx context.Context, principalID, bandID uint) (*Membership, error)
	ListBandMembers(ctx context.Context, bandID uint) ([]Membership, error)
}

// Service is the full directory including membership writes.
type Service interface {
	Directory

	AddMember(ctx context.Context, bandID, principalID uint, role, alias string) (*Membership, error)
	ChangeRole(ctx context.Context, actor Membership, membershipID uint, newRole, ip string) (*Membership, error)
	RemoveMember(ctx context.Context, actor Membership, membershipID uint, ip string) error
	UpdateIdentity(ctx context.Context, actor Membership, req UpdateIdentityRequest) (*Membership, error)
}

type service struct {
	repo  Repository
	audit auditlog.Service
}

func NewService(repo Repository, audit auditlog.Service) Service {
	return &service{repo: repo, audit: audit}
}

func (s *service) ListMemberships(ctx context.Context, principalID uint) ([]Membership, error) {
	out, err := s.repo.ListByPrincipal(ctx, principalID)
	if err != nil {
		return nil, httperr.Internal(err)
	}
	return out, nil
}

func (s *service) GetMembership(ctx context.Context, principalID, bandID uint) (*Membership, error) {
	m, err := s.repo.Get(ctx, principalID, bandID)
	if err != nil {
		return nil, httperr.Internal(err)
	}
	return m, nil
}

func (s *service) ListBandMembers(ctx context.Context, bandID uint) ([]Membership, error) {
	out, err := s.repo.ListByBand(ctx, bandID)
	if err != nil {
		return nil, httperr.Internal(err)
	}
	return out, nil
}

// AddMember creates a membership. Used by band creation (owner), invite
// acceptance (member) and direct admin adds.
func (s *service) AddMember(ctx context.Context, bandID, principalID uint, role, alias string) (*Membership, error) {
	if !ValidRole(role) {
		return nil, httperr.Validation("invalid role: " + role)
	}

	ok, err := s.repo.BandExists(ctx, bandID)
	if err != nil {
		return nil, httperr.Internal(err)
	}
	if !ok {
		return nil, httperr.NotFound("band not found")
	}

	ok, err = s.repo.PrincipalExists(ctx, principalID)
	if err != nil {
		return nil, httperr.Internal(err)
	}
	if !ok {
		return nil, httperr.NotFound("principal not found")
	}

	existing, err := s.repo.Get(ctx, principalID, bandID)
	if err != nil {
		return nil, httperr.Internal(err)
	}
	if existing != nil {
		return nil, httperr.Conflict("already a member of this band")
	}

	m := &Membership{
		PrincipalID:  principalID,
		BandID:       bandID,
		Role:         role,
		DisplayAlias: alias,
	}
	if err := s.repo.Create(ctx, m); err != nil {
		return nil, httperr.Internal(err)
	}
	return m, nil
}

// ChangeRole enforces the role-gating rules: only owners and admins may change
// roles, only owners may grant or revoke owner, and the last owner can never
// be demoted.
func (s *service) ChangeRole(ctx context.Context, actor Membership, membershipID uint, newRole, ip string) (*Membership, error) {
	if !ValidRole(newRole) {
		return nil, httperr.Validation("invalid role: " + newRole)
	}
	if !actor.CanManageMembers() {
		return nil, httperr.Forbidden("only owners and admins can change roles")
	}

	target, err := s.repo.GetByID(ctx, membershipID)
	if err != nil {
		return nil, httperr.Internal(err)
	}
	if target == nil || target.BandID != actor.BandID {
		// cross-band membership ids are indistinguishable from absent ones
		return nil, httperr.NotFound("membership not found")
	}

	if newRole == RoleOwner && actor.Role != RoleOwner {
		return nil, httperr.Forbidden("only an owner can promote to owner")
	}
	if target.Role == RoleOwner {
		if actor.Role != RoleOwner {
			return nil, httperr.Forbidden("only an owner can change another owner's role")
		}
		if newRole != RoleOwner {
			owners, err := s.repo.CountByRole(ctx, actor.BandID, RoleOwner)
			if err != nil {
				return nil, httperr.Internal(err)
			}
			if owners <= 1 {
				return nil, httperr.Conflict("cannot demote the last owner; transfer ownership first")
			}
		}
	}

	oldRole := target.Role
	target.Role = newRole
	if err := s.repo.Update(ctx, target); err != nil {
		return nil, httperr.Internal(err)
	}

	_ = s.audit.LogAction(ctx, &actor.PrincipalID, &actor.BandID, "MEMBER_ROLE_CHANGED",
		map[string]interface{}{
			"membership_id": target.ID,
			"from":          oldRole,
			"to":            newRole,
		}, ip, "success")

	return target, nil
}

// RemoveMember removes a membership, cascading its authored events and
// readiness marks. Any member may remove themselves (leave); removing someone
// else requires owner/admin, and removing an owner requires owner. The last
// owner can never be removed, not even by themselves.
func (s *service) RemoveMember(ctx context.Context, actor Membership, membershipID uint, ip string) error {
	target, err := s.repo.GetByID(ctx, membershipID)
	if err != nil {
		return httperr.Internal(err)
	}
	if target == nil || target.BandID != actor.BandID {
		return httperr.NotFound("membership not found")
	}

	selfLeave := target.ID == actor.ID
	if !selfLeave {
		if !actor.CanManageMembers() {
			return httperr.Forbidden("only owners and admins can remove members")
		}
		if target.Role == RoleOwner && actor.Role != RoleOwner {
			return httperr.Forbidden("only an owner can remove another owner")
		}
	}

	if target.Role == RoleOwner {
		owners, err := s.repo.CountByRole(ctx, actor.BandID, RoleOwner)
		if err != nil {
			return httperr.Internal(err)
		}
		if owners <= 1 {
			return httperr.Conflict("cannot remove the last owner; transfer ownership first")
		}
	}

	if err := s.repo.DeleteCascading(ctx, target.ID); err != nil {
		return httperr.Internal(err)
	}

	action := "MEMBER_REMOVED"
	if selfLeave {
		action = "MEMBER_LEFT"
	}
	_ = s.audit.LogAction(ctx, &actor.PrincipalID, &actor.BandID, action,
		map[string]interface{}{
			"membership_id": target.ID,
			"principal_id":  target.PrincipalID,
			"role":          target.Role,
		}, ip, "success")

	return nil
}

func (s *service) UpdateIdentity(ctx context.Context, actor Membership, req UpdateIdentityRequest) (*Membership, error) {
	m, err := s.repo.GetByID(ctx, actor.ID)
	if err != nil {
		return nil, httperr.Internal(err)
	}
	if m == nil {
		return nil, httperr.NotFound("membership not found")
	}

	if req.DisplayAlias != nil {
		m.DisplayAlias = *req.DisplayAlias
	}
	if req.IconEmoji != nil {
		m.IconEmoji = *req.IconEmoji
	}
	if req.Color != nil {
		m.Color = *req.Color
	}

	if err := s.repo.Update(ctx, m); err != nil {
		return nil, httperr.Internal(err)
	}
	return m, nil
}
