package band

import (
	"context"
	"encoding/json"

	"github.com/bandmate-app/band-scheduling-backend/internal/auditlog"
	"github.com/bandmate-app/band-scheduling-backend/internal/event"
	"github.com/bandmate-app/band-scheduling-backend/internal/httperr"
	"github.com/bandmate-app/band-scheduling-backend/internal/membership"
)

type Service struct {
	repo    Repository
	members membership.Service
	audit   auditlog.Service
}

func NewService(repo Repository, members membership.Service, audit auditlog.Service) *Service {
	return &Service{repo: repo, members: members, audit: audit}
}

// CreateBand creates the tenant and makes the creator its owner.
func (s *Service) CreateBand(ctx context.Context, principalID uint, req CreateBandRequest, ip string) (*Band, error) {
	kinds, err := normalizeKinds(req.AllowedKinds)
	if err != nil {
		return nil, err
	}

	b := &Band{
		Name:         req.Name,
		AllowedKinds: kinds,
		CreatedBy:    principalID,
	}
	if err := s.repo.Create(ctx, b); err != nil {
		return nil, httperr.Internal(err)
	}

	if _, err := s.members.AddMember(ctx, b.ID, principalID, membership.RoleOwner, req.DisplayAlias); err != nil {
		return nil, err
	}

	_ = s.audit.LogAction(ctx, &principalID, &b.ID, "BAND_CREATED",
		map[string]interface{}{"name": b.Name}, ip, "success")

	return b, nil
}

func (s *Service) GetBand(ctx context.Context, id uint) (*Band, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, httperr.Internal(err)
	}
	if b == nil {
		return nil, httperr.NotFound("band not found")
	}
	return b, nil
}

func (s *Service) UpdateBand(ctx context.Context, actor membership.Membership, req UpdateBandRequest, ip string) (*Band, error) {
	b, err := s.GetBand(ctx, actor.BandID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if *req.Name == "" {
			return nil, httperr.Validation("name cannot be empty")
		}
		b.Name = *req.Name
	}
	if req.AllowedKinds != nil {
		kinds, err := normalizeKinds(*req.AllowedKinds)
		if err != nil {
			return nil, err
		}
		b.AllowedKinds = kinds
	}

	if err := s.repo.Update(ctx, b); err != nil {
		return nil, httperr.Internal(err)
	}

	_ = s.audit.LogAction(ctx, &actor.PrincipalID, &b.ID, "BAND_UPDATED",
		map[string]interface{}{"name": b.Name}, ip, "success")

	return b, nil
}

// DeleteBand removes the tenant and everything scoped to it.
func (s *Service) DeleteBand(ctx context.Context, actor membership.Membership, ip string) error {
	b, err := s.GetBand(ctx, actor.BandID)
	if err != nil {
		return err
	}

	if err := s.repo.DeleteCascading(ctx, b.ID); err != nil {
		return httperr.Internal(err)
	}

	_ = s.audit.LogAction(ctx, &actor.PrincipalID, nil, "BAND_DELETED",
		map[string]interface{}{"band_id": b.ID, "name": b.Name}, ip, "success")
	return nil
}

// GetBandInfo implements event.BandSource.
func (s *Service) GetBandInfo(ctx context.Context, bandID uint) (*event.BandInfo, error) {
	b, err := s.GetBand(ctx, bandID)
	if err != nil {
		return nil, err
	}

	var raw []string
	if len(b.AllowedKinds) > 0 {
		if err := json.Unmarshal(b.AllowedKinds, &raw); err != nil {
			return nil, httperr.Internal(err)
		}
	}
	kinds := make([]event.Kind, 0, len(raw))
	for _, k := range raw {
		kinds = append(kinds, event.Kind(k))
	}

	return &event.BandInfo{ID: b.ID, Name: b.Name, AllowedKinds: kinds}, nil
}

// GetBandName implements calendar's band naming source.
func (s *Service) GetBandName(ctx context.Context, bandID uint) (string, error) {
	b, err := s.GetBand(ctx, bandID)
	if err != nil {
		return "", err
	}
	return b.Name, nil
}

func normalizeKinds(raw []string) ([]byte, error) {
	if len(raw) == 0 {
		return []byte("[]"), nil
	}
	seen := map[string]bool{}
	kinds := make([]string, 0, len(raw))
	for _, k := range raw {
		kind := event.Kind(k)
		if !kind.Valid() || kind.Traits().Personal {
			return nil, httperr.Validation("invalid event kind: " + k)
		}
		if !seen[k] {
			seen[k] = true
			kinds = append(kinds, k)
		}
	}
	return json.Marshal(kinds)
}
