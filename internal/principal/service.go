package principal

import (
	"context"

	"github.com/bandmate-app/band-scheduling-backend/internal/httperr"
)

type Service interface {
	// ResolveFromClaims upserts the principal row matching a verified token.
	// First resolution creates the row; later resolutions refresh the
	// verified contact fields if the IdP reports new values.
	ResolveFromClaims(ctx context.Context, claims ResolvedClaims) (*Principal, error)
	GetByID(ctx context.Context, id uint) (*Principal, error)
	UpdateProfile(ctx context.Context, id uint, req UpdateProfileRequest) (*Principal, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) ResolveFromClaims(ctx context.Context, claims ResolvedClaims) (*Principal, error) {
	if claims.Subject == "" {
		return nil, httperr.Unauthenticated("token has no subject")
	}

	p, err := s.repo.FindBySubject(ctx, claims.Subject)
	if err != nil {
		return nil, httperr.Internal(err)
	}

	if p == nil {
		p = &Principal{
			Subject:     claims.Subject,
			Email:       claims.Email,
			Phone:       claims.Phone,
			DisplayName: claims.DisplayName,
		}
		p.ProfileComplete = p.DisplayName != ""
		if err := s.repo.Create(ctx, p); err != nil {
			return nil, httperr.Internal(err)
		}
		return p, nil
	}

	changed := false
	if claims.Email != "" && claims.Email != p.Email {
		p.Email = claims.Email
		changed = true
	}
	if claims.Phone != "" && claims.Phone != p.Phone {
		p.Phone = claims.Phone
		changed = true
	}
	if changed {
		if err := s.repo.Update(ctx, p); err != nil {
			return nil, httperr.Internal(err)
		}
	}

	return p, nil
}

func (s *service) GetByID(ctx context.Context, id uint) (*Principal, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, httperr.Internal(err)
	}
	if p == nil {
		return nil, httperr.NotFound("principal not found")
	}
	return p, nil
}

func (s *service) UpdateProfile(ctx context.Context, id uint, req UpdateProfileRequest) (*Principal, error) {
	p, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.DisplayName != nil {
		p.DisplayName = *req.DisplayName
	}
	if req.Phone != nil {
		p.Phone = *req.Phone
	}
	p.ProfileComplete = p.DisplayName != ""

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, httperr.Internal(err)
	}
	return p, nil
}
