package principal

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

type Repository interface {
	FindBySubject(ctx context.Context, subject string) (*Principal, error)
	FindByID(ctx context.Context, id uint) (*Principal, error)
	Create(ctx context.Context, p *Principal) error
	Update(ctx context.Context, p *Principal) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// FindBySubject returns (nil, nil) when no principal matches; absence is not
// an error on the resolution path.
func (r *repository) FindBySubject(ctx context.Context, subject string) (*Principal, error) {
	var p Principal
	err := r.db.WithContext(ctx).Where("subject = ?", subject).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repository) FindByID(ctx context.Context, id uint) (*Principal, error) {
	var p Principal
	err := r.db.WithContext(ctx).First(&p, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repository) Create(ctx context.Context, p *Principal) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *repository) Update(ctx context.Context, p *Principal) error {
	return r.db.WithContext(ctx).Save(p).Error
}
