package membership

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

type Repository interface {
	ListByPrincipal(ctx context.Context, principalID uint) ([]Membership, error)
	ListByBand(ctx context.Context, bandID uint) ([]Membership, error)
	Get(ctx context.Context, principalID, bandID uint) (*Membership, error)
	GetByID(ctx context.Context, id uint) (*Membership, error)
	Create(ctx context.Context, m *Membership) error
	Update(ctx context.Context, m *Membership) error
	// DeleteCascading removes the membership together with its authored
	// events and readiness marks, in one transaction.
	DeleteCascading(ctx context.Context, id uint) error
	CountByRole(ctx context.Context, bandID uint, role string) (int64, error)
	BandExists(ctx context.Context, bandID uint) (bool, error)
	PrincipalExists(ctx context.Context, principalID uint) (bool, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) ListByPrincipal(ctx context.Context, principalID uint) ([]Membership, error) {
	var out []Membership
	err := r.db.WithContext(ctx).
		Where("principal_id = ?", principalID).
		Order("band_id ASC").
		Find(&out).Error
	return out, err
}

func (r *repository) ListByBand(ctx context.Context, bandID uint) ([]Membership, error) {
	var out []Membership
	err := r.db.WithContext(ctx).
		Where("band_id = ?", bandID).
		Order("id ASC").
		Find(&out).Error
	return out, err
}

// Get returns (nil, nil) when the pair has no membership.
func (r *repository) Get(ctx context.Context, principalID, bandID uint) (*Membership, error) {
	var m Membership
	err := r.db.WithContext(ctx).
		Where("principal_id = ? AND band_id = ?", principalID, bandID).
		First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *repository) GetByID(ctx context.Context, id uint) (*Membership, error) {
	var m Membership
	err := r.db.WithContext(ctx).First(&m, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *repository) Create(ctx context.Context, m *Membership) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *repository) Update(ctx context.Context, m *Membership) error {
	return r.db.WithContext(ctx).Save(m).Error
}

func (r *repository) DeleteCascading(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM readiness_marks WHERE membership_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM events WHERE authored_by_membership_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&Membership{}, id).Error
	})
}

func (r *repository) CountByRole(ctx context.Context, bandID uint, role string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&Membership{}).
		Where("band_id = ? AND role = ?", bandID, role).
		Count(&count).Error
	return count, err
}

func (r *repository) BandExists(ctx context.Context, bandID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Table("bands").Where("id = ?", bandID).Count(&count).Error
	return count > 0, err
}

func (r *repository) PrincipalExists(ctx context.Context, principalID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Table("principals").Where("id = ?", principalID).Count(&count).Error
	return count > 0, err
}
