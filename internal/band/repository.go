package band

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, b *Band) error
	GetByID(ctx context.Context, id uint) (*Band, error)
	Update(ctx context.Context, b *Band) error
	// DeleteCascading removes the band together with every band-scoped
	// event, readiness mark and membership, in one transaction.
	DeleteCascading(ctx context.Context, id uint) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, b *Band) error {
	return r.db.WithContext(ctx).Create(b).Error
}

func (r *repository) GetByID(ctx context.Context, id uint) (*Band, error) {
	var b Band
	err := r.db.WithContext(ctx).First(&b, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *repository) Update(ctx context.Context, b *Band) error {
	return r.db.WithContext(ctx).Save(b).Error
}

func (r *repository) DeleteCascading(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec(
			"DELETE FROM readiness_marks WHERE event_id IN (SELECT id FROM events WHERE band_id = ?)", id,
		).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM events WHERE band_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM memberships WHERE band_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&Band{}, id).Error
	})
}
