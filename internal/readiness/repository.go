package readiness

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Repository interface {
	// Upsert inserts or overwrites the mark for its (event, membership) pair
	// in one statement.
	Upsert(ctx context.Context, m *Mark) error
	ListByEvent(ctx context.Context, eventID uint) ([]Mark, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Upsert(ctx context.Context, m *Mark) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "event_id"}, {Name: "membership_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"ready", "veto", "note", "updated_at"}),
	}).Create(m).Error
}

func (r *repository) ListByEvent(ctx context.Context, eventID uint) ([]Mark, error) {
	var marks []Mark
	err := r.db.WithContext(ctx).
		Where("event_id = ?", eventID).
		Order("membership_id ASC").
		Find(&marks).Error
	return marks, err
}
