package event

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

// Repository is the tenant-scoped storage contract. Every band-scoped method
// takes the band id as part of the query so a cross-tenant event id can never
// be read or mutated by mistake; the mismatch surfaces as absence.
type Repository interface {
	Create(ctx context.Context, e *Event) error
	GetBandEvent(ctx context.Context, bandID, id uint) (*Event, error)
	GetPersonalEvent(ctx context.Context, principalID, id uint) (*Event, error)
	ListBandEvents(ctx context.Context, bandID uint, from, to *time.Time) ([]Event, error)
	ListPersonalEvents(ctx context.Context, principalID uint, from, to *time.Time) ([]Event, error)
	ListPersonalEventsForPrincipals(ctx context.Context, principalIDs []uint, from, to *time.Time) ([]Event, error)
	Update(ctx context.Context, e *Event) error
	DeleteBandEvent(ctx context.Context, bandID, id uint) (bool, error)
	DeletePersonalEvent(ctx context.Context, principalID, id uint) (bool, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, e *Event) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *repository) GetBandEvent(ctx context.Context, bandID, id uint) (*Event, error) {
	var e Event
	err := r.db.WithContext(ctx).
		Where("id = ? AND band_id = ?", id, bandID).
		First(&e).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *repository) GetPersonalEvent(ctx context.Context, principalID, id uint) (*Event, error) {
	var e Event
	err := r.db.WithContext(ctx).
		Where("id = ? AND owner_principal_id = ?", id, principalID).
		First(&e).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// withRange narrows to events whose inclusive date interval overlaps
// [from, to].
func withRange(query *gorm.DB, from, to *time.Time) *gorm.DB {
	if to != nil {
		query = query.Where("start_date <= ?", *to)
	}
	if from != nil {
		query = query.Where("COALESCE(end_date, start_date) >= ?", *from)
	}
	return query
}

func (r *repository) ListBandEvents(ctx context.Context, bandID uint, from, to *time.Time) ([]Event, error) {
	var events []Event
	query := r.db.WithContext(ctx).Where("band_id = ?", bandID)
	err := withRange(query, from, to).
		Order("start_date ASC, id ASC").
		Find(&events).Error
	return events, err
}

func (r *repository) ListPersonalEvents(ctx context.Context, principalID uint, from, to *time.Time) ([]Event, error) {
	var events []Event
	query := r.db.WithContext(ctx).Where("owner_principal_id = ?", principalID)
	err := withRange(query, from, to).
		Order("start_date ASC, id ASC").
		Find(&events).Error
	return events, err
}

func (r *repository) ListPersonalEventsForPrincipals(ctx context.Context, principalIDs []uint, from, to *time.Time) ([]Event, error) {
	if len(principalIDs) == 0 {
		return nil, nil
	}
	var events []Event
	query := r.db.WithContext(ctx).Where("owner_principal_id IN ?", principalIDs)
	err := withRange(query, from, to).
		Order("start_date ASC, id ASC").
		Find(&events).Error
	return events, err
}

func (r *repository) Update(ctx context.Context, e *Event) error {
	return r.db.WithContext(ctx).Save(e).Error
}

func (r *repository) DeleteBandEvent(ctx context.Context, bandID, id uint) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("id = ? AND band_id = ?", id, bandID).
		Delete(&Event{})
	return res.RowsAffected > 0, res.Error
}

func (r *repository) DeletePersonalEvent(ctx context.Context, principalID, id uint) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("id = ? AND owner_principal_id = ?", id, principalID).
		Delete(&Event{})
	return res.RowsAffected > 0, res.Error
}
