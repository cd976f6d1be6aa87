package band

import (
	"time"

	"gorm.io/datatypes"
)

// Band is the tenant boundary: it owns its events and membership list, and
// nothing inside one band is ever visible to another except through a shared
// member's unified calendar.
type Band struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"size:100;not null" json:"name"`
	// AllowedKinds restricts which event kinds the band schedules, stored as
	// a JSON array of kind strings. Empty means every group kind.
	AllowedKinds datatypes.JSON `json:"allowed_kinds"`
	CreatedBy    uint           `gorm:"not null" json:"created_by"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
}

func (Band) TableName() string {
	return "bands"
}

// CreateBandRequest is the POST /bands body.
type CreateBandRequest struct {
	Name         string   `json:"name" binding:"required"`
	AllowedKinds []string `json:"allowed_kinds,omitempty"`
	DisplayAlias string   `json:"display_alias,omitempty"`
}

// UpdateBandRequest is the PATCH /bands/:bandId body.
type UpdateBandRequest struct {
	Name         *string   `json:"name"`
	AllowedKinds *[]string `json:"allowed_kinds"`
}
