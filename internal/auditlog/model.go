package auditlog

import (
	"time"

	"gorm.io/datatypes"
)

// AuditLog represents the audit_logs table
type AuditLog struct {
	ID          uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	PrincipalID *uint          `gorm:"index" json:"principal_id"` // nullable (e.g. rejected before resolution)
	BandID      *uint          `gorm:"index" json:"band_id"`      // nullable (personal events, invite acceptance)
	Action      string         `gorm:"size:100;not null;index" json:"action"`
	Details     datatypes.JSON `json:"details"`
	IPAddress   string         `gorm:"size:45" json:"ip_address"`
	Status      string         `gorm:"size:20;not null;index" json:"status"` // success/failure
	CreatedAt   time.Time      `gorm:"autoCreateTime;index" json:"created_at"`
}

// TableName overrides table name for AuditLog
func (AuditLog) TableName() string {
	return "audit_logs"
}

// Filter narrows a band's audit trail listing.
type Filter struct {
	BandID      *uint
	PrincipalID *uint
	Action      string
	Status      string
	Page        int
	Limit       int
}

// Page is one page of a band's audit trail.
type Page struct {
	Data       []AuditLog `json:"data"`
	Total      int64      `json:"total"`
	Page       int        `json:"page"`
	Limit      int        `json:"limit"`
	TotalPages int        `json:"total_pages"`
}
