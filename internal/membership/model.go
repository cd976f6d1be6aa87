package membership

import (
	"time"
)

// Role constants to avoid string typos
const (
	RoleOwner  = "owner"
	RoleAdmin  = "admin"
	RoleMember = "member"
)

// ValidRole reports whether s is one of the closed role set.
func ValidRole(s string) bool {
	return s == RoleOwner || s == RoleAdmin || s == RoleMember
}

// Membership binds one principal to one band with a role and a per-band
// display identity. At most one row exists per (principal, band) pair.
type Membership struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	PrincipalID  uint      `gorm:"not null;uniqueIndex:idx_memberships_principal_band" json:"principal_id"`
	BandID       uint      `gorm:"not null;uniqueIndex:idx_memberships_principal_band;index" json:"band_id"`
	Role         string    `gorm:"size:20;not null;default:member" json:"role"`
	DisplayAlias string    `gorm:"size:100" json:"display_alias"`
	IconEmoji    string    `gorm:"size:16" json:"icon_emoji"`
	Color        string    `gorm:"size:16" json:"color"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (Membership) TableName() string {
	return "memberships"
}

// CanManageMembers reports whether the role may add/remove members and issue
// invites.
func (m Membership) CanManageMembers() bool {
	return m.Role == RoleOwner || m.Role == RoleAdmin
}

// ChangeRoleRequest is the PATCH .../members/:membershipId/role body.
type ChangeRoleRequest struct {
	Role string `json:"role" binding:"required"`
}

// UpdateIdentityRequest updates the caller's own per-band display identity.
type UpdateIdentityRequest struct {
	DisplayAlias *string `json:"display_alias"`
	IconEmoji    *string `json:"icon_emoji"`
	Color        *string `json:"color"`
}
