package principal

import (
	"time"
)

// Principal is an authenticated user as resolved from the external identity
// provider. Rows are created on first successful token resolution and never
// deleted, only updated.
type Principal struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	Subject         string    `gorm:"size:255;uniqueIndex;not null" json:"-"` // IdP `sub` claim
	Email           string    `gorm:"size:100" json:"email"`
	Phone           string    `gorm:"size:20" json:"phone"`
	DisplayName     string    `gorm:"size:100" json:"display_name"`
	ProfileComplete bool      `gorm:"default:false" json:"profile_complete"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func (Principal) TableName() string {
	return "principals"
}

// ResolvedClaims carries the identity fields the auth middleware extracted
// from a verified token.
type ResolvedClaims struct {
	Subject     string
	Email       string
	Phone       string
	DisplayName string
}

// UpdateProfileRequest is the PATCH /users/me body.
type UpdateProfileRequest struct {
	DisplayName *string `json:"display_name"`
	Phone       *string `json:"phone"`
}
