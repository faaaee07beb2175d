package models

import (
	"time"
)

type Role string

const (
	RoleAdmin   Role = "admin"
	RoleManager Role = "manager"
	RoleViewer  Role = "viewer"
)

// MapRole translates the role vocabulary used by clients (admin/manager/member)
// to the storage vocabulary (admin/manager/viewer). This is the single
// authoritative mapping; anything unrecognized becomes a viewer.
func MapRole(input string) Role {
	switch input {
	case "admin":
		return RoleAdmin
	case "manager":
		return RoleManager
	default:
		return RoleViewer
	}
}

// User is a company member's profile row. Its ID is shared with the
// matching AuthAccount; the two must exist as a pair.
type User struct {
	ID        string    `gorm:"type:varchar(36);primarykey" json:"id"`
	CompanyID string    `gorm:"type:varchar(36);not null;index" json:"company_id"`
	Email     string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Name      string    `gorm:"type:varchar(255);not null" json:"name"`
	Role      Role      `gorm:"type:varchar(20);not null;default:'viewer'" json:"role"`
	AvatarURL *string   `gorm:"type:varchar(512)" json:"avatar_url"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Company Company `gorm:"foreignKey:CompanyID" json:"company,omitempty"`
}
