package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AuthAccount is the credential record managed by the identity layer.
// Its ID is shared with the User profile row.
//
// TempPassword holds the last administrator-issued temporary password in
// plaintext so it can be re-surfaced to an administrator. This mirrors the
// behavior of the system this replaces and is a documented deviation from
// conventional credential handling.
type AuthAccount struct {
	ID            string     `gorm:"type:varchar(36);primarykey" json:"id"`
	Email         string     `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	PasswordHash  string     `gorm:"type:varchar(255);not null" json:"-"`
	TempPassword  *string    `gorm:"type:varchar(64)" json:"-"`
	PasswordSetAt *time.Time `json:"-"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

func (a *AuthAccount) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}
