package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Company is the root of tenancy. Every other row traces back to exactly
// one company through its CompanyID.
type Company struct {
	ID         string    `gorm:"type:varchar(36);primarykey" json:"id"`
	Name       string    `gorm:"type:varchar(255);not null" json:"name"`
	Email      string    `gorm:"type:varchar(255);not null" json:"email"`
	IsApproved bool      `gorm:"not null;default:false" json:"is_approved"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`

	// Relations
	Users    []User    `gorm:"foreignKey:CompanyID" json:"users,omitempty"`
	Projects []Project `gorm:"foreignKey:CompanyID" json:"projects,omitempty"`
}

func (c *Company) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}
