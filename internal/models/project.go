package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProjectStatus string

const (
	ProjectStatusPreparing  ProjectStatus = "preparing"
	ProjectStatusInProgress ProjectStatus = "in_progress"
	ProjectStatusCompleted  ProjectStatus = "completed"
	ProjectStatusSuspended  ProjectStatus = "suspended"
)

// ProjectStatuses lists the four board lanes in display order.
var ProjectStatuses = []ProjectStatus{
	ProjectStatusPreparing,
	ProjectStatusInProgress,
	ProjectStatusCompleted,
	ProjectStatusSuspended,
}

// Valid reports whether s is one of the known statuses. Transitions between
// statuses are unconstrained; only the value itself is checked.
func (s ProjectStatus) Valid() bool {
	switch s {
	case ProjectStatusPreparing, ProjectStatusInProgress, ProjectStatusCompleted, ProjectStatusSuspended:
		return true
	}
	return false
}

type Project struct {
	ID          string        `gorm:"type:varchar(36);primarykey" json:"id"`
	CompanyID   string        `gorm:"type:varchar(36);not null;index" json:"company_id"`
	Name        string        `gorm:"type:varchar(255);not null" json:"name"`
	Description *string       `gorm:"type:text" json:"description"`
	Status      ProjectStatus `gorm:"type:varchar(20);not null;default:'preparing'" json:"status"`
	StartDate   *time.Time    `json:"start_date"`
	EndDate     *time.Time    `json:"end_date"`
	Address     *string       `gorm:"type:varchar(512)" json:"address"`
	ManagerID   *string       `gorm:"type:varchar(36)" json:"manager_id"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`

	// Relations
	Company Company `gorm:"foreignKey:CompanyID" json:"company,omitempty"`
	Manager *User   `gorm:"foreignKey:ManagerID" json:"manager,omitempty"`
}

func (p *Project) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}
