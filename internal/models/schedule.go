package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ScheduleStatus string

const (
	ScheduleStatusPlanned   ScheduleStatus = "planned"
	ScheduleStatusOngoing   ScheduleStatus = "ongoing"
	ScheduleStatusCompleted ScheduleStatus = "completed"
)

type SchedulePriority string

const (
	SchedulePriorityLow    SchedulePriority = "low"
	SchedulePriorityMedium SchedulePriority = "medium"
	SchedulePriorityHigh   SchedulePriority = "high"
)

type Schedule struct {
	ID          string           `gorm:"type:varchar(36);primarykey" json:"id"`
	ProjectID   string           `gorm:"type:varchar(36);not null;index" json:"project_id"`
	CompanyID   string           `gorm:"type:varchar(36);not null;index" json:"company_id"`
	AssignedTo  *string          `gorm:"type:varchar(36)" json:"assigned_to"`
	Title       string           `gorm:"type:varchar(255);not null" json:"title"`
	Description *string          `gorm:"type:text" json:"description"`
	StartDate   time.Time        `json:"start_date"`
	EndDate     time.Time        `json:"end_date"`
	Status      ScheduleStatus   `gorm:"type:varchar(20);not null;default:'planned'" json:"status"`
	Priority    SchedulePriority `gorm:"type:varchar(20);not null;default:'medium'" json:"priority"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`

	// Relations
	Project  Project `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
	Assignee *User   `gorm:"foreignKey:AssignedTo" json:"assignee,omitempty"`
}

func (s *Schedule) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}
