package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ReportType string

const (
	ReportTypeDaily   ReportType = "daily"
	ReportTypeMonthly ReportType = "monthly"
)

type Report struct {
	ID           string     `gorm:"type:varchar(36);primarykey" json:"id"`
	ProjectID    string     `gorm:"type:varchar(36);not null;index" json:"project_id"`
	CompanyID    string     `gorm:"type:varchar(36);not null;index" json:"company_id"`
	ReportedBy   string     `gorm:"type:varchar(36);not null" json:"reported_by"`
	Type         ReportType `gorm:"type:varchar(20);not null;default:'daily'" json:"type"`
	Title        string     `gorm:"type:varchar(255);not null" json:"title"`
	Content      string     `gorm:"type:text;not null" json:"content"`
	ReportDate   time.Time  `json:"report_date"`
	Weather      *string    `gorm:"type:varchar(50)" json:"weather"`
	Temperature  *string    `gorm:"type:varchar(20)" json:"temperature"`
	WorkProgress *int       `json:"work_progress"`
	Issues       *string    `gorm:"type:text" json:"issues"`
	NextActions  *string    `gorm:"type:text" json:"next_actions"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`

	// Relations
	Project Project `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
	Author  User    `gorm:"foreignKey:ReportedBy" json:"author,omitempty"`
}

func (r *Report) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}
