package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Photo is an image attached to a project, stored in object storage.
type Photo struct {
	ID           string    `gorm:"type:varchar(36);primarykey" json:"id"`
	ProjectID    string    `gorm:"type:varchar(36);not null;index" json:"project_id"`
	CompanyID    string    `gorm:"type:varchar(36);not null;index" json:"company_id"`
	UploadedBy   string    `gorm:"type:varchar(36);not null" json:"uploaded_by"`
	FileURL      string    `gorm:"type:varchar(512);not null" json:"file_url"`
	ThumbnailURL *string   `gorm:"type:varchar(512)" json:"thumbnail_url"`
	FileName     string    `gorm:"type:varchar(255);not null" json:"file_name"`
	FileSize     int64     `gorm:"not null" json:"file_size"`
	Memo         *string   `gorm:"type:text" json:"memo"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	// Relations
	Project  Project `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
	Uploader User    `gorm:"foreignKey:UploadedBy" json:"uploader,omitempty"`
}

func (p *Photo) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

// Document is a file attached to a project, stored in object storage.
type Document struct {
	ID          string    `gorm:"type:varchar(36);primarykey" json:"id"`
	ProjectID   string    `gorm:"type:varchar(36);not null;index" json:"project_id"`
	CompanyID   string    `gorm:"type:varchar(36);not null;index" json:"company_id"`
	UploadedBy  string    `gorm:"type:varchar(36);not null" json:"uploaded_by"`
	FileURL     string    `gorm:"type:varchar(512);not null" json:"file_url"`
	FileName    string    `gorm:"type:varchar(255);not null" json:"file_name"`
	FileSize    int64     `gorm:"not null" json:"file_size"`
	FileType    string    `gorm:"type:varchar(100);not null" json:"file_type"`
	Description *string   `gorm:"type:text" json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Relations
	Project  Project `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
	Uploader User    `gorm:"foreignKey:UploadedBy" json:"uploader,omitempty"`
}

func (d *Document) BeforeCreate(tx *gorm.DB) error {
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	return nil
}
