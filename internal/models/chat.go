package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Chat is a per-project conversation.
type Chat struct {
	ID        string    `gorm:"type:varchar(36);primarykey" json:"id"`
	CompanyID string    `gorm:"type:varchar(36);not null;index" json:"company_id"`
	ProjectID string    `gorm:"type:varchar(36);not null;index" json:"project_id"`
	Name      string    `gorm:"type:varchar(255);not null" json:"name"`
	CreatedBy string    `gorm:"type:varchar(36);not null" json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Project Project `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
}

func (ch *Chat) BeforeCreate(tx *gorm.DB) error {
	if ch.ID == "" {
		ch.ID = uuid.NewString()
	}
	return nil
}

// ChatMessage is a single message in a chat. ClientKey is the sender-assigned
// idempotency key used by subscribers to drop the realtime echo of a message
// they already appended locally.
type ChatMessage struct {
	ID        string    `gorm:"type:varchar(36);primarykey" json:"id"`
	ChatID    string    `gorm:"type:varchar(36);not null;index" json:"chat_id"`
	CompanyID string    `gorm:"type:varchar(36);not null;index" json:"company_id"`
	UserID    string    `gorm:"type:varchar(36);not null" json:"user_id"`
	Message   string    `gorm:"type:text;not null" json:"message"`
	ClientKey string    `gorm:"type:varchar(64)" json:"client_key"`
	CreatedAt time.Time `json:"created_at"`

	// Relations
	Chat   Chat `gorm:"foreignKey:ChatID" json:"chat,omitempty"`
	Sender User `gorm:"foreignKey:UserID" json:"sender,omitempty"`
}

func (m *ChatMessage) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}
