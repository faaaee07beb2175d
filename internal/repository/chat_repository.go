package repository

import (
	"github.com/takamaro111/construction-management-app/internal/database"
	"github.com/takamaro111/construction-management-app/internal/models"
	"gorm.io/gorm"
)

// GormChatRepository is a GORM implementation of ChatRepository
type GormChatRepository struct {
	db *gorm.DB
}

// NewChatRepository creates a new ChatRepository
func NewChatRepository(db *gorm.DB) ChatRepository {
	return &GormChatRepository{db: db}
}

func (r *GormChatRepository) CreateChat(chat *models.Chat) error {
	return r.db.Create(chat).Error
}

func (r *GormChatRepository) FindChatByID(id, companyID string) (*models.Chat, error) {
	var chat models.Chat
	if err := r.db.Scopes(database.TenantScope(companyID)).
		Preload("Project").
		Where("id = ?", id).First(&chat).Error; err != nil {
		return nil, err
	}
	return &chat, nil
}

func (r *GormChatRepository) ListChats(companyID string) ([]models.Chat, error) {
	var chats []models.Chat
	if err := r.db.Scopes(database.TenantScope(companyID)).
		Preload("Project").
		Order("created_at ASC").
		Find(&chats).Error; err != nil {
		return nil, err
	}
	return chats, nil
}

func (r *GormChatRepository) CreateMessage(message *models.ChatMessage) error {
	return r.db.Create(message).Error
}

func (r *GormChatRepository) ListMessages(chatID, companyID string) ([]models.ChatMessage, error) {
	var messages []models.ChatMessage
	if err := r.db.Scopes(database.TenantScope(companyID)).
		Preload("Sender").
		Where("chat_id = ?", chatID).
		Order("created_at ASC").
		Find(&messages).Error; err != nil {
		return nil, err
	}
	return messages, nil
}
