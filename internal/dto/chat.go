package dto

import (
	"time"

	"github.com/takamaro111/construction-management-app/internal/models"
)

// ChatDTO is the public shape of a conversation.
type ChatDTO struct {
	ID          string    `json:"id"`
	ProjectID   string    `json:"project_id"`
	ProjectName string    `json:"project_name,omitempty"`
	Name        string    `json:"name"`
	CreatedBy   string    `json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
}

// ToChatDTO converts a chat model to its DTO.
func ToChatDTO(chat models.Chat) ChatDTO {
	return ChatDTO{
		ID:          chat.ID,
		ProjectID:   chat.ProjectID,
		ProjectName: chat.Project.Name,
		Name:        chat.Name,
		CreatedBy:   chat.CreatedBy,
		CreatedAt:   chat.CreatedAt,
	}
}

// ChatMessageDTO is the public shape of one message.
type ChatMessageDTO struct {
	ID         string    `json:"id"`
	ChatID     string    `json:"chat_id"`
	UserID     string    `json:"user_id"`
	SenderName string    `json:"sender_name,omitempty"`
	Message    string    `json:"message"`
	ClientKey  string    `json:"client_key,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// ToChatMessageDTO converts a message model to its DTO.
func ToChatMessageDTO(message models.ChatMessage) ChatMessageDTO {
	return ChatMessageDTO{
		ID:         message.ID,
		ChatID:     message.ChatID,
		UserID:     message.UserID,
		SenderName: message.Sender.Name,
		Message:    message.Message,
		ClientKey:  message.ClientKey,
		CreatedAt:  message.CreatedAt,
	}
}

// ToChatMessageDTOs converts a slice of message models.
func ToChatMessageDTOs(messages []models.ChatMessage) []ChatMessageDTO {
	dtos := make([]ChatMessageDTO, len(messages))
	for i, message := range messages {
		dtos[i] = ToChatMessageDTO(message)
	}
	return dtos
}
