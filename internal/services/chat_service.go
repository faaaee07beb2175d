package services

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/takamaro111/construction-management-app/internal/models"
	"github.com/takamaro111/construction-management-app/internal/realtime"
	"github.com/takamaro111/construction-management-app/internal/repository"
)

var (
	ErrChatNotFound    = errors.New("chat not found")
	ErrEmptyMessage    = errors.New("message cannot be empty")
	ErrInvalidChatName = errors.New("chat name cannot be empty")
)

// ChatService provides per-project conversations. New messages are written
// to the database first and then published to the realtime broker, so the
// event stream of a chat follows insert order.
type ChatService struct {
	chatRepo repository.ChatRepository
	userRepo repository.UserRepository
	broker   *realtime.Broker
}

// NewChatService creates a new ChatService.
func NewChatService(chatRepo repository.ChatRepository, userRepo repository.UserRepository, broker *realtime.Broker) *ChatService {
	return &ChatService{
		chatRepo: chatRepo,
		userRepo: userRepo,
		broker:   broker,
	}
}

// CreateChat creates a conversation for a project.
func (s *ChatService) CreateChat(companyID, projectID, name, createdBy string) (*models.Chat, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrInvalidChatName
	}

	chat := &models.Chat{
		CompanyID: companyID,
		ProjectID: projectID,
		Name:      name,
		CreatedBy: createdBy,
	}
	if err := s.chatRepo.CreateChat(chat); err != nil {
		return nil, fmt.Errorf("failed to create chat: %w", err)
	}
	return chat, nil
}

// ListChats returns the company's conversations.
func (s *ChatService) ListChats(companyID string) ([]models.Chat, error) {
	chats, err := s.chatRepo.ListChats(companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list chats: %w", err)
	}
	return chats, nil
}

// GetChat returns one conversation, tenant-scoped.
func (s *ChatService) GetChat(id, companyID string) (*models.Chat, error) {
	chat, err := s.chatRepo.FindChatByID(id, companyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrChatNotFound
		}
		return nil, fmt.Errorf("failed to find chat: %w", err)
	}
	return chat, nil
}

// ListMessages returns a chat's messages in creation order.
func (s *ChatService) ListMessages(chatID, companyID string) ([]models.ChatMessage, error) {
	if _, err := s.GetChat(chatID, companyID); err != nil {
		return nil, err
	}

	messages, err := s.chatRepo.ListMessages(chatID, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}
	return messages, nil
}

// SendMessageInput represents one message send. ClientKey is the sender's
// idempotency key; it travels with the realtime echo so the sender's own
// subscription can drop it.
type SendMessageInput struct {
	ChatID    string
	CompanyID string
	SenderID  string
	Message   string
	ClientKey string
}

// SendMessage persists the message and publishes it to subscribers.
func (s *ChatService) SendMessage(input SendMessageInput) (*models.ChatMessage, error) {
	if strings.TrimSpace(input.Message) == "" {
		return nil, ErrEmptyMessage
	}

	if _, err := s.GetChat(input.ChatID, input.CompanyID); err != nil {
		return nil, err
	}

	sender, err := s.userRepo.FindByIDInCompany(input.SenderID, input.CompanyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, fmt.Errorf("failed to find sender: %w", err)
	}

	message := &models.ChatMessage{
		ChatID:    input.ChatID,
		CompanyID: input.CompanyID,
		UserID:    input.SenderID,
		Message:   input.Message,
		ClientKey: input.ClientKey,
	}
	if err := s.chatRepo.CreateMessage(message); err != nil {
		return nil, fmt.Errorf("failed to save message: %w", err)
	}

	s.broker.Publish(realtime.MessageEvent{
		MessageID:  message.ID,
		ChatID:     message.ChatID,
		SenderID:   message.UserID,
		SenderName: sender.Name,
		Message:    message.Message,
		ClientKey:  message.ClientKey,
		CreatedAt:  message.CreatedAt,
	})

	return message, nil
}

// Subscribe opens a realtime stream for one chat after verifying the chat
// belongs to the caller's company. The returned cancel function must be
// called when the conversation view closes.
func (s *ChatService) Subscribe(chatID, companyID string) (<-chan realtime.MessageEvent, func(), error) {
	if _, err := s.GetChat(chatID, companyID); err != nil {
		return nil, nil, err
	}

	ch, cancel := s.broker.Subscribe(chatID)
	return ch, cancel, nil
}
