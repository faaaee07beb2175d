package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/takamaro111/construction-management-app/internal/dto"
	apierrors "github.com/takamaro111/construction-management-app/internal/errors"
	"github.com/takamaro111/construction-management-app/internal/middleware"
	"github.com/takamaro111/construction-management-app/internal/services"
)

// ChatHandler coordinates conversations and their realtime streams.
type ChatHandler struct {
	chatService *services.ChatService
}

// NewChatHandler creates a new ChatHandler.
func NewChatHandler(chatService *services.ChatService) *ChatHandler {
	return &ChatHandler{
		chatService: chatService,
	}
}

// CreateChat creates a conversation for a project.
func (h *ChatHandler) CreateChat(c *gin.Context) {
	user, _ := middleware.GetCurrentUser(c)

	type CreateChatRequest struct {
		ProjectID string `json:"project_id" binding:"required"`
		Name      string `json:"name" binding:"required,max=255"`
	}

	var req CreateChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	chat, err := h.chatService.CreateChat(user.CompanyID, req.ProjectID, req.Name, user.ID)
	if err != nil {
		respondChatError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToChatDTO(*chat))
}

// ListChats returns the company's conversations.
func (h *ChatHandler) ListChats(c *gin.Context) {
	user, _ := middleware.GetCurrentUser(c)

	chats, err := h.chatService.ListChats(user.CompanyID)
	if err != nil {
		apierrors.InternalError(c, "Failed to list chats")
		return
	}

	chatDTOs := make([]dto.ChatDTO, len(chats))
	for i, chat := range chats {
		chatDTOs[i] = dto.ToChatDTO(chat)
	}

	c.JSON(http.StatusOK, gin.H{"chats": chatDTOs})
}

// ListMessages returns a chat's messages in creation order.
func (h *ChatHandler) ListMessages(c *gin.Context) {
	user, _ := middleware.GetCurrentUser(c)

	messages, err := h.chatService.ListMessages(c.Param("id"), user.CompanyID)
	if err != nil {
		respondChatError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"messages": dto.ToChatMessageDTOs(messages)})
}

// SendMessage appends a message to a chat. The optional client_key is
// echoed back on the realtime stream so the sender can drop its own event.
func (h *ChatHandler) SendMessage(c *gin.Context) {
	user, _ := middleware.GetCurrentUser(c)

	type SendMessageRequest struct {
		Message   string `json:"message" binding:"required"`
		ClientKey string `json:"client_key"`
	}

	var req SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	message, err := h.chatService.SendMessage(services.SendMessageInput{
		ChatID:    c.Param("id"),
		CompanyID: user.CompanyID,
		SenderID:  user.ID,
		Message:   req.Message,
		ClientKey: req.ClientKey,
	})
	if err != nil {
		respondChatError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ChatMessageDTO{
		ID:         message.ID,
		ChatID:     message.ChatID,
		UserID:     message.UserID,
		SenderName: user.Name,
		Message:    message.Message,
		ClientKey:  message.ClientKey,
		CreatedAt:  message.CreatedAt,
	})
}

// Stream opens a server-sent-events subscription for one chat. Each event
// carries the sender's name and the original client_key, so a subscriber
// can drop the echo of a message it already appended optimistically.
func (h *ChatHandler) Stream(c *gin.Context) {
	user, _ := middleware.GetCurrentUser(c)

	events, cancel, err := h.chatService.Subscribe(c.Param("id"), user.CompanyID)
	if err != nil {
		respondChatError(c, err)
		return
	}
	defer cancel()

	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")

	clientGone := c.Request.Context().Done()
	c.Stream(func(w io.Writer) bool {
		select {
		case event, ok := <-events:
			if !ok {
				return false
			}
			c.SSEvent("message", event)
			return true
		case <-clientGone:
			return false
		}
	})
}

func respondChatError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrChatNotFound), errors.Is(err, services.ErrMemberNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrEmptyMessage), errors.Is(err, services.ErrInvalidChatName):
		apierrors.BadRequest(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
