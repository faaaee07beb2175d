package services

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/takamaro111/construction-management-app/internal/models"
	"github.com/takamaro111/construction-management-app/internal/realtime"
	"github.com/takamaro111/construction-management-app/internal/repository"
)

type chatTestEnv struct {
	db      *gorm.DB
	service *ChatService
	company models.Company
	other   models.Company
	project models.Project
	sender  models.User
	peer    models.User
}

func setupChatTestEnv(t *testing.T) chatTestEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.Company{},
		&models.User{},
		&models.Project{},
		&models.Chat{},
		&models.ChatMessage{},
	)
	require.NoError(t, err)

	company := models.Company{Name: "Tenant A", Email: "a@example.com"}
	require.NoError(t, db.Create(&company).Error)
	other := models.Company{Name: "Tenant B", Email: "b@example.com"}
	require.NoError(t, db.Create(&other).Error)

	project := models.Project{CompanyID: company.ID, Name: "Bridge", Status: models.ProjectStatusInProgress}
	require.NoError(t, db.Create(&project).Error)

	sender := models.User{
		ID:        uuid.NewString(),
		CompanyID: company.ID,
		Email:     "sender@example.com",
		Name:      "Sender",
		Role:      models.RoleManager,
	}
	require.NoError(t, db.Create(&sender).Error)

	peer := models.User{
		ID:        uuid.NewString(),
		CompanyID: company.ID,
		Email:     "peer@example.com",
		Name:      "Peer",
		Role:      models.RoleViewer,
	}
	require.NoError(t, db.Create(&peer).Error)

	service := NewChatService(
		repository.NewChatRepository(db),
		repository.NewUserRepository(db),
		realtime.NewBroker(nil),
	)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return chatTestEnv{
		db:      db,
		service: service,
		company: company,
		other:   other,
		project: project,
		sender:  sender,
		peer:    peer,
	}
}

func (env chatTestEnv) createChat(t *testing.T) *models.Chat {
	t.Helper()
	chat, err := env.service.CreateChat(env.company.ID, env.project.ID, "Site chat", env.sender.ID)
	require.NoError(t, err)
	return chat
}

func receiveEvent(t *testing.T, ch <-chan realtime.MessageEvent) realtime.MessageEvent {
	t.Helper()
	select {
	case ev := <-ch:
		return ev
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for realtime event")
		return realtime.MessageEvent{}
	}
}

func TestChatService_SendMessage_PersistsAndPublishes(t *testing.T) {
	env := setupChatTestEnv(t)
	chat := env.createChat(t)

	events, cancel, err := env.service.Subscribe(chat.ID, env.company.ID)
	require.NoError(t, err)
	defer cancel()

	message, err := env.service.SendMessage(SendMessageInput{
		ChatID:    chat.ID,
		CompanyID: env.company.ID,
		SenderID:  env.sender.ID,
		Message:   "concrete pour at 9am",
		ClientKey: "key-1",
	})
	require.NoError(t, err)
	require.NotEmpty(t, message.ID)

	ev := receiveEvent(t, events)
	require.Equal(t, message.ID, ev.MessageID)
	require.Equal(t, env.sender.Name, ev.SenderName)
	require.Equal(t, "key-1", ev.ClientKey)

	stored, err := env.service.ListMessages(chat.ID, env.company.ID)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	require.Equal(t, "concrete pour at 9am", stored[0].Message)
}

func TestChatService_SenderDropsOwnEchoByClientKey(t *testing.T) {
	env := setupChatTestEnv(t)
	chat := env.createChat(t)

	// Both the sender and a peer hold open streams. The sender appended the
	// message locally under "mine-42" at submit time, so it skips the event
	// carrying that key; the peer renders it.
	senderEvents, cancelSender, err := env.service.Subscribe(chat.ID, env.company.ID)
	require.NoError(t, err)
	defer cancelSender()

	peerEvents, cancelPeer, err := env.service.Subscribe(chat.ID, env.company.ID)
	require.NoError(t, err)
	defer cancelPeer()

	_, err = env.service.SendMessage(SendMessageInput{
		ChatID:    chat.ID,
		CompanyID: env.company.ID,
		SenderID:  env.sender.ID,
		Message:   "scaffolding is up",
		ClientKey: "mine-42",
	})
	require.NoError(t, err)

	senderEv := receiveEvent(t, senderEvents)
	require.Equal(t, "mine-42", senderEv.ClientKey, "the echo is identifiable by the sender's own key")

	peerEv := receiveEvent(t, peerEvents)
	require.Equal(t, "scaffolding is up", peerEv.Message)
	require.Equal(t, env.sender.Name, peerEv.SenderName)
}

func TestChatService_MessagesKeepInsertOrder(t *testing.T) {
	env := setupChatTestEnv(t)
	chat := env.createChat(t)

	events, cancel, err := env.service.Subscribe(chat.ID, env.company.ID)
	require.NoError(t, err)
	defer cancel()

	for _, text := range []string{"first", "second", "third"} {
		_, err := env.service.SendMessage(SendMessageInput{
			ChatID:    chat.ID,
			CompanyID: env.company.ID,
			SenderID:  env.sender.ID,
			Message:   text,
		})
		require.NoError(t, err)
	}

	// The stream delivers in publish order, which follows insert order.
	require.Equal(t, "first", receiveEvent(t, events).Message)
	require.Equal(t, "second", receiveEvent(t, events).Message)
	require.Equal(t, "third", receiveEvent(t, events).Message)

	stored, err := env.service.ListMessages(chat.ID, env.company.ID)
	require.NoError(t, err)
	require.Len(t, stored, 3)
	require.Equal(t, "first", stored[0].Message)
	require.Equal(t, "third", stored[2].Message)
}

func TestChatService_SendMessage_RejectsEmpty(t *testing.T) {
	env := setupChatTestEnv(t)
	chat := env.createChat(t)

	_, err := env.service.SendMessage(SendMessageInput{
		ChatID:    chat.ID,
		CompanyID: env.company.ID,
		SenderID:  env.sender.ID,
		Message:   "   ",
	})
	require.ErrorIs(t, err, ErrEmptyMessage)
}

func TestChatService_TenantIsolation(t *testing.T) {
	env := setupChatTestEnv(t)
	chat := env.createChat(t)

	_, err := env.service.GetChat(chat.ID, env.other.ID)
	require.ErrorIs(t, err, ErrChatNotFound)

	_, _, err = env.service.Subscribe(chat.ID, env.other.ID)
	require.ErrorIs(t, err, ErrChatNotFound)

	_, err = env.service.SendMessage(SendMessageInput{
		ChatID:    chat.ID,
		CompanyID: env.other.ID,
		SenderID:  env.sender.ID,
		Message:   "intruder",
	})
	require.ErrorIs(t, err, ErrChatNotFound)
}
