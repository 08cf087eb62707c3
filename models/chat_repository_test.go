package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func createChatUser(t *testing.T, db *gorm.DB, username string, staff bool) *User {
	t.Helper()
	user := User{Username: username, Email: username + "@example.com", IsStaff: staff}
	if err := user.SetPassword("secret-password"); err != nil {
		t.Fatalf("Failed to hash password: %v", err)
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("Failed to create user: %v", err)
	}
	return &user
}

func TestGetOrCreateConversation(t *testing.T) {
	db := setupTestDB(t)
	repo := NewChatRepository(db)

	alice := createChatUser(t, db, "alice", false)
	bob := createChatUser(t, db, "bob", true)

	first, err := repo.GetOrCreateConversation(alice.ID, bob.ID)
	assert.NoError(t, err)
	assert.Len(t, first.Participants, 2)

	// The pair is unordered: same conversation either way round
	second, err := repo.GetOrCreateConversation(bob.ID, alice.ID)
	assert.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	var count int64
	db.Model(&Conversation{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestGetOrCreateConversationRejectsSelf(t *testing.T) {
	db := setupTestDB(t)
	repo := NewChatRepository(db)

	alice := createChatUser(t, db, "alice", false)

	_, err := repo.GetOrCreateConversation(alice.ID, alice.ID)
	var validationErr *ValidationError
	assert.ErrorAs(t, err, &validationErr)
}

func TestSendMessageRequiresContentOrAttachment(t *testing.T) {
	db := setupTestDB(t)
	repo := NewChatRepository(db)

	alice := createChatUser(t, db, "alice", false)
	bob := createChatUser(t, db, "bob", true)

	_, err := repo.SendMessage(alice.ID, bob.ID, "", "", false)
	var validationErr *ValidationError
	assert.ErrorAs(t, err, &validationErr)

	withContent, err := repo.SendMessage(alice.ID, bob.ID, "hello", "", false)
	assert.NoError(t, err)
	assert.Equal(t, MessageStatusSent, withContent.Status)
	assert.Equal(t, "alice", withContent.Sender.Username)

	withAttachment, err := repo.SendMessage(bob.ID, alice.ID, "", "chat/photo.jpg", true)
	assert.NoError(t, err)
	assert.True(t, withAttachment.IsAdminMessage)
	assert.Equal(t, withContent.ConversationID, withAttachment.ConversationID)
}

func TestMarkReadScopedToReceiver(t *testing.T) {
	db := setupTestDB(t)
	repo := NewChatRepository(db)

	alice := createChatUser(t, db, "alice", false)
	bob := createChatUser(t, db, "bob", true)

	toBob, err := repo.SendMessage(alice.ID, bob.ID, "hi bob", "", false)
	assert.NoError(t, err)
	toAlice, err := repo.SendMessage(bob.ID, alice.ID, "hi alice", "", true)
	assert.NoError(t, err)

	// Alice cannot mark bob's incoming message read
	updated, err := repo.MarkRead(alice.ID, []uint{toBob.ID, toAlice.ID})
	assert.NoError(t, err)
	assert.Equal(t, int64(1), updated)

	var reloaded Message
	assert.NoError(t, db.First(&reloaded, toAlice.ID).Error)
	assert.True(t, reloaded.IsRead)
	assert.Equal(t, MessageStatusRead, reloaded.Status)

	assert.NoError(t, db.First(&reloaded, toBob.ID).Error)
	assert.False(t, reloaded.IsRead)
}

func TestListConversationsSummaries(t *testing.T) {
	db := setupTestDB(t)
	repo := NewChatRepository(db)

	alice := createChatUser(t, db, "alice", false)
	bob := createChatUser(t, db, "bob", true)
	carol := createChatUser(t, db, "carol", false)

	_, err := repo.SendMessage(alice.ID, bob.ID, "first", "", false)
	assert.NoError(t, err)
	last, err := repo.SendMessage(bob.ID, alice.ID, "second", "", true)
	assert.NoError(t, err)
	_, err = repo.SendMessage(carol.ID, bob.ID, "unrelated", "", false)
	assert.NoError(t, err)

	summaries, err := repo.ListConversations(alice.ID)
	assert.NoError(t, err)
	assert.Len(t, summaries, 1)
	assert.Equal(t, last.ID, summaries[0].LastMessage.ID)
	assert.Equal(t, int64(1), summaries[0].UnreadCount)
}

func TestListMessagesRequiresParticipation(t *testing.T) {
	db := setupTestDB(t)
	repo := NewChatRepository(db)

	alice := createChatUser(t, db, "alice", false)
	bob := createChatUser(t, db, "bob", true)
	carol := createChatUser(t, db, "carol", false)

	message, err := repo.SendMessage(alice.ID, bob.ID, "private", "", false)
	assert.NoError(t, err)

	messages, err := repo.ListMessages(message.ConversationID, alice.ID)
	assert.NoError(t, err)
	assert.Len(t, messages, 1)

	_, err = repo.ListMessages(message.ConversationID, carol.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}
