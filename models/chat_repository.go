package models

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// ChatRepository owns the conversation/message subsystem
type ChatRepository struct {
	db *gorm.DB
}

func NewChatRepository(db *gorm.DB) *ChatRepository {
	return &ChatRepository{db: db}
}

// ConversationSummary is a conversation with its derived read-side fields
type ConversationSummary struct {
	Conversation Conversation
	Participants []User
	LastMessage  *Message
	UnreadCount  int64
}

// GetOrCreateConversation finds the conversation between the two users,
// creating it if none exists. The pair is unordered.
func (r *ChatRepository) GetOrCreateConversation(userA, userB uint) (*Conversation, error) {
	if userA == userB {
		return nil, &ValidationError{Field: "receiver", Message: "cannot start a conversation with yourself"}
	}

	var conversationID uint
	row := r.db.Raw(`
		SELECT cp.conversation_id FROM conversation_participants cp
		JOIN conversation_participants cp2 ON cp.conversation_id = cp2.conversation_id
		WHERE cp.user_id = ? AND cp2.user_id = ?
		LIMIT 1`, userA, userB).Row()
	if err := row.Scan(&conversationID); err == nil && conversationID != 0 {
		var conversation Conversation
		if err := r.db.Preload("Participants").First(&conversation, conversationID).Error; err != nil {
			return nil, err
		}
		return &conversation, nil
	}

	var participants []User
	if err := r.db.Where("id IN ?", []uint{userA, userB}).Find(&participants).Error; err != nil {
		return nil, err
	}
	if len(participants) != 2 {
		return nil, &ValidationError{Field: "receiver", Message: "receiver does not exist"}
	}

	conversation := Conversation{Participants: participants}
	if err := r.db.Create(&conversation).Error; err != nil {
		return nil, err
	}
	return &conversation, nil
}

// SendMessage creates a message from sender to receiver, finding or creating
// their conversation. Either content or an attachment is required.
func (r *ChatRepository) SendMessage(senderID, receiverID uint, content, attachmentKey string, isAdmin bool) (*Message, error) {
	if strings.TrimSpace(content) == "" && attachmentKey == "" {
		return nil, &ValidationError{Field: "content", Message: "either content or attachment must be provided"}
	}

	conversation, err := r.GetOrCreateConversation(senderID, receiverID)
	if err != nil {
		return nil, err
	}

	message := Message{
		ConversationID: conversation.ID,
		SenderID:       senderID,
		ReceiverID:     receiverID,
		Content:        content,
		AttachmentKey:  attachmentKey,
		IsAdminMessage: isAdmin,
		Status:         MessageStatusSent,
	}
	if err := r.db.Create(&message).Error; err != nil {
		return nil, err
	}
	if err := r.db.Preload("Sender").Preload("Receiver").First(&message, message.ID).Error; err != nil {
		return nil, err
	}
	return &message, nil
}

// FirstStaffUser returns a staff user to receive admin-contact messages
func (r *ChatRepository) FirstStaffUser() (*User, error) {
	var staff User
	if err := r.db.Where("is_staff = ?", true).Order("id ASC").First(&staff).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &staff, nil
}

// MarkRead marks the given messages as read. Only rows whose receiver is the
// caller are touched; ids belonging to other users are ignored.
func (r *ChatRepository) MarkRead(receiverID uint, messageIDs []uint) (int64, error) {
	if len(messageIDs) == 0 {
		return 0, &ValidationError{Field: "message_ids", Message: "message_ids is required"}
	}
	result := r.db.Model(&Message{}).
		Where("id IN ? AND receiver_id = ? AND is_read = ?", messageIDs, receiverID, false).
		Updates(map[string]interface{}{"is_read": true, "status": MessageStatusRead})
	return result.RowsAffected, result.Error
}

// ConversationByID resolves a conversation the user participates in
func (r *ChatRepository) ConversationByID(conversationID, userID uint) (*Conversation, error) {
	var conversation Conversation
	if err := r.db.Preload("Participants").First(&conversation, conversationID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	for _, p := range conversation.Participants {
		if p.ID == userID {
			return &conversation, nil
		}
	}
	return nil, ErrNotFound
}

// ListConversations returns the user's conversations with the last message
// and unread count resolved for each
func (r *ChatRepository) ListConversations(userID uint) ([]ConversationSummary, error) {
	var conversations []Conversation
	if err := r.db.Preload("Participants").
		Joins("JOIN conversation_participants cp ON cp.conversation_id = conversations.id").
		Where("cp.user_id = ?", userID).
		Order("conversations.updated_at DESC").
		Find(&conversations).Error; err != nil {
		return nil, err
	}

	summaries := make([]ConversationSummary, 0, len(conversations))
	for _, conversation := range conversations {
		summary := ConversationSummary{
			Conversation: conversation,
			Participants: conversation.Participants,
		}

		var last Message
		err := r.db.Preload("Sender").Preload("Receiver").
			Where("conversation_id = ?", conversation.ID).
			Order("created_at DESC").
			First(&last).Error
		if err == nil {
			summary.LastMessage = &last
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}

		if err := r.db.Model(&Message{}).
			Where("conversation_id = ? AND receiver_id = ? AND is_read = ?", conversation.ID, userID, false).
			Count(&summary.UnreadCount).Error; err != nil {
			return nil, err
		}

		summaries = append(summaries, summary)
	}
	return summaries, nil
}

// ListMessages returns the messages of a conversation the user participates
// in, oldest first
func (r *ChatRepository) ListMessages(conversationID, userID uint) ([]Message, error) {
	if _, err := r.ConversationByID(conversationID, userID); err != nil {
		return nil, err
	}
	var messages []Message
	if err := r.db.Preload("Sender").Preload("Receiver").
		Where("conversation_id = ?", conversationID).
		Order("created_at ASC").
		Find(&messages).Error; err != nil {
		return nil, err
	}
	return messages, nil
}
