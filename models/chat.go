package models

import (
	"time"
)

// Message status values
const (
	MessageStatusSent      = "sent"
	MessageStatusDelivered = "delivered"
	MessageStatusRead      = "read"
)

// Conversation is an unordered set of participant users exchanging messages
type Conversation struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Participants []User    `gorm:"many2many:conversation_participants" json:"-"`
	Messages     []Message `gorm:"foreignKey:ConversationID" json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// TableName specifies the table name for the Conversation model
func (Conversation) TableName() string {
	return "conversations"
}

// Message belongs to exactly one conversation. Either Content or
// AttachmentKey must be present; the repository enforces this.
type Message struct {
	ID             uint         `gorm:"primaryKey" json:"id"`
	ConversationID uint         `gorm:"not null;index" json:"conversation"`
	Conversation   Conversation `gorm:"foreignKey:ConversationID" json:"-"`
	SenderID       uint         `gorm:"not null;index" json:"sender"`
	Sender         User         `gorm:"foreignKey:SenderID" json:"-"`
	ReceiverID     uint         `gorm:"not null;index" json:"receiver"`
	Receiver       User         `gorm:"foreignKey:ReceiverID" json:"-"`
	Content        string       `gorm:"type:text" json:"content"`
	AttachmentKey  string       `json:"attachment"`
	IsRead         bool         `gorm:"default:false" json:"is_read"`
	IsAdminMessage bool         `gorm:"default:false" json:"is_admin_message"`
	Status         string       `gorm:"not null;default:'sent'" json:"status"`
	CreatedAt      time.Time    `json:"created_at"`
	UpdatedAt      time.Time    `json:"updated_at"`
}

// TableName specifies the table name for the Message model
func (Message) TableName() string {
	return "messages"
}
