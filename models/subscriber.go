package models

import (
	"time"
)

// Subscriber is a newsletter subscription. Emails are unique: re-subscribing
// a previously unsubscribed address reactivates the existing row instead of
// creating a duplicate.
type Subscriber struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Email     string    `gorm:"uniqueIndex;not null" json:"email"`
	Name      string    `json:"name"`
	Active    bool      `gorm:"default:true" json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name for the Subscriber model
func (Subscriber) TableName() string {
	return "subscribers"
}
