package models

import (
	"time"

	"gorm.io/gorm"

	"github.com/tolatiles/tola-tiles-api/utils"
)

// AuthToken is an opaque bearer token associated 1:1 with a user. A login
// reuses the existing token; a password change revokes and reissues it.
type AuthToken struct {
	ID        uint      `gorm:"primaryKey" json:"-"`
	Key       string    `gorm:"uniqueIndex;not null" json:"key"`
	UserID    uint      `gorm:"uniqueIndex;not null" json:"-"`
	User      User      `gorm:"foreignKey:UserID" json:"-"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName specifies the table name for the AuthToken model
func (AuthToken) TableName() string {
	return "auth_tokens"
}

// GetOrCreateToken returns the user's existing token, creating one if absent
func GetOrCreateToken(db *gorm.DB, userID uint) (*AuthToken, error) {
	var token AuthToken
	err := db.Where("user_id = ?", userID).First(&token).Error
	if err == nil {
		return &token, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	token = AuthToken{
		Key:    utils.RandomHex(20),
		UserID: userID,
	}
	if err := db.Create(&token).Error; err != nil {
		return nil, err
	}
	return &token, nil
}

// RotateToken revokes any outstanding token for the user and issues a new one
func RotateToken(db *gorm.DB, userID uint) (*AuthToken, error) {
	var token *AuthToken
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).Delete(&AuthToken{}).Error; err != nil {
			return err
		}
		token = &AuthToken{
			Key:    utils.RandomHex(20),
			UserID: userID,
		}
		return tx.Create(token).Error
	})
	if err != nil {
		return nil, err
	}
	return token, nil
}

// UserByTokenKey resolves the user owning the given token key
func UserByTokenKey(db *gorm.DB, key string) (*User, error) {
	var token AuthToken
	if err := db.Preload("User").Where("key = ?", key).First(&token).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &token.User, nil
}
