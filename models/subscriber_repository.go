package models

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// SubscriberRepository owns newsletter subscription state. Emails are unique
// per row for all time; unsubscribing deactivates and re-subscribing
// reactivates the same row.
type SubscriberRepository struct {
	db *gorm.DB
}

func NewSubscriberRepository(db *gorm.DB) *SubscriberRepository {
	return &SubscriberRepository{db: db}
}

// Subscribe adds or reactivates a subscription for the given email.
// An already-active email returns ErrAlreadySubscribed with no state change.
func (r *SubscriberRepository) Subscribe(email, name string) (*Subscriber, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, &ValidationError{Field: "email", Message: "a valid email is required"}
	}

	var existing Subscriber
	err := r.db.Where("email = ?", email).First(&existing).Error
	switch {
	case err == nil:
		if existing.Active {
			return &existing, ErrAlreadySubscribed
		}
		updates := map[string]interface{}{"active": true}
		if name != "" {
			updates["name"] = name
		}
		if err := r.db.Model(&existing).Updates(updates).Error; err != nil {
			return nil, err
		}
		return &existing, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		subscriber := Subscriber{Email: email, Name: name, Active: true}
		if err := r.db.Create(&subscriber).Error; err != nil {
			if IsDuplicateErr(err) {
				return nil, NewDuplicateError("email")
			}
			return nil, err
		}
		return &subscriber, nil
	default:
		return nil, err
	}
}

// Unsubscribe deactivates the subscription for the given email
func (r *SubscriberRepository) Unsubscribe(email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	var subscriber Subscriber
	if err := r.db.Where("email = ?", email).First(&subscriber).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return r.db.Model(&subscriber).Update("active", false).Error
}

// ListSubscribers returns subscribers, optionally only active ones
func (r *SubscriberRepository) ListSubscribers(activeOnly bool) ([]Subscriber, error) {
	query := r.db.Model(&Subscriber{})
	if activeOnly {
		query = query.Where("active = ?", true)
	}
	var subscribers []Subscriber
	if err := query.Order("created_at DESC").Find(&subscribers).Error; err != nil {
		return nil, err
	}
	return subscribers, nil
}
