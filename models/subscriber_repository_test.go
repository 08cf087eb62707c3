package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSubscribeNormalizesEmail(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSubscriberRepository(db)

	subscriber, err := repo.Subscribe("  Jane@Example.COM ", "Jane")
	assert.NoError(t, err)
	assert.Equal(t, "jane@example.com", subscriber.Email)
	assert.True(t, subscriber.Active)
}

func TestSubscribeRejectsActiveDuplicate(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSubscriberRepository(db)

	_, err := repo.Subscribe("jane@example.com", "Jane")
	assert.NoError(t, err)

	_, err = repo.Subscribe("jane@example.com", "Jane")
	assert.ErrorIs(t, err, ErrAlreadySubscribed)
}

func TestSubscribeReactivates(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSubscriberRepository(db)

	original, err := repo.Subscribe("jane@example.com", "Jane")
	assert.NoError(t, err)
	assert.NoError(t, repo.Unsubscribe("jane@example.com"))

	reactivated, err := repo.Subscribe("jane@example.com", "Jane Doe")
	assert.NoError(t, err)
	assert.Equal(t, original.ID, reactivated.ID)
	assert.True(t, reactivated.Active)
	assert.Equal(t, "Jane Doe", reactivated.Name)

	var count int64
	db.Model(&Subscriber{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestUnsubscribeUnknownEmail(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSubscriberRepository(db)

	assert.ErrorIs(t, repo.Unsubscribe("ghost@example.com"), ErrNotFound)
}

func TestListSubscribers(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSubscriberRepository(db)

	_, err := repo.Subscribe("a@example.com", "A")
	assert.NoError(t, err)
	_, err = repo.Subscribe("b@example.com", "B")
	assert.NoError(t, err)
	assert.NoError(t, repo.Unsubscribe("b@example.com"))

	active, err := repo.ListSubscribers(true)
	assert.NoError(t, err)
	assert.Len(t, active, 1)

	all, err := repo.ListSubscribers(false)
	assert.NoError(t, err)
	assert.Len(t, all, 2)
}
