package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tolatiles/tola-tiles-api/config"
	"github.com/tolatiles/tola-tiles-api/models"
)

// SubscribeRequest is the newsletter subscription payload
type SubscribeRequest struct {
	Email string `json:"email" binding:"required,email"`
	Name  string `json:"name"`
}

// UnsubscribeRequest is the newsletter unsubscribe payload
type UnsubscribeRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// Subscribe handles POST /newsletter/subscribe (public). Re-subscribing a
// previously unsubscribed address reactivates it; an active duplicate is
// rejected with 409.
func Subscribe(c *gin.Context) {
	var req SubscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	repo := models.NewSubscriberRepository(config.GetDB())
	subscriber, err := repo.Subscribe(req.Email, req.Name)
	if err != nil {
		if errors.Is(err, models.ErrAlreadySubscribed) {
			respondError(c, http.StatusConflict, "ALREADY_SUBSCRIBED", "This email is already subscribed")
			return
		}
		respondRepositoryError(c, err)
		return
	}
	respondData(c, http.StatusCreated, gin.H{
		"email":   subscriber.Email,
		"message": "Successfully subscribed to the newsletter",
	})
}

// Unsubscribe handles POST /newsletter/unsubscribe (public)
func Unsubscribe(c *gin.Context) {
	var req UnsubscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	repo := models.NewSubscriberRepository(config.GetDB())
	if err := repo.Unsubscribe(req.Email); err != nil {
		respondRepositoryError(c, err)
		return
	}
	respondData(c, http.StatusOK, gin.H{"message": "Successfully unsubscribed from the newsletter"})
}

// ListSubscribers handles GET /newsletter/subscribers (staff)
func ListSubscribers(c *gin.Context) {
	activeOnly := true
	if active := boolQuery(c, "active"); active != nil {
		activeOnly = *active
	}

	repo := models.NewSubscriberRepository(config.GetDB())
	subscribers, err := repo.ListSubscribers(activeOnly)
	if err != nil {
		respondRepositoryError(c, err)
		return
	}
	respondData(c, http.StatusOK, subscribers)
}
