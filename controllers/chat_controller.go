package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/tolatiles/tola-tiles-api/config"
	"github.com/tolatiles/tola-tiles-api/middleware"
	"github.com/tolatiles/tola-tiles-api/models"
	"github.com/tolatiles/tola-tiles-api/services"
)

// SendMessageRequest is the JSON payload for sending a chat message.
// Attachments go through the multipart form variant instead.
type SendMessageRequest struct {
	ReceiverID uint   `json:"receiver" binding:"required"`
	Content    string `json:"content"`
}

// MarkReadRequest is the payload for marking messages read
type MarkReadRequest struct {
	MessageIDs []uint `json:"message_ids" binding:"required"`
}

// SendMessage handles POST /chat/send (authenticated). Accepts either a JSON
// body or a multipart form carrying an attachment; a message must have
// content, an attachment, or both.
func SendMessage(c *gin.Context) {
	user := middleware.CurrentUser(c)
	repo := models.NewChatRepository(config.GetDB())

	var receiverID uint
	var content, attachmentKey string

	if strings.Contains(c.ContentType(), "multipart/form-data") {
		raw, err := strconv.ParseUint(c.PostForm("receiver"), 10, 32)
		if err != nil {
			respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "receiver is required")
			return
		}
		receiverID = uint(raw)
		content = c.PostForm("content")

		if fileHeader, err := c.FormFile("attachment"); err == nil {
			key, err := services.GetImageService().UploadImage(fileHeader, "chat")
			if err != nil {
				respondRepositoryError(c, err)
				return
			}
			attachmentKey = key
		}
	} else {
		var req SendMessageRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
			return
		}
		receiverID = req.ReceiverID
		content = req.Content
	}

	message, err := repo.SendMessage(user.ID, receiverID, content, attachmentKey, user.IsStaff)
	if err != nil {
		respondRepositoryError(c, err)
		return
	}
	respondData(c, http.StatusCreated, toMessageResponse(message))
}

// MarkMessagesRead handles POST /chat/mark-read (authenticated). Only the
// caller's own unread messages are affected.
func MarkMessagesRead(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var req MarkReadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	repo := models.NewChatRepository(config.GetDB())
	updated, err := repo.MarkRead(user.ID, req.MessageIDs)
	if err != nil {
		respondRepositoryError(c, err)
		return
	}
	respondData(c, http.StatusOK, gin.H{"marked_read": updated})
}

// AdminContact handles POST /chat/admin-contact (authenticated). Opens (or
// returns) the caller's conversation with the support staff account.
func AdminContact(c *gin.Context) {
	user := middleware.CurrentUser(c)
	repo := models.NewChatRepository(config.GetDB())

	staff, err := repo.FirstStaffUser()
	if err != nil {
		respondError(c, http.StatusServiceUnavailable, "NO_STAFF_AVAILABLE",
			"No staff members are available for chat")
		return
	}
	if staff.ID == user.ID {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR",
			"Staff members cannot open a support conversation with themselves")
		return
	}

	conversation, err := repo.GetOrCreateConversation(user.ID, staff.ID)
	if err != nil {
		respondRepositoryError(c, err)
		return
	}
	respondData(c, http.StatusOK, gin.H{
		"conversation_id": conversation.ID,
		"staff_user":      toUserResponse(staff),
	})
}

// ListConversations handles GET /chat/conversations (authenticated)
func ListConversations(c *gin.Context) {
	user := middleware.CurrentUser(c)

	repo := models.NewChatRepository(config.GetDB())
	summaries, err := repo.ListConversations(user.ID)
	if err != nil {
		respondRepositoryError(c, err)
		return
	}

	responses := make([]ConversationResponse, 0, len(summaries))
	for i := range summaries {
		responses = append(responses, toConversationResponse(&summaries[i]))
	}
	respondData(c, http.StatusOK, responses)
}

// ListMessages handles GET /chat/conversations/:id/messages (authenticated).
// Non-participants get a 404 rather than a hint the conversation exists.
func ListMessages(c *gin.Context) {
	user := middleware.CurrentUser(c)
	id, ok := uintParam(c, "id")
	if !ok {
		respondError(c, http.StatusBadRequest, "INVALID_ID", "Invalid conversation ID")
		return
	}

	repo := models.NewChatRepository(config.GetDB())
	messages, err := repo.ListMessages(id, user.ID)
	if err != nil {
		respondRepositoryError(c, err)
		return
	}

	responses := make([]MessageResponse, 0, len(messages))
	for i := range messages {
		responses = append(responses, toMessageResponse(&messages[i]))
	}
	respondData(c, http.StatusOK, responses)
}
