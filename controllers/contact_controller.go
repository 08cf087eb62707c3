package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tolatiles/tola-tiles-api/config"
	"github.com/tolatiles/tola-tiles-api/models"
)

// CreateContactRequest is the public contact-form payload
type CreateContactRequest struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Phone   string `json:"phone"`
	Subject string `json:"subject"`
	Message string `json:"message" binding:"required"`
}

// CreateContact handles POST /contacts (public)
func CreateContact(c *gin.Context) {
	var req CreateContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	contact := models.Contact{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Subject: req.Subject,
		Message: req.Message,
	}
	if err := config.GetDB().Create(&contact).Error; err != nil {
		respondRepositoryError(c, err)
		return
	}
	respondData(c, http.StatusCreated, gin.H{
		"id":      contact.ID,
		"message": "Thank you for contacting us. We will get back to you soon.",
	})
}

// ListContacts handles GET /contacts (staff). Unresponded submissions can be
// isolated with ?responded=false.
func ListContacts(c *gin.Context) {
	query := config.GetDB().Order("created_at DESC")
	if responded := boolQuery(c, "responded"); responded != nil {
		query = query.Where("responded = ?", *responded)
	}

	var contacts []models.Contact
	if err := query.Find(&contacts).Error; err != nil {
		respondRepositoryError(c, err)
		return
	}
	respondData(c, http.StatusOK, contacts)
}

// RespondContact handles POST /contacts/:id/respond (staff). Flags the
// submission as handled; the submission itself stays immutable.
func RespondContact(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		respondError(c, http.StatusBadRequest, "INVALID_ID", "Invalid contact ID")
		return
	}

	result := config.GetDB().Model(&models.Contact{}).
		Where("id = ?", id).
		Update("responded", true)
	if result.Error != nil {
		respondRepositoryError(c, result.Error)
		return
	}
	if result.RowsAffected == 0 {
		respondRepositoryError(c, models.ErrNotFound)
		return
	}

	var contact models.Contact
	if err := config.GetDB().First(&contact, id).Error; err != nil {
		respondRepositoryError(c, err)
		return
	}
	respondData(c, http.StatusOK, contact)
}
