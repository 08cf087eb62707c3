package controllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/tolatiles/tola-tiles-api/config"
	"github.com/tolatiles/tola-tiles-api/middleware"
	"github.com/tolatiles/tola-tiles-api/models"
	"gorm.io/gorm"
)

// LoginRequest is the admin login payload
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// RegisterRequest is the account registration payload
type RegisterRequest struct {
	Username        string `json:"username" binding:"required"`
	Email           string `json:"email" binding:"required,email"`
	Password        string `json:"password" binding:"required,min=8"`
	PasswordConfirm string `json:"password_confirm" binding:"required"`
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
}

// ChangePasswordRequest is the password change payload
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=8"`
}

// Login handles POST /auth/login. Only staff accounts may log in here:
// valid non-staff credentials are rejected with 403, distinct from the 401
// for invalid credentials. Successful logins reuse the account's existing
// token when one exists.
func Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	db := config.GetDB()
	var user models.User
	if err := db.Where("username = ?", req.Username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid username or password")
			return
		}
		respondRepositoryError(c, err)
		return
	}
	if !user.CheckPassword(req.Password) {
		respondError(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid username or password")
		return
	}
	if !user.IsStaff {
		respondError(c, http.StatusForbidden, "ADMIN_REQUIRED", "Access denied. Admin privileges required.")
		return
	}

	token, err := models.GetOrCreateToken(db, user.ID)
	if err != nil {
		respondRepositoryError(c, err)
		return
	}

	respondData(c, http.StatusOK, gin.H{
		"token": token.Key,
		"user":  toUserResponse(&user),
	})
}

// Register handles POST /auth/register. Open registration for chat users;
// the staff flag can only be granted out of band.
func Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}
	if req.Password != req.PasswordConfirm {
		respondError(c, http.StatusBadRequest, "PASSWORD_MISMATCH", "Passwords do not match")
		return
	}

	user := models.User{
		Username:  strings.TrimSpace(req.Username),
		Email:     strings.ToLower(strings.TrimSpace(req.Email)),
		FirstName: req.FirstName,
		LastName:  req.LastName,
	}
	if err := user.SetPassword(req.Password); err != nil {
		respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Could not process password")
		return
	}

	db := config.GetDB()
	if err := db.Create(&user).Error; err != nil {
		if models.IsDuplicateErr(err) {
			respondError(c, http.StatusConflict, "DUPLICATE_USER", "Username or email already taken")
			return
		}
		respondRepositoryError(c, err)
		return
	}

	token, err := models.GetOrCreateToken(db, user.ID)
	if err != nil {
		respondRepositoryError(c, err)
		return
	}

	respondData(c, http.StatusCreated, gin.H{
		"token": token.Key,
		"user":  toUserResponse(&user),
	})
}

// ChangePassword handles POST /auth/change-password (authenticated).
// The current token is revoked and a new one issued.
func ChangePassword(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}
	if !user.CheckPassword(req.CurrentPassword) {
		respondError(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Current password is incorrect")
		return
	}

	if err := user.SetPassword(req.NewPassword); err != nil {
		respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Could not process password")
		return
	}

	db := config.GetDB()
	if err := db.Model(user).Update("password_hash", user.PasswordHash).Error; err != nil {
		respondRepositoryError(c, err)
		return
	}

	token, err := models.RotateToken(db, user.ID)
	if err != nil {
		respondRepositoryError(c, err)
		return
	}

	respondData(c, http.StatusOK, gin.H{
		"token":   token.Key,
		"message": "Password changed successfully",
	})
}

// GetCurrentUser handles GET /auth/user (authenticated)
func GetCurrentUser(c *gin.Context) {
	user := middleware.CurrentUser(c)

	// Reload with profile so the response includes it
	var full models.User
	if err := config.GetDB().Preload("Profile").First(&full, user.ID).Error; err != nil {
		respondRepositoryError(c, err)
		return
	}
	respondData(c, http.StatusOK, toUserResponse(&full))
}
