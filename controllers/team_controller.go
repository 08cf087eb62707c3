package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tolatiles/tola-tiles-api/config"
	"github.com/tolatiles/tola-tiles-api/models"
	"gorm.io/gorm"
)

// CreateTeamMemberRequest is the payload for creating a team member
type CreateTeamMemberRequest struct {
	Name         string `json:"name" binding:"required"`
	Position     string `json:"position"`
	Bio          string `json:"bio"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	DisplayOrder int    `json:"display_order"`
	Active       *bool  `json:"active"`
}

// UpdateTeamMemberRequest is the payload for partial team member updates
type UpdateTeamMemberRequest struct {
	Name         *string `json:"name"`
	Position     *string `json:"position"`
	Bio          *string `json:"bio"`
	Email        *string `json:"email"`
	Phone        *string `json:"phone"`
	DisplayOrder *int    `json:"display_order"`
	Active       *bool   `json:"active"`
}

// ListTeamMembers handles GET /team
func ListTeamMembers(c *gin.Context) {
	query := config.GetDB().Order("display_order, name")
	if active := boolQuery(c, "active"); active != nil {
		query = query.Where("active = ?", *active)
	}

	var members []models.TeamMember
	if err := query.Find(&members).Error; err != nil {
		respondRepositoryError(c, err)
		return
	}

	responses := make([]TeamMemberResponse, 0, len(members))
	for i := range members {
		responses = append(responses, toTeamMemberResponse(&members[i]))
	}
	respondData(c, http.StatusOK, responses)
}

// GetTeamMember handles GET /team/:id
func GetTeamMember(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		respondError(c, http.StatusBadRequest, "INVALID_ID", "Invalid team member ID")
		return
	}

	var member models.TeamMember
	if err := config.GetDB().First(&member, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondRepositoryError(c, models.ErrNotFound)
			return
		}
		respondRepositoryError(c, err)
		return
	}
	respondData(c, http.StatusOK, toTeamMemberResponse(&member))
}

// CreateTeamMember handles POST /team (staff)
func CreateTeamMember(c *gin.Context) {
	var req CreateTeamMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	member := models.TeamMember{
		Name:         req.Name,
		Position:     req.Position,
		Bio:          req.Bio,
		Email:        req.Email,
		Phone:        req.Phone,
		DisplayOrder: req.DisplayOrder,
		Active:       true,
	}
	if req.Active != nil {
		member.Active = *req.Active
	}

	if err := config.GetDB().Create(&member).Error; err != nil {
		respondRepositoryError(c, err)
		return
	}
	respondData(c, http.StatusCreated, toTeamMemberResponse(&member))
}

// UpdateTeamMember handles PUT /team/:id (staff)
func UpdateTeamMember(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		respondError(c, http.StatusBadRequest, "INVALID_ID", "Invalid team member ID")
		return
	}

	var req UpdateTeamMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	var member models.TeamMember
	if err := config.GetDB().First(&member, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondRepositoryError(c, models.ErrNotFound)
			return
		}
		respondRepositoryError(c, err)
		return
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Position != nil {
		updates["position"] = *req.Position
	}
	if req.Bio != nil {
		updates["bio"] = *req.Bio
	}
	if req.Email != nil {
		updates["email"] = *req.Email
	}
	if req.Phone != nil {
		updates["phone"] = *req.Phone
	}
	if req.DisplayOrder != nil {
		updates["display_order"] = *req.DisplayOrder
	}
	if req.Active != nil {
		updates["active"] = *req.Active
	}

	if len(updates) > 0 {
		if err := config.GetDB().Model(&member).Updates(updates).Error; err != nil {
			respondRepositoryError(c, err)
			return
		}
	}
	respondData(c, http.StatusOK, toTeamMemberResponse(&member))
}

// DeleteTeamMember handles DELETE /team/:id (staff)
func DeleteTeamMember(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		respondError(c, http.StatusBadRequest, "INVALID_ID", "Invalid team member ID")
		return
	}

	result := config.GetDB().Delete(&models.TeamMember{}, id)
	if result.Error != nil {
		respondRepositoryError(c, result.Error)
		return
	}
	if result.RowsAffected == 0 {
		respondRepositoryError(c, models.ErrNotFound)
		return
	}
	respondData(c, http.StatusOK, gin.H{"message": "Team member deleted successfully"})
}
