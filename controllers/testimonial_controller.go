package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tolatiles/tola-tiles-api/config"
	"github.com/tolatiles/tola-tiles-api/middleware"
	"github.com/tolatiles/tola-tiles-api/models"
)

// CreateTestimonialRequest is the payload for submitting a testimonial.
// Anyone may submit; the approved flag only takes effect for staff callers.
type CreateTestimonialRequest struct {
	CustomerName string `json:"customer_name" binding:"required"`
	Location     string `json:"location"`
	Testimonial  string `json:"testimonial" binding:"required"`
	ProjectID    *uint  `json:"project"`
	Rating       int    `json:"rating" binding:"required"`
	Approved     bool   `json:"approved"`
}

// UpdateTestimonialRequest is the payload for partial testimonial updates.
// Date and approved are managed server-side and not accepted here.
type UpdateTestimonialRequest struct {
	CustomerName *string `json:"customer_name"`
	Location     *string `json:"location"`
	Testimonial  *string `json:"testimonial"`
	ProjectID    *uint   `json:"project"`
	Rating       *int    `json:"rating"`
}

// ListTestimonials handles GET /testimonials. Anonymous and non-staff callers
// only ever see approved rows regardless of the approved filter.
func ListTestimonials(c *gin.Context) {
	filters := models.TestimonialFilters{
		Approved:  boolQuery(c, "approved"),
		Project:   c.Query("project"),
		MinRating: intQuery(c, "min_rating"),
		Search:    c.Query("search"),
	}
	if !middleware.IsStaff(c) {
		approved := true
		filters.Approved = &approved
	}

	repo := models.NewTestimonialRepository(config.GetDB())
	testimonials, err := repo.ListTestimonials(filters)
	if err != nil {
		respondRepositoryError(c, err)
		return
	}

	responses := make([]TestimonialResponse, 0, len(testimonials))
	for i := range testimonials {
		responses = append(responses, toTestimonialResponse(&testimonials[i]))
	}
	respondData(c, http.StatusOK, responses)
}

// GetTestimonial handles GET /testimonials/:id. Unapproved rows are hidden
// from non-staff callers.
func GetTestimonial(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		respondError(c, http.StatusBadRequest, "INVALID_ID", "Invalid testimonial ID")
		return
	}

	repo := models.NewTestimonialRepository(config.GetDB())
	testimonial, err := repo.TestimonialByID(id)
	if err != nil {
		respondRepositoryError(c, err)
		return
	}
	if !testimonial.Approved && !middleware.IsStaff(c) {
		respondRepositoryError(c, models.ErrNotFound)
		return
	}
	respondData(c, http.StatusOK, toTestimonialResponse(testimonial))
}

// CreateTestimonial handles POST /testimonials (public)
func CreateTestimonial(c *gin.Context) {
	var req CreateTestimonialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	testimonial := models.CustomerTestimonial{
		CustomerName: req.CustomerName,
		Location:     req.Location,
		Testimonial:  req.Testimonial,
		ProjectID:    req.ProjectID,
		Rating:       req.Rating,
		Approved:     req.Approved,
	}

	repo := models.NewTestimonialRepository(config.GetDB())
	if err := repo.CreateTestimonial(&testimonial, middleware.IsStaff(c)); err != nil {
		respondRepositoryError(c, err)
		return
	}
	respondData(c, http.StatusCreated, toTestimonialResponse(&testimonial))
}

// UpdateTestimonial handles PUT /testimonials/:id (staff)
func UpdateTestimonial(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		respondError(c, http.StatusBadRequest, "INVALID_ID", "Invalid testimonial ID")
		return
	}

	var req UpdateTestimonialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	updates := map[string]interface{}{}
	if req.CustomerName != nil {
		updates["customer_name"] = *req.CustomerName
	}
	if req.Location != nil {
		updates["location"] = *req.Location
	}
	if req.Testimonial != nil {
		updates["testimonial"] = *req.Testimonial
	}
	if req.ProjectID != nil {
		updates["project_id"] = *req.ProjectID
	}
	if req.Rating != nil {
		updates["rating"] = *req.Rating
	}

	repo := models.NewTestimonialRepository(config.GetDB())
	testimonial, err := repo.UpdateTestimonial(id, updates)
	if err != nil {
		respondRepositoryError(c, err)
		return
	}
	respondData(c, http.StatusOK, toTestimonialResponse(testimonial))
}

// ApproveTestimonial handles POST /testimonials/:id/approve (staff).
// Toggles the approved flag.
func ApproveTestimonial(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		respondError(c, http.StatusBadRequest, "INVALID_ID", "Invalid testimonial ID")
		return
	}

	repo := models.NewTestimonialRepository(config.GetDB())
	testimonial, err := repo.Approve(id)
	if err != nil {
		respondRepositoryError(c, err)
		return
	}
	respondData(c, http.StatusOK, toTestimonialResponse(testimonial))
}

// DeleteTestimonial handles DELETE /testimonials/:id (staff)
func DeleteTestimonial(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		respondError(c, http.StatusBadRequest, "INVALID_ID", "Invalid testimonial ID")
		return
	}

	repo := models.NewTestimonialRepository(config.GetDB())
	if err := repo.DeleteTestimonial(id); err != nil {
		respondRepositoryError(c, err)
		return
	}
	respondData(c, http.StatusOK, gin.H{"message": "Testimonial deleted successfully"})
}
