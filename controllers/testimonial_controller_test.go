package controllers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tolatiles/tola-tiles-api/models"
)

func TestCreateTestimonialPublicIsUnapproved(t *testing.T) {
	setupControllerTest(t)
	router := catalogRouter()

	w, response := performJSON(router, "POST", "/api/v1/testimonials", "", map[string]interface{}{
		"customer_name": "Alice",
		"testimonial":   "Beautiful tile work",
		"rating":        5,
		"approved":      true,
	})
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.False(t, dataOf(t, response)["approved"].(bool))
}

func TestCreateTestimonialStaffCanApprove(t *testing.T) {
	db := setupControllerTest(t)
	router := catalogRouter()
	_, staffToken := createStaffUser(t, db)

	w, response := performJSON(router, "POST", "/api/v1/testimonials", staffToken, map[string]interface{}{
		"customer_name": "Bob",
		"testimonial":   "Imported from old site",
		"rating":        4,
		"approved":      true,
	})
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.True(t, dataOf(t, response)["approved"].(bool))
}

func TestListTestimonialsVisibility(t *testing.T) {
	db := setupControllerTest(t)
	router := catalogRouter()
	_, staffToken := createStaffUser(t, db)

	repo := models.NewTestimonialRepository(db)
	hidden := models.CustomerTestimonial{CustomerName: "Pending", Testimonial: "Waiting", Rating: 4}
	visible := models.CustomerTestimonial{CustomerName: "Public", Testimonial: "Shown", Rating: 5}
	assert.NoError(t, repo.CreateTestimonial(&hidden, false))
	assert.NoError(t, repo.CreateTestimonial(&visible, false))
	_, err := repo.Approve(visible.ID)
	assert.NoError(t, err)

	// Anonymous callers only see the approved row, even when asking
	w, response := performJSON(router, "GET", "/api/v1/testimonials?approved=false", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	list := listOf(t, response)
	assert.Len(t, list, 1)
	assert.Equal(t, "Public", list[0].(map[string]interface{})["customer_name"])

	// Staff see everything
	w, response = performJSON(router, "GET", "/api/v1/testimonials", staffToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, listOf(t, response), 2)

	// Unapproved detail hidden from anonymous, visible to staff
	w, _ = performJSON(router, "GET", "/api/v1/testimonials/1", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	w, _ = performJSON(router, "GET", "/api/v1/testimonials/1", staffToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestApproveTestimonialEndpoint(t *testing.T) {
	db := setupControllerTest(t)
	router := catalogRouter()
	_, staffToken := createStaffUser(t, db)

	repo := models.NewTestimonialRepository(db)
	testimonial := models.CustomerTestimonial{CustomerName: "Carol", Testimonial: "Nice", Rating: 5}
	assert.NoError(t, repo.CreateTestimonial(&testimonial, false))

	w, response := performJSON(router, "POST", "/api/v1/testimonials/1/approve", staffToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, dataOf(t, response)["approved"].(bool))

	// Toggle back
	w, response = performJSON(router, "POST", "/api/v1/testimonials/1/approve", staffToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.False(t, dataOf(t, response)["approved"].(bool))
}

func TestCreateTestimonialValidation(t *testing.T) {
	setupControllerTest(t)
	router := catalogRouter()

	w, response := performJSON(router, "POST", "/api/v1/testimonials", "", map[string]interface{}{
		"customer_name": "NoRating",
		"testimonial":   "Missing rating",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "VALIDATION_ERROR", errorCode(response))

	w, response = performJSON(router, "POST", "/api/v1/testimonials", "", map[string]interface{}{
		"customer_name": "TooHigh",
		"testimonial":   "Rating out of range",
		"rating":        9,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "VALIDATION_ERROR", errorCode(response))
}
