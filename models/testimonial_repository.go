package models

import (
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"
)

// TestimonialRepository owns testimonial mutations and the approval state
// machine: rows start unapproved unless a staff creator explicitly approves,
// and the only transition is the staff-only Approve toggle.
type TestimonialRepository struct {
	db *gorm.DB
}

func NewTestimonialRepository(db *gorm.DB) *TestimonialRepository {
	return &TestimonialRepository{db: db}
}

// TestimonialFilters are the recognized testimonial list filters
type TestimonialFilters struct {
	Approved  *bool
	Project   string // id or slug
	MinRating int
	Search    string
}

// CreateTestimonial validates and persists a testimonial. The approved flag
// is forced false unless the creator is staff and explicitly requested
// approval. Date is stamped at creation and immutable thereafter.
func (r *TestimonialRepository) CreateTestimonial(t *CustomerTestimonial, creatorIsStaff bool) error {
	if strings.TrimSpace(t.CustomerName) == "" {
		return &ValidationError{Field: "customer_name", Message: "customer name is required"}
	}
	if strings.TrimSpace(t.Testimonial) == "" {
		return &ValidationError{Field: "testimonial", Message: "testimonial text is required"}
	}
	if t.Rating < 1 || t.Rating > 5 {
		return &ValidationError{Field: "rating", Message: "rating must be between 1 and 5"}
	}
	if t.ProjectID != nil {
		var count int64
		if err := r.db.Model(&Project{}).Where("id = ?", *t.ProjectID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return &ValidationError{Field: "project", Message: "project does not exist"}
		}
	}
	if !creatorIsStaff {
		t.Approved = false
	}
	t.Date = time.Now()
	return r.db.Create(t).Error
}

// TestimonialByID resolves a testimonial by id
func (r *TestimonialRepository) TestimonialByID(id uint) (*CustomerTestimonial, error) {
	var t CustomerTestimonial
	if err := r.db.Preload("Project").First(&t, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &t, nil
}

// ListTestimonials returns testimonials ordered by date, newest first.
// Non-staff callers pass Approved=true via the controller so unapproved rows
// stay hidden.
func (r *TestimonialRepository) ListTestimonials(filters TestimonialFilters) ([]CustomerTestimonial, error) {
	query := r.db.Model(&CustomerTestimonial{}).Preload("Project")
	if filters.Approved != nil {
		query = query.Where("approved = ?", *filters.Approved)
	}
	if filters.Project != "" {
		var project Project
		if err := findByIDOrSlug(r.db, filters.Project, &project); err != nil {
			return nil, err
		}
		query = query.Where("project_id = ?", project.ID)
	}
	if filters.MinRating > 0 {
		query = query.Where("rating >= ?", filters.MinRating)
	}
	if filters.Search != "" {
		pattern := "%" + strings.ToLower(filters.Search) + "%"
		query = query.Where("LOWER(customer_name) LIKE ? OR LOWER(testimonial) LIKE ? OR LOWER(location) LIKE ?",
			pattern, pattern, pattern)
	}

	var testimonials []CustomerTestimonial
	if err := query.Order("date DESC").Find(&testimonials).Error; err != nil {
		return nil, err
	}
	return testimonials, nil
}

// UpdateTestimonial applies a partial update. Date and approved are immutable
// through this path; approval only moves via Approve.
func (r *TestimonialRepository) UpdateTestimonial(id uint, updates map[string]interface{}) (*CustomerTestimonial, error) {
	delete(updates, "date")
	delete(updates, "approved")

	t, err := r.TestimonialByID(id)
	if err != nil {
		return nil, err
	}
	if rating, ok := updates["rating"]; ok {
		if v, ok := rating.(int); ok && (v < 1 || v > 5) {
			return nil, &ValidationError{Field: "rating", Message: "rating must be between 1 and 5"}
		}
	}
	if len(updates) > 0 {
		if err := r.db.Model(t).Updates(updates).Error; err != nil {
			return nil, err
		}
	}
	return t, nil
}

// Approve toggles the approved flag. Each call flips it exactly once.
func (r *TestimonialRepository) Approve(id uint) (*CustomerTestimonial, error) {
	t, err := r.TestimonialByID(id)
	if err != nil {
		return nil, err
	}
	if err := r.db.Model(t).Update("approved", !t.Approved).Error; err != nil {
		return nil, err
	}
	return t, nil
}

// DeleteTestimonial removes a testimonial
func (r *TestimonialRepository) DeleteTestimonial(id uint) error {
	t, err := r.TestimonialByID(id)
	if err != nil {
		return err
	}
	return r.db.Delete(t).Error
}
