package models

import (
	"time"
)

// CustomerTestimonial is customer feedback, optionally tied to a project.
// Rows start unapproved and only become publicly visible after a staff
// approval toggle. Date is set at creation and immutable afterwards.
type CustomerTestimonial struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	CustomerName string    `gorm:"not null" json:"customer_name"`
	Location     string    `json:"location"`
	Testimonial  string    `gorm:"type:text;not null" json:"testimonial"`
	ProjectID    *uint     `gorm:"index" json:"project"`
	Project      *Project  `gorm:"foreignKey:ProjectID" json:"-"`
	Rating       int       `gorm:"not null;check:rating >= 1 AND rating <= 5" json:"rating"`
	ImageKey     string    `json:"image"`
	Date         time.Time `json:"date"`
	Approved     bool      `gorm:"default:false" json:"approved"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// TableName specifies the table name for the CustomerTestimonial model
func (CustomerTestimonial) TableName() string {
	return "customer_testimonials"
}
