package models

import (
	"time"
)

// Project status values
const (
	ProjectStatusPlanning   = "planning"
	ProjectStatusInProgress = "in_progress"
	ProjectStatusCompleted  = "completed"
)

// ProjectStatusDisplay maps a status value to its human-readable form
func ProjectStatusDisplay(status string) string {
	switch status {
	case ProjectStatusPlanning:
		return "Planning"
	case ProjectStatusInProgress:
		return "In Progress"
	case ProjectStatusCompleted:
		return "Completed"
	}
	return status
}

// ValidProjectStatus reports whether status is a recognized project status
func ValidProjectStatus(status string) bool {
	switch status {
	case ProjectStatusPlanning, ProjectStatusInProgress, ProjectStatusCompleted:
		return true
	}
	return false
}

// Project is a portfolio entry: a completed or ongoing installation with
// images, used tiles and customer testimonials.
type Project struct {
	ID            uint                  `gorm:"primaryKey" json:"id"`
	Title         string                `gorm:"not null" json:"title"`
	Slug          string                `gorm:"uniqueIndex;not null" json:"slug"`
	Description   string                `gorm:"type:text" json:"description"`
	Client        string                `json:"client"`
	Location      string                `json:"location"`
	CompletedDate time.Time             `json:"completed_date"`
	Status        string                `gorm:"not null;default:'completed'" json:"status"`
	Featured      bool                  `gorm:"default:false" json:"featured"`
	ProductTypeID *uint                 `gorm:"index" json:"product_type"`
	ProductType   *ProductType          `gorm:"foreignKey:ProductTypeID" json:"-"`
	AreaSize      string                `json:"area_size"`
	Testimonial   string                `gorm:"type:text" json:"testimonial"`
	TilesUsed     []Tile                `gorm:"many2many:project_tiles" json:"-"`
	Images        []ProjectImage        `gorm:"foreignKey:ProjectID" json:"-"`
	Testimonials  []CustomerTestimonial `gorm:"foreignKey:ProjectID" json:"-"`
	CreatedAt     time.Time             `json:"created_at"`
	UpdatedAt     time.Time             `json:"updated_at"`
}

// TableName specifies the table name for the Project model
func (Project) TableName() string {
	return "projects"
}
