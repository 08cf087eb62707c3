package models

import (
	"time"
)

// ProjectImage is an image asset attached to a project. Same at-most-one
// primary invariant as TileImage, scoped to the project.
type ProjectImage struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ProjectID uint      `gorm:"not null;index" json:"project_id"`
	Project   Project   `gorm:"foreignKey:ProjectID" json:"-"`
	ImageKey  string    `gorm:"not null" json:"image"`
	Caption   string    `json:"caption"`
	IsPrimary bool      `gorm:"default:false" json:"is_primary"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name for the ProjectImage model
func (ProjectImage) TableName() string {
	return "project_images"
}
