package models

import (
	"time"
)

// TeamMember represents a staff profile shown on the website's team page
type TeamMember struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Name         string    `gorm:"not null" json:"name"`
	Position     string    `json:"position"`
	Bio          string    `gorm:"type:text" json:"bio"`
	ImageKey     string    `json:"image"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone"`
	DisplayOrder int       `gorm:"default:0" json:"display_order"`
	Active       bool      `gorm:"default:true" json:"active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// TableName specifies the table name for the TeamMember model
func (TeamMember) TableName() string {
	return "team_members"
}
