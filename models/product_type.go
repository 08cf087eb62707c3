package models

import (
	"time"
)

// ProductType represents a top-level product line (e.g. pavers, countertops).
// Categories and tiles associate with it weakly: deleting a product type nulls
// the reference on dependents instead of deleting them.
type ProductType struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	Name         string         `gorm:"not null" json:"name"`
	Slug         string         `gorm:"uniqueIndex;not null" json:"slug"`
	Description  string         `gorm:"type:text" json:"description"`
	ImageKey     string         `json:"image"`
	IconName     string         `json:"icon_name"`
	DisplayOrder int            `gorm:"default:0" json:"display_order"`
	Active       bool           `gorm:"default:true" json:"active"`
	ShowInNavbar bool           `gorm:"default:false" json:"show_in_navbar"`
	Categories   []TileCategory `gorm:"foreignKey:ProductTypeID" json:"-"`
	Tiles        []Tile         `gorm:"foreignKey:ProductTypeID" json:"-"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
}

// TableName specifies the table name for the ProductType model
func (ProductType) TableName() string {
	return "product_types"
}
