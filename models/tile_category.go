package models

import (
	"time"
)

// TileCategory groups tiles within an optional product type.
// A category strongly owns its tiles: deleting the category deletes them.
type TileCategory struct {
	ID            uint         `gorm:"primaryKey" json:"id"`
	Name          string       `gorm:"not null" json:"name"`
	Slug          string       `gorm:"uniqueIndex;not null" json:"slug"`
	Description   string       `gorm:"type:text" json:"description"`
	ImageKey      string       `json:"image"`
	ProductTypeID *uint        `gorm:"index" json:"product_type"`
	ProductType   *ProductType `gorm:"foreignKey:ProductTypeID" json:"-"`
	DisplayOrder  int          `gorm:"default:0" json:"order"`
	Active        bool         `gorm:"default:true" json:"active"`
	Tiles         []Tile       `gorm:"foreignKey:CategoryID" json:"-"`
	CreatedAt     time.Time    `json:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at"`
}

// TableName specifies the table name for the TileCategory model
func (TileCategory) TableName() string {
	return "tile_categories"
}
